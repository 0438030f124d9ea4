// Package shell builds POSIX shell command lines from a raw command and
// user-supplied arguments. Every pushed argument is quoted so that the shell
// sees it as exactly one literal word.
package shell
