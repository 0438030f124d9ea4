// Package process runs pn's child processes: scripts through `sh -c` with
// the local binary directory on PATH, and package manager commands directly.
// Standard streams are handed to the child and nothing is retried.
package process
