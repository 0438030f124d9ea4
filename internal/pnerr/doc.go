// Package pnerr defines every error kind pn reports and how each kind maps to
// the process exit code.
//
// ExitError relays a child's own non-zero exit status and is never printed.
// All other kinds are printed with an ERROR prefix.
package pnerr
