package pnerr

import (
	"errors"
	"fmt"
)

// MissingScriptError reports a script name absent from package.json.
type MissingScriptError struct {
	Name string
}

func (e *MissingScriptError) Error() string {
	return "Missing script: " + e.Name
}

// ScriptError reports a script that exited with a non-zero status.
type ScriptError struct {
	Name   string
	Status int
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("Script %q failed with exit code %d", e.Name, e.Status)
}

// ExitCode relays the script's status.
func (e *ScriptError) ExitCode() int { return e.Status }

// UnexpectedTerminationError reports a child that ended without an exit
// code, e.g. killed by a signal.
type UnexpectedTerminationError struct {
	Command string
}

func (e *UnexpectedTerminationError) Error() string {
	return "Command ended unexpectedly: " + e.Command
}

// SpawnProcessError reports a child that could not be started.
type SpawnProcessError struct {
	Err error
}

func (e *SpawnProcessError) Error() string {
	return fmt.Sprintf("Failed to spawn process: %v", e.Err)
}

func (e *SpawnProcessError) Unwrap() error { return e.Err }

// WaitProcessError reports a failure while waiting for a child.
type WaitProcessError struct {
	Err error
}

func (e *WaitProcessError) Error() string {
	return fmt.Sprintf("Failed to wait for the process: %v", e.Err)
}

func (e *WaitProcessError) Unwrap() error { return e.Err }

// NotInWorkspaceError reports --workspace-root used outside a workspace.
type NotInWorkspaceError struct{}

func (e *NotInWorkspaceError) Error() string {
	return "--workspace-root may only be used in a workspace"
}

// NoManifestError reports a missing package.json.
type NoManifestError struct {
	File string
}

func (e *NoManifestError) Error() string {
	return fmt.Sprintf("File not found: %q", e.File)
}

// FsError reports any other filesystem failure on Path.
type FsError struct {
	Path string
	Err  error
}

func (e *FsError) Error() string {
	return fmt.Sprintf("%q: %v", e.Path, e.Err)
}

func (e *FsError) Unwrap() error { return e.Err }

// FindUpError reports an I/O failure while searching upward for FileName.
type FindUpError struct {
	StartDir string
	FileName string
	Err      error
}

func (e *FindUpError) Error() string {
	return fmt.Sprintf("Failed to find %q from %q upward: %v", e.FileName, e.StartDir, e.Err)
}

func (e *FindUpError) Unwrap() error { return e.Err }

// WriteStdoutError reports a failed write to standard output.
type WriteStdoutError struct {
	Err error
}

func (e *WriteStdoutError) Error() string {
	return fmt.Sprintf("Failed to write to stdout: %v", e.Err)
}

func (e *WriteStdoutError) Unwrap() error { return e.Err }

// ParseError reports a malformed package.json. Message is the parser's
// diagnostic including its position.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse %q: %s", e.File, e.Message)
}

// NodeBinPathError reports a PATH that cannot be rebuilt with Dir in front.
type NodeBinPathError struct {
	Dir string
	Err error
}

func (e *NodeBinPathError) Error() string {
	return fmt.Sprintf("Cannot add `%s` to PATH: %v", e.Dir, e.Err)
}

func (e *NodeBinPathError) Unwrap() error { return e.Err }

// ExitError carries the non-zero exit code of a forwarded child. The child
// has already printed its own diagnostics.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode relays the child's code.
func (e *ExitError) ExitCode() int { return e.Code }

// ExitCode returns the status pn should exit with for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// Silent reports whether err must not be printed.
func Silent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
