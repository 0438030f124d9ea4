package process

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/pnpm/pn/internal/logging"
	"github.com/pnpm/pn/internal/pnerr"
	"github.com/pnpm/pn/internal/shell"
)

// Outcome describes how a child finished.
type Outcome struct {
	// Exited is false when the child ended without an exit code.
	Exited bool
	Code   int
}

// Success reports a zero exit code.
func (o Outcome) Success() bool {
	return o.Exited && o.Code == 0
}

// Runner spawns children with the given streams. Files such as os.Stdout are
// inherited as is, so interactive children keep their terminal.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Shell interprets command lines with `<Shell> -c`.
	Shell string
	// BinDir is prepended to PATH for shell commands.
	BinDir string

	Logger *slog.Logger
}

// NewRunner returns a Runner bound to the process's own streams.
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Shell:  "sh",
		BinDir: DefaultBinDir,
		Logger: logging.Discard(),
	}
}

// RunShell runs command through `sh -c` in dir with BinDir prepended to PATH.
func (r *Runner) RunShell(command shell.Quoted, dir string) (Outcome, error) {
	pathEnv, err := PathEnv(r.BinDir)
	if err != nil {
		return Outcome{}, err
	}
	cmd := exec.Command(r.Shell, "-c", command.String()) //nolint:gosec // runs user scripts
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(), "PATH="+pathEnv)
	return r.run(cmd)
}

// RunDirect runs name with args, without a shell. The working directory and
// PATH are inherited unchanged.
func (r *Runner) RunDirect(name string, args []string) (Outcome, error) {
	cmd := exec.Command(name, args...) //nolint:gosec // forwards the user's command line
	return r.run(cmd)
}

func (r *Runner) run(cmd *exec.Cmd) (Outcome, error) {
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	r.logger().Debug("spawning process", "argv", cmd.Args, "dir", cmd.Dir)
	if err := cmd.Start(); err != nil {
		return Outcome{}, &pnerr.SpawnProcessError{Err: err}
	}
	err := cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Outcome{}, &pnerr.WaitProcessError{Err: err}
	}

	state := cmd.ProcessState
	outcome := Outcome{Exited: state.Exited(), Code: state.ExitCode()}
	r.logger().Debug("process finished", "argv", cmd.Args, "exited", outcome.Exited, "code", outcome.Code)
	return outcome, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}
