package dispatch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pnpm/pn/internal/config"
	"github.com/pnpm/pn/internal/logging"
	"github.com/pnpm/pn/internal/passthrough"
	"github.com/pnpm/pn/internal/pnerr"
	"github.com/pnpm/pn/internal/process"
	"github.com/pnpm/pn/internal/shell"
	"github.com/pnpm/pn/internal/ui"
	"github.com/pnpm/pn/internal/workspace"
)

// Dispatcher resolves and runs commands for one invocation.
type Dispatcher struct {
	cfg         *config.Config
	cwd         string
	passthrough passthrough.Set
	runner      *process.Runner
	stdout      io.Writer
	stderr      io.Writer
	log         *slog.Logger
}

// Options wires a Dispatcher to its environment.
type Options struct {
	Config *config.Config
	// Cwd is the directory pn was started in.
	Cwd    string
	Runner *process.Runner
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// New returns a Dispatcher. A nil Logger discards records.
func New(opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Dispatcher{
		cfg:         opts.Config,
		cwd:         opts.Cwd,
		passthrough: passthrough.New(opts.Config.Passthrough...),
		runner:      opts.Runner,
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		log:         logger,
	}
}

// Context resolves the effective directory and loads its manifest.
func (d *Dispatcher) Context() (*workspace.Context, error) {
	ctx, err := workspace.Load(d.cwd, d.cfg.WorkspaceRoot)
	if err != nil {
		return nil, err
	}
	d.log.Debug("loaded manifest", "dir", ctx.Dir, "name", ctx.Manifest.Name, "scripts", ctx.Manifest.Scripts.Len())
	return ctx, nil
}

// Run runs the named script with args appended. An empty name lists the
// scripts instead.
func (d *Dispatcher) Run(name string, args []string) error {
	ctx, err := d.Context()
	if err != nil {
		return err
	}
	if name == "" {
		return d.list(ctx)
	}
	return d.RunScript(ctx, name, args)
}

// Other handles a command that is not a pn subcommand.
func (d *Dispatcher) Other(tokens []string) error {
	if len(tokens) == 0 {
		return errors.New("no command given")
	}

	if d.passthrough.Contains(tokens[0]) {
		return d.forward(tokens)
	}

	ctx, err := d.Context()
	if err != nil {
		return err
	}
	if _, ok := ctx.Manifest.Scripts.Get(tokens[0]); ok {
		return d.RunScript(ctx, tokens[0], tokens[1:])
	}

	command := shell.FromCommand(strings.Join(tokens, " "))
	d.log.Debug("running shell command", "command", command.String(), "dir", ctx.Dir)
	outcome, err := d.runner.RunShell(command, ctx.Dir)
	if err != nil {
		return err
	}
	return relay(outcome, command.String())
}

// RunScript runs a script of ctx's manifest with args quoted and appended.
func (d *Dispatcher) RunScript(ctx *workspace.Context, name string, args []string) error {
	raw, ok := ctx.Manifest.Scripts.Get(name)
	if !ok {
		return &pnerr.MissingScriptError{Name: name}
	}
	command := shell.FromCommandAndArgs(raw, args)

	m := ctx.Manifest
	_, _ = fmt.Fprintf(d.stderr, "\n> %s@%s %s\n", m.Name, m.Version, ctx.Dir)
	_, _ = fmt.Fprintf(d.stderr, "> %s\n\n", command)

	d.log.Debug("running script", "script", name, "dir", ctx.Dir)
	outcome, err := d.runner.RunShell(command, ctx.Dir)
	if err != nil {
		return err
	}
	switch {
	case outcome.Success():
		return nil
	case outcome.Exited:
		return &pnerr.ScriptError{Name: name, Status: outcome.Code}
	default:
		return &pnerr.UnexpectedTerminationError{Command: command.String()}
	}
}

// forward hands tokens to the package manager unchanged.
func (d *Dispatcher) forward(tokens []string) error {
	pm := d.cfg.PackageManager
	d.log.Debug("forwarding to package manager", "bin", pm, "args", tokens)
	outcome, err := d.runner.RunDirect(pm, tokens)
	if err != nil {
		return err
	}
	return relay(outcome, shell.FromCommandAndArgs(pm, tokens).String())
}

func (d *Dispatcher) list(ctx *workspace.Context) error {
	if err := ui.WriteScripts(d.stdout, ctx.Manifest.Scripts.All()); err != nil {
		return &pnerr.WriteStdoutError{Err: err}
	}
	return nil
}

// relay maps a forwarded child's outcome to pn's result.
func relay(outcome process.Outcome, command string) error {
	switch {
	case outcome.Success():
		return nil
	case outcome.Exited:
		return &pnerr.ExitError{Code: outcome.Code}
	default:
		return &pnerr.UnexpectedTerminationError{Command: command}
	}
}
