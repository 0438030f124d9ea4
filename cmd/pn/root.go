package main

import (
	"fmt"
	"os"

	"github.com/pnpm/pn/internal/config"
	"github.com/pnpm/pn/internal/dispatch"
	"github.com/pnpm/pn/internal/logging"
	"github.com/pnpm/pn/internal/process"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pn [command] [args...]",
		Short: "Fast front-end for pnpm",
		Long: `pn runs package.json scripts directly and hands everything else to pnpm.

A command that is not a pn subcommand is forwarded to pnpm when pnpm knows it
(install, add, update, ...), run as a script when package.json defines it,
and run as a shell command otherwise.`,
		Example: `  pn run build
  pn test --watch
  pn install --frozen-lockfile
  pn -w run lint`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runOther,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	// Everything after the first positional belongs to the child command.
	cmd.Flags().SetInterspersed(false)
	cmd.PersistentFlags().BoolP("workspace-root", "w", false, "Run the command on the root workspace project")
	cmd.PersistentFlags().String("config", "", "Config file (default is <user config dir>/pn/config.yaml)")

	cmd.AddCommand(newRunCmd())

	return cmd
}

func runOther(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	d, err := newDispatcher(cmd)
	if err != nil {
		return err
	}
	return d.Other(args)
}

// newDispatcher builds the configuration from the config file and flags, and
// binds a dispatcher to cmd's streams.
func newDispatcher(cmd *cobra.Command) (*dispatch.Dispatcher, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	workspaceRoot, _ := cmd.Flags().GetBool("workspace-root")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	cfg.WorkspaceRoot = workspaceRoot

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	runner := &process.Runner{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Shell:  cfg.Shell,
		BinDir: cfg.BinDir,
		Logger: logger,
	}
	return dispatch.New(dispatch.Options{
		Config: cfg,
		Cwd:    cwd,
		Runner: runner,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger,
	}), nil
}
