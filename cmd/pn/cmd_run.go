package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [script] [args...]",
		Aliases: []string{"run-script"},
		Short:   "Run a script defined in package.json",
		Long: `Run a script defined in package.json, appending any extra arguments
shell-quoted. Without a script name, list the available scripts.`,
		Args: cobra.ArbitraryArgs,
		RunE: runRun,
	}
	// Flags after the script name are passed to the script.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolP("select", "s", false, "Pick the script to run interactively")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	selectScript, _ := cmd.Flags().GetBool("select")

	d, err := newDispatcher(cmd)
	if err != nil {
		return err
	}

	if !selectScript {
		var name string
		if len(args) > 0 {
			name, args = args[0], args[1:]
		}
		return d.Run(name, args)
	}

	ctx, err := d.Context()
	if err != nil {
		return err
	}
	if ctx.Manifest.Scripts.Len() == 0 {
		return d.Run("", nil)
	}
	if !isTerminal(cmd.InOrStdin()) {
		return fmt.Errorf("--select requires a TTY; pass a script name instead")
	}
	name, err := promptScript(ctx.Manifest.Scripts)
	if err != nil {
		return err
	}
	// With --select every argument goes to the chosen script.
	return d.RunScript(ctx, name, args)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
