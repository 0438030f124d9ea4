package main

import (
	"io"
	"os"

	"github.com/pnpm/pn/internal/pnerr"
	"github.com/pnpm/pn/internal/ui"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(report(rootCmd.ErrOrStderr(), err))
	}
}

// report prints err unless it only relays a child's exit code, and returns
// the status pn exits with.
func report(w io.Writer, err error) int {
	if !pnerr.Silent(err) {
		ui.PrintError(w, err)
	}
	return pnerr.ExitCode(err)
}
