package ui

import (
	"fmt"
	"io"
	"iter"
)

// NoScriptsMessage is printed by `pn run` for a manifest without scripts.
const NoScriptsMessage = "There are no scripts in package.json"

// WriteScripts lists scripts under a header, one name line followed by an
// indented command line each. An empty listing prints NoScriptsMessage.
func WriteScripts(w io.Writer, scripts iter.Seq2[string, string]) error {
	wroteHeader := false
	for name, command := range scripts {
		if !wroteHeader {
			if _, err := fmt.Fprintln(w, "Commands available via `pn run`:"); err != nil {
				return err
			}
			wroteHeader = true
		}
		if _, err := fmt.Fprintf(w, "  %s\n    %s\n", name, command); err != nil {
			return err
		}
	}
	if !wroteHeader {
		_, err := fmt.Fprintln(w, NoScriptsMessage)
		return err
	}
	return nil
}
