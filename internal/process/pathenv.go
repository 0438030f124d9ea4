package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pnpm/pn/internal/pnerr"
)

// DefaultBinDir is where package managers link the executables of installed
// dependencies, relative to the package directory.
var DefaultBinDir = filepath.Join("node_modules", ".bin")

// PathEnv returns the current PATH with binDir as its first entry. With no
// PATH set the result is binDir alone.
func PathEnv(binDir string) (string, error) {
	return joinPathList(binDir, os.Getenv("PATH"))
}

func joinPathList(binDir, existing string) (string, error) {
	entries := append([]string{binDir}, filepath.SplitList(existing)...)
	for _, e := range entries {
		if strings.ContainsRune(e, os.PathListSeparator) {
			return "", &pnerr.NodeBinPathError{
				Dir: binDir,
				Err: fmt.Errorf("path %q contains separator %q", e, os.PathListSeparator),
			}
		}
	}
	return strings.Join(entries, string(os.PathListSeparator)), nil
}
