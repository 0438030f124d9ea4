package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pnpm/pn/internal/pnerr"
)

// MarkerFileName marks the root of a pnpm workspace. Its content is never read.
const MarkerFileName = "pnpm-workspace.yaml"

// FindRoot walks from start up to the filesystem root and returns the first
// directory containing a MarkerFileName file. start itself is checked first.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", &pnerr.FindUpError{StartDir: start, FileName: MarkerFileName, Err: err}
	}
	for {
		info, err := os.Stat(filepath.Join(dir, MarkerFileName))
		switch {
		case err == nil && !info.IsDir():
			return dir, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", &pnerr.FindUpError{StartDir: start, FileName: MarkerFileName, Err: err}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &pnerr.NotInWorkspaceError{}
		}
		dir = parent
	}
}
