package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pnpm/pn/internal/pnerr"
)

// FileName is the package manifest looked up in a package directory.
const FileName = "package.json"

// Load reads and parses the manifest at path. A missing file is reported as
// *pnerr.NoManifestError, other read failures as *pnerr.FsError and bad
// content as *pnerr.ParseError.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the package manifest
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &pnerr.NoManifestError{File: path}
		}
		return nil, &pnerr.FsError{Path: path, Err: err}
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &pnerr.ParseError{File: path, Message: err.Error()}
	}
	return m, nil
}

// Parse parses package.json content. Errors carry the line and column of the
// offending byte when the decoder reports one.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, describe(err, data)
	}
	return &m, nil
}

func describe(err error, data []byte) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		offset    int64
	)
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return err
	}
	line, col := position(data, offset)
	return fmt.Errorf("%w at line %d column %d", err, line, col)
}

// position converts a decoder offset, the count of bytes read up to and
// including the offending one, into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset < 1 {
		return 1, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset-1]
	line = 1 + bytes.Count(before, []byte("\n"))
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1)
	return line, col
}
