package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTree creates files under root from a map of slash-separated relative
// paths to contents, creating parent directories as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // test file
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
}

// WritePackageJSON writes a package.json into dir with the given name,
// version and scripts. Scripts are written in the order given.
func WritePackageJSON(t *testing.T, dir, name, version string, scripts ...[2]string) string {
	t.Helper()

	pairs := make([]string, 0, len(scripts))
	for _, s := range scripts {
		pairs = append(pairs, quote(t, s[0])+": "+quote(t, s[1]))
	}
	content := `{"name": ` + quote(t, name) +
		`, "version": ` + quote(t, version) +
		`, "scripts": {` + strings.Join(pairs, ", ") + `}}`

	WriteTree(t, dir, map[string]string{"package.json": content})
	return filepath.Join(dir, "package.json")
}

func quote(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("encoding %q: %v", s, err)
	}
	return string(b)
}
