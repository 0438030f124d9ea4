package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/pnpm/pn/internal/manifest"
)

// Context holds the effective package directory and its manifest.
type Context struct {
	Dir          string
	ManifestPath string
	Manifest     *manifest.Manifest
}

// Load resolves the effective directory and loads its package.json. With
// useRoot set, the directory is the workspace root above cwd; otherwise cwd.
func Load(cwd string, useRoot bool) (*Context, error) {
	dir, err := ResolveDir(cwd, useRoot)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(dir, manifest.FileName)
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	return &Context{
		Dir:          dir,
		ManifestPath: manifestPath,
		Manifest:     m,
	}, nil
}

// ResolveDir returns the workspace root above cwd when useRoot is set, or
// cwd itself.
func ResolveDir(cwd string, useRoot bool) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	if !useRoot {
		return dir, nil
	}
	return FindRoot(dir)
}
