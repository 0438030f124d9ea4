// Package config loads pn's optional YAML configuration and merges it with
// environment and flag overrides into one immutable Config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfig   = "PN_CONFIG"
	EnvLogLevel = "PN_LOG_LEVEL"
)

// Config is pn's configuration.
type Config struct {
	// PackageManager receives passthrough commands.
	PackageManager string `yaml:"package_manager"`
	// Shell runs scripts and raw commands with `-c`.
	Shell string `yaml:"shell"`
	// BinDir is prepended to PATH for scripts.
	BinDir string `yaml:"bin_dir"`
	// Passthrough names extra commands forwarded to PackageManager.
	Passthrough []string `yaml:"passthrough"`
	LogLevel    string   `yaml:"log_level"`

	// WorkspaceRoot is set by --workspace-root, never by the file.
	WorkspaceRoot bool `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PackageManager: "pnpm",
		Shell:          "sh",
		BinDir:         filepath.Join("node_modules", ".bin"),
		LogLevel:       "warn",
	}
}

// Load builds the configuration. path, or $PN_CONFIG when path is empty,
// names a file that must exist. Otherwise <user config dir>/pn/config.yaml is
// read if present. $PN_LOG_LEVEL overrides log_level.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	required := path != ""
	if !required {
		path = defaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
		switch {
		case err == nil:
			if err := decode(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case required || !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg, rejecting unknown keys. Empty documents are
// allowed.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pn", "config.yaml")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PackageManager) == "" {
		return fmt.Errorf("config: package_manager must not be empty")
	}
	if strings.TrimSpace(c.Shell) == "" {
		return fmt.Errorf("config: shell must not be empty")
	}
	if c.BinDir == "" {
		return fmt.Errorf("config: bin_dir must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel parses a log level name such as "debug" or "warn".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q (must be debug, info, warn, or error)", s)
	}
	return lvl, nil
}
