package dispatch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pnpm/pn/internal/config"
	"github.com/pnpm/pn/internal/pnerr"
	"github.com/pnpm/pn/internal/process"
	"github.com/pnpm/pn/internal/testutil"
	"github.com/pnpm/pn/internal/workspace"
)

type harness struct {
	d      *Dispatcher
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T, cwd string, configure func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	if configure != nil {
		configure(cfg)
	}
	h := &harness{}
	runner := process.NewRunner()
	runner.Stdin = nil
	runner.Stdout = &h.stdout
	runner.Stderr = &h.stderr
	runner.Shell = cfg.Shell
	runner.BinDir = cfg.BinDir
	h.d = New(Options{
		Config: cfg,
		Cwd:    cwd,
		Runner: runner,
		Stdout: &h.stdout,
		Stderr: &h.stderr,
	})
	return h
}

func realPath(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRun_script(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"test", "echo hello world"})
	h := newHarness(t, dir, nil)

	if err := h.d.Run("test", nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if h.stdout.String() != "hello world\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	wantBanner := "\n> app@1.0.0 " + dir + "\n> echo hello world\n\n"
	if h.stderr.String() != wantBanner {
		t.Errorf("stderr = %q, want %q", h.stderr.String(), wantBanner)
	}
}

func TestRun_scriptArgsAreQuoted(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"say", "printf '%s|'"})
	h := newHarness(t, dir, nil)

	if err := h.d.Run("say", []string{"a b", ";ls /", "$(id)", "it's"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got, want := h.stdout.String(), "a b|;ls /|$(id)|it's|"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if !strings.Contains(h.stderr.String(), `> printf '%s|' 'a b' ';ls /' '$(id)' "it's"`) {
		t.Errorf("banner should show the quoted command: %q", h.stderr.String())
	}
}

func TestRun_missingScript(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"test", "true"})
	h := newHarness(t, dir, nil)

	err := h.d.Run("missingName", nil)
	var missing *pnerr.MissingScriptError
	if !errors.As(err, &missing) {
		t.Fatalf("Run() error = %v, want MissingScriptError", err)
	}
	if missing.Name != "missingName" {
		t.Errorf("Name = %q", missing.Name)
	}
}

func TestRun_listEmpty(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0")
	h := newHarness(t, dir, nil)

	if err := h.d.Run("", nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if h.stdout.String() != "There are no scripts in package.json\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestRun_list(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0",
		[2]string{"start", "node ."},
		[2]string{"build", "tsc"},
	)
	h := newHarness(t, dir, nil)

	if err := h.d.Run("", nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := "Commands available via `pn run`:\n  start\n    node .\n  build\n    tsc\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}
	if h.stderr.Len() != 0 {
		t.Errorf("listing should not spawn anything, stderr = %q", h.stderr.String())
	}
}

func TestRun_scriptFailure(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"fail", "exit 3"})
	h := newHarness(t, dir, nil)

	err := h.d.Run("fail", nil)
	var scriptErr *pnerr.ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("Run() error = %v, want ScriptError", err)
	}
	if scriptErr.Name != "fail" || scriptErr.Status != 3 {
		t.Errorf("ScriptError = %+v", scriptErr)
	}
	if pnerr.ExitCode(err) != 3 {
		t.Errorf("ExitCode() = %d, want 3", pnerr.ExitCode(err))
	}
}

func TestRun_scriptKilled(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"die", "kill -9 $$"})
	h := newHarness(t, dir, nil)

	err := h.d.Run("die", nil)
	var term *pnerr.UnexpectedTerminationError
	if !errors.As(err, &term) {
		t.Fatalf("Run() error = %v, want UnexpectedTerminationError", err)
	}
	if term.Command != "kill -9 $$" {
		t.Errorf("Command = %q", term.Command)
	}
}

func TestRun_workspaceRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"package.json":              `{"scripts": {"test": "echo hello from workspace root && pwd -P"}}`,
		workspace.MarkerFileName:    "packages: ['packages/*']",
		"packages/foo/package.json": `{"scripts": {"test": "echo hello from foo"}}`,
	})
	pkg := filepath.Join(root, "packages", "foo")

	h := newHarness(t, pkg, func(c *config.Config) { c.WorkspaceRoot = true })
	if err := h.d.Run("test", nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := "hello from workspace root\n" + realPath(t, root) + "\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}

	h = newHarness(t, pkg, nil)
	if err := h.d.Run("test", nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if h.stdout.String() != "hello from foo\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestRun_workspaceRootNotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), workspace.MarkerFileName)); err == nil {
		t.Skip("temp dir ancestry contains a workspace marker")
	}
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"test", "echo hello world"})
	h := newHarness(t, dir, func(c *config.Config) { c.WorkspaceRoot = true })

	err := h.d.Run("test", nil)
	if err == nil || !strings.Contains(err.Error(), "--workspace-root may only be used in a workspace") {
		t.Fatalf("Run() error = %v", err)
	}
	if h.stdout.Len() != 0 {
		t.Errorf("nothing should run, stdout = %q", h.stdout.String())
	}
}

func TestRun_noManifest(t *testing.T) {
	h := newHarness(t, t.TempDir(), nil)

	err := h.d.Run("test", nil)
	var noManifest *pnerr.NoManifestError
	if !errors.As(err, &noManifest) {
		t.Fatalf("Run() error = %v, want NoManifestError", err)
	}
}

func TestRun_localBinOnPath(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"lint", "my-linter --fix"})
	testutil.WriteTree(t, dir, map[string]string{
		"node_modules/.bin/my-linter": "#!/bin/sh\necho linted \"$@\"\n",
	})
	if err := os.Chmod(filepath.Join(dir, "node_modules", ".bin", "my-linter"), 0o755); err != nil { //nolint:gosec // test executable
		t.Fatal(err)
	}
	h := newHarness(t, dir, nil)

	if err := h.d.Run("lint", nil); err != nil {
		t.Fatalf("Run() error: %v, stderr = %s", err, h.stderr.String())
	}
	if h.stdout.String() != "linted --fix\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestOther_passthrough(t *testing.T) {
	h := newHarness(t, t.TempDir(), func(c *config.Config) { c.PackageManager = "echo" })

	if err := h.d.Other([]string{"install", "--frozen-lockfile", "a b"}); err != nil {
		t.Fatalf("Other() error: %v", err)
	}
	if h.stdout.String() != "install --frozen-lockfile a b\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestOther_passthroughBeatsScripts(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"install", "echo from script"})
	h := newHarness(t, dir, func(c *config.Config) { c.PackageManager = "echo" })

	if err := h.d.Other([]string{"install"}); err != nil {
		t.Fatalf("Other() error: %v", err)
	}
	if h.stdout.String() != "install\n" {
		t.Errorf("stdout = %q, want the package manager to run", h.stdout.String())
	}
}

func TestOther_passthroughExitCode(t *testing.T) {
	h := newHarness(t, t.TempDir(), func(c *config.Config) { c.PackageManager = "false" })

	err := h.d.Other([]string{"add", "left-pad"})
	var exitErr *pnerr.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Other() error = %v, want ExitError", err)
	}
	if exitErr.Code != 1 || !pnerr.Silent(err) {
		t.Errorf("ExitError = %+v", exitErr)
	}
}

func TestOther_passthroughSpawnFailure(t *testing.T) {
	h := newHarness(t, t.TempDir(), func(c *config.Config) { c.PackageManager = "pn-test-no-such-package-manager" })

	err := h.d.Other([]string{"install"})
	var spawnErr *pnerr.SpawnProcessError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("Other() error = %v, want SpawnProcessError", err)
	}
}

func TestOther_configuredPassthrough(t *testing.T) {
	h := newHarness(t, t.TempDir(), func(c *config.Config) {
		c.PackageManager = "echo"
		c.Passthrough = []string{"exec"}
	})

	if err := h.d.Other([]string{"exec", "tsc"}); err != nil {
		t.Fatalf("Other() error: %v", err)
	}
	if h.stdout.String() != "exec tsc\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestOther_script(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "2.0.0", [2]string{"greet", "echo hello"})
	h := newHarness(t, dir, nil)

	if err := h.d.Other([]string{"greet", "big world"}); err != nil {
		t.Fatalf("Other() error: %v", err)
	}
	if h.stdout.String() != "hello big world\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	if !strings.Contains(h.stderr.String(), "> app@2.0.0 "+dir) {
		t.Errorf("missing banner: %q", h.stderr.String())
	}
}

func TestOther_scriptFailure(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"check", "exit 5"})
	h := newHarness(t, dir, nil)

	err := h.d.Other([]string{"check"})
	var scriptErr *pnerr.ScriptError
	if !errors.As(err, &scriptErr) || scriptErr.Status != 5 {
		t.Fatalf("Other() error = %v, want ScriptError with status 5", err)
	}
}

func TestOther_shell(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0")
	h := newHarness(t, dir, nil)

	if err := h.d.Other([]string{"echo", "a", "&&", "echo", "b"}); err != nil {
		t.Fatalf("Other() error: %v", err)
	}
	if h.stdout.String() != "a\nb\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	if h.stderr.Len() != 0 {
		t.Errorf("shell commands print no banner, stderr = %q", h.stderr.String())
	}
}

func TestOther_shellExitCode(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0")
	h := newHarness(t, dir, nil)

	err := h.d.Other([]string{"exit", "4"})
	var exitErr *pnerr.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 4 {
		t.Fatalf("Other() error = %v, want ExitError with code 4", err)
	}
}

func TestOther_shellKilled(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0")
	h := newHarness(t, dir, nil)

	err := h.d.Other([]string{"kill", "-9", "$$"})
	var term *pnerr.UnexpectedTerminationError
	if !errors.As(err, &term) {
		t.Fatalf("Other() error = %v, want UnexpectedTerminationError", err)
	}
	if term.Command != "kill -9 $$" {
		t.Errorf("Command = %q", term.Command)
	}
}

func TestOther_shellInWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"package.json":              `{}`,
		workspace.MarkerFileName:    "",
		"packages/foo/package.json": `{}`,
	})
	h := newHarness(t, filepath.Join(root, "packages", "foo"), func(c *config.Config) { c.WorkspaceRoot = true })

	if err := h.d.Other([]string{"pwd", "-P"}); err != nil {
		t.Fatalf("Other() error: %v", err)
	}
	if got := strings.TrimSpace(h.stdout.String()); got != realPath(t, root) {
		t.Errorf("pwd = %q, want %q", got, realPath(t, root))
	}
}

func TestOther_shellNeedsManifest(t *testing.T) {
	h := newHarness(t, t.TempDir(), nil)

	err := h.d.Other([]string{"echo", "hi"})
	var noManifest *pnerr.NoManifestError
	if !errors.As(err, &noManifest) {
		t.Fatalf("Other() error = %v, want NoManifestError", err)
	}
}

func TestOther_empty(t *testing.T) {
	h := newHarness(t, t.TempDir(), nil)
	if err := h.d.Other(nil); err == nil {
		t.Fatal("expected error for empty command")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRun_listWriteError(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePackageJSON(t, dir, "app", "1.0.0", [2]string{"a", "b"})
	h := newHarness(t, dir, nil)
	h.d.stdout = failingWriter{}

	err := h.d.Run("", nil)
	var writeErr *pnerr.WriteStdoutError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Run() error = %v, want WriteStdoutError", err)
	}
}
