package ui

import (
	"bytes"
	"errors"
	"testing"
)

func pairs(kv ...string) func(func(string, string) bool) {
	return func(yield func(string, string) bool) {
		for i := 0; i+1 < len(kv); i += 2 {
			if !yield(kv[i], kv[i+1]) {
				return
			}
		}
	}
}

func TestWriteScripts(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScripts(&buf, pairs("build", "tsc", "test", "vitest run")); err != nil {
		t.Fatal(err)
	}
	want := "Commands available via `pn run`:\n" +
		"  build\n    tsc\n" +
		"  test\n    vitest run\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteScripts_empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScripts(&buf, pairs()); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "There are no scripts in package.json\n" {
		t.Errorf("output = %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteScripts_writeError(t *testing.T) {
	if err := WriteScripts(failingWriter{}, pairs("a", "b")); err == nil {
		t.Fatal("expected write error")
	}
	if err := WriteScripts(failingWriter{}, pairs()); err == nil {
		t.Fatal("expected write error")
	}
}
