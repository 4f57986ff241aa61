// Package golden compares test output against files under a package's
// testdata directory. Run tests with -update to rewrite them.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var update = flag.Bool("update", false, "update golden files")

// Dir returns the testdata directory of the calling test file.
func Dir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// Assert compares got against the golden file <dir>/<name>.golden,
// rewriting the file instead when -update is set. Trailing newlines
// are not significant.
func Assert(t *testing.T, dir, name, got string) {
	t.Helper()
	path := goldenPath(t, dir, name)

	if *update {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
		return
	}

	data, err := os.ReadFile(path) //nolint:gosec // testdata path controlled by test
	if err != nil {
		t.Fatalf("read golden %s: %v (run with -update to create)", path, err)
	}

	want := strings.TrimRight(string(data), "\n")
	if strings.TrimRight(got, "\n") != want {
		t.Errorf("output does not match %s:\nwant: %s\ngot:  %s", path, want, got)
	}
}

func goldenPath(t *testing.T, dir, name string) string {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
	return filepath.Join(dir, name+".golden")
}
