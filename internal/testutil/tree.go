// Package testutil provides helpers for building throwaway source trees in
// tests: configuration fragments, MAINTAINERS files and timestamp control for
// staleness scenarios.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteTree creates files under root from relative path to contents.
// Parent directories are created as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// SetMTime stamps a file with the given modification time. Staleness checks
// compare timestamps, so tests set them explicitly instead of sleeping.
func SetMTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// Fragment renders a minimal configuration fragment with the standard
// symbols. Empty values are omitted entirely so they read back as unset.
func Fragment(arch, cpu, soc, vendor, board, config string) string {
	var out string
	add := func(symbol, value string) {
		if value != "" {
			out += "CONFIG_" + symbol + "=\"" + value + "\"\n"
		}
	}
	add("SYS_ARCH", arch)
	add("SYS_CPU", cpu)
	add("SYS_SOC", soc)
	add("SYS_VENDOR", vendor)
	add("SYS_BOARD", board)
	add("SYS_CONFIG_NAME", config)
	return out
}
