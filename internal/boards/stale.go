package boards

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// legacyOptionsMarker identifies artifacts produced in the deprecated format
// that carried an Options column; their presence forces regeneration.
const legacyOptionsMarker = "Options,"

// TryRemove removes a file, ignoring the case where it is already absent.
func TryRemove(fname string) error {
	err := os.Remove(fname)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// IsUpToDate reports whether the board database artifact is still valid.
//
// The artifact is stale if it is missing, if any fragment file or any
// evaluator-definition/MAINTAINERS file is newer than it, if it still uses
// the deprecated format, or if it mentions a target whose fragment no longer
// exists on disk.
//
// Returns an error only if the artifact exists but cannot be opened.
func IsUpToDate(output, configDir, srcDir string) (bool, error) {
	info, err := os.Stat(output)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s: %w", output, err)
	}
	generated := info.ModTime()

	newer, err := anyFileNewer(configDir, generated, func(name string) bool {
		return strings.HasSuffix(name, ConfigSuffix) && !strings.HasPrefix(name, ".")
	})
	if err != nil || newer {
		return false, err
	}

	newer, err = anyFileNewer(srcDir, generated, func(name string) bool {
		if strings.HasSuffix(name, "~") {
			return false // editor backups
		}
		return strings.HasPrefix(name, "Kconfig") || name == "MAINTAINERS"
	})
	if err != nil || newer {
		return false, err
	}

	return allTargetsPresent(output, configDir)
}

// anyFileNewer walks root and reports whether any file accepted by match has
// a timestamp after the given reference time.
func anyFileNewer(root string, ref time.Time, match func(name string) bool) (bool, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	found := false
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !match(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(ref) {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}

// allTargetsPresent re-reads the artifact and verifies that every listed
// target still has a fragment file on disk. A target removed upstream, a
// legacy-format marker or a truncated data line all mark the artifact stale.
func allTargetsPresent(output, configDir string) (bool, error) {
	inf, err := os.Open(output)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", output, err)
	}
	defer inf.Close()

	scanner := bufio.NewScanner(inf)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, legacyOptionsMarker) {
			return false, nil
		}
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 7 {
			return false, nil
		}
		fragment := filepath.Join(configDir, fields[6]+ConfigSuffix)
		if _, err := os.Stat(fragment); err != nil {
			return false, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", output, err)
	}
	return true, nil
}
