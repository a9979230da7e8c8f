package boards

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ownershipEntry is one target's binding in the maintainers database.
type ownershipEntry struct {
	status      string
	maintainers []string
}

// MaintainersDatabase holds board status and maintainer information
// accumulated from MAINTAINERS files.
//
// The database is rebuilt from scratch on every run by a full tree walk;
// there is no incremental update path. A target bound by two records takes
// the later binding, with no duplicate detection.
type MaintainersDatabase struct {
	entries  map[string]ownershipEntry
	warnings []string
}

// NewMaintainersDatabase creates an empty database.
func NewMaintainersDatabase() *MaintainersDatabase {
	return &MaintainersDatabase{entries: make(map[string]ownershipEntry)}
}

// Warnings returns the data-quality warnings collected so far, in the order
// they were recorded.
func (db *MaintainersDatabase) Warnings() []string {
	return db.warnings
}

// GetStatus returns the status of the given target: "Active", "Orphan" or
// the "-" sentinel. An unknown status string or a target with no entry at all
// records a warning and reports the sentinel.
func (db *MaintainersDatabase) GetStatus(target string) string {
	entry, ok := db.entries[target]
	if !ok {
		db.warnings = append(db.warnings, fmt.Sprintf("WARNING: no status info for '%s'", target))
		return Sentinel
	}
	switch {
	case strings.HasPrefix(entry.status, "Maintained"),
		strings.HasPrefix(entry.status, "Supported"):
		return "Active"
	case strings.HasPrefix(entry.status, "Orphan"):
		return "Orphan"
	}
	db.warnings = append(db.warnings,
		fmt.Sprintf("WARNING: %s: unknown status for '%s'", entry.status, target))
	return Sentinel
}

// GetMaintainers returns the maintainers of the given target, colon-joined.
//
// Returns "" and records a warning if the target is unknown, its status is
// Orphan, or its maintainer list is empty or sentinel-only.
func (db *MaintainersDatabase) GetMaintainers(target string) string {
	if entry, ok := db.entries[target]; ok && !strings.HasPrefix(entry.status, "Orphan") {
		m := entry.maintainers
		if len(m) > 1 || (len(m) == 1 && m[0] != Sentinel) {
			return strings.Join(m, ":")
		}
	}
	db.warnings = append(db.warnings, fmt.Sprintf("WARNING: no maintainers for '%s'", target))
	return ""
}

// ParseFile parses one MAINTAINERS file and accumulates its records.
//
// A file is a sequence of blank-line-delimited records. Within a record,
// recognized line prefixes are:
//
//	M:  maintainer (also accepted in the commented form #M:)
//	S:  status, free text; the last one in a record wins
//	F:  file glob relative to srcDir, filtered to fragment files under configs/
//	N:  regex matched (unanchored) against fragment names under configs/
//
// On each record boundary every accumulated target is bound to the record's
// (status, maintainers) snapshot. Fragments named by records resolve to
// targets by stripping the fragment suffix.
func (db *MaintainersDatabase) ParseFile(srcDir, fname string) error {
	inf, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("parse %s: %w", fname, err)
	}
	defer inf.Close()

	var (
		targets     []string
		maintainers []string
		status      = Sentinel
	)
	flush := func() {
		snapshot := append([]string(nil), maintainers...)
		for _, target := range targets {
			db.entries[target] = ownershipEntry{status: status, maintainers: snapshot}
		}
		targets = nil
		maintainers = nil
		status = Sentinel
	}

	scanner := bufio.NewScanner(inf)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// Commented maintainers still count.
		if strings.HasPrefix(line, "#M:") {
			line = line[1:]
		}
		tag, rest := splitTag(line)
		switch tag {
		case "M:":
			maintainers = append(maintainers, norm.NFC.String(rest))
		case "S:":
			status = rest
		case "F:":
			found, err := db.globTargets(srcDir, rest)
			if err != nil {
				return fmt.Errorf("parse %s: %w", fname, err)
			}
			targets = append(targets, found...)
		case "N:":
			found, err := db.regexTargets(srcDir, rest)
			if err != nil {
				return fmt.Errorf("parse %s: %w", fname, err)
			}
			targets = append(targets, found...)
		default:
			if line == "" {
				flush()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("parse %s: %w", fname, err)
	}
	flush()
	return nil
}

// splitTag splits a record line into its two-character tag and trimmed rest.
func splitTag(line string) (string, string) {
	if len(line) < 2 {
		return "", ""
	}
	return line[:2], strings.TrimSpace(line[2:])
}

// globTargets resolves an F: file-glob reference to target names. Only
// matches that pass through the configs/ directory directly under srcDir and
// end in the fragment suffix become targets.
func (db *MaintainersDatabase) globTargets(srcDir, pattern string) ([]string, error) {
	items, err := filepath.Glob(filepath.Join(srcDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad file glob %q: %w", pattern, err)
	}
	var targets []string
	for _, item := range items {
		front, rear, ok := strings.Cut(item, ConfigDirName+"/")
		if !ok || filepath.Clean(front) != filepath.Clean(srcDir) {
			continue
		}
		if target, ok := strings.CutSuffix(rear, ConfigSuffix); ok {
			targets = append(targets, target)
		}
	}
	return targets, nil
}

// regexTargets resolves an N: regex reference by walking the configs/ tree
// and matching the pattern against each fragment name with the suffix
// stripped. The match is an unanchored search, so 'am335x.*' selects
// am335x_guardian among others.
func (db *MaintainersDatabase) regexTargets(srcDir, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad name regex %q: %w", pattern, err)
	}
	var targets []string
	configDir := filepath.Join(srcDir, ConfigDirName)
	if _, err := os.Stat(configDir); err != nil {
		// No configs tree, nothing to match.
		return nil, nil
	}
	err = filepath.WalkDir(configDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name, ok := strings.CutPrefix(filepath.ToSlash(rel), ConfigDirName+"/")
		if !ok {
			return nil
		}
		if target, ok := strings.CutSuffix(name, ConfigSuffix); ok && re.MatchString(target) {
			targets = append(targets, target)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return targets, nil
}
