// Package kconf evaluates configuration fragments.
//
// A fragment is a line-oriented file of symbol assignments in the style
// written by Kconfig tooling:
//
//	CONFIG_SYS_ARCH="arm"
//	CONFIG_TARGET_FOO=y
//	# CONFIG_BAR is not set
//
// The evaluator loads one fragment at a time and answers named-symbol value
// queries against it. Configuration is passed explicitly at construction;
// no process-wide environment is consulted or mutated.
package kconf

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// symbolPrefix is stripped from assignment names; symbols are stored and
// queried without it.
const symbolPrefix = "CONFIG_"

// Config carries the evaluator's environment explicitly.
type Config struct {
	// SrcTree is the root of the source tree the fragments belong to.
	SrcTree string
}

// Evaluator parses configuration fragments and answers symbol queries.
// Not safe for concurrent use; create one per worker.
type Evaluator struct {
	cfg  Config
	syms map[string]string
}

// New creates an evaluator for the given source tree.
func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg, syms: make(map[string]string)}
}

// Load parses the fragment at path, replacing any previously loaded state.
// A relative path that does not resolve from the working directory is retried
// relative to the configured source tree.
func (e *Evaluator) Load(path string) error {
	inf, err := os.Open(path)
	if err != nil && !filepath.IsAbs(path) && e.cfg.SrcTree != "" {
		inf, err = os.Open(filepath.Join(e.cfg.SrcTree, path))
	}
	if err != nil {
		return fmt.Errorf("load fragment: %w", err)
	}
	defer inf.Close()

	syms := make(map[string]string)
	scanner := bufio.NewScanner(inf)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			// "# CONFIG_X is not set" carries no value either way:
			// an absent symbol already reads as unset.
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok || !strings.HasPrefix(name, symbolPrefix) {
			continue
		}
		syms[name[len(symbolPrefix):]] = unquote(value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("load fragment: %w", err)
	}

	e.syms = syms
	return nil
}

// Value returns the string value of a named symbol, or "" if the symbol is
// undefined or unset in the loaded fragment.
func (e *Evaluator) Value(name string) string {
	return e.syms[name]
}

// Flag probes a boolean-style symbol. An undefined symbol reads as false.
func (e *Evaluator) Flag(name string) bool {
	return e.syms[name] == "y"
}

// Symbols returns the names of all symbols defined by the loaded fragment,
// sorted for deterministic iteration.
func (e *Evaluator) Symbols() []string {
	names := make([]string, 0, len(e.syms))
	for name := range e.syms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unquote strips the quotes from a quoted assignment value, leaving plain
// values (y, numbers) untouched.
func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		if unquoted, err := strconv.Unquote(value); err == nil {
			return unquoted
		}
		return value[1 : len(value)-1]
	}
	return value
}
