package boards

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Evaluator answers named-symbol queries against one loaded configuration
// fragment. Implementations are not safe for concurrent use; the orchestrator
// constructs one per worker.
type Evaluator interface {
	// Load evaluates the fragment at path, replacing any previously loaded state.
	Load(path string) error

	// Value returns the string value of a named symbol, or "" if the symbol
	// is undefined or unset.
	Value(name string) string

	// Flag probes a boolean-style symbol by name. An undefined symbol is
	// treated as unset and reported as false.
	Flag(name string) bool

	// Symbols returns the names of all symbols defined by the loaded
	// fragment, in deterministic order.
	Symbols() []string
}

// symbolTable maps record fields to the evaluator symbols that provide them.
// The target field is derived from the filename instead.
var symbolTable = []struct {
	field  func(*Params) *string
	symbol string
}{
	{func(p *Params) *string { return &p.Arch }, "SYS_ARCH"},
	{func(p *Params) *string { return &p.CPU }, "SYS_CPU"},
	{func(p *Params) *string { return &p.SoC }, "SYS_SOC"},
	{func(p *Params) *string { return &p.Vendor }, "SYS_VENDOR"},
	{func(p *Params) *string { return &p.Board }, "SYS_BOARD"},
	{func(p *Params) *string { return &p.Config }, "SYS_CONFIG_NAME"},
}

// targetPrefix marks the build-target selector symbols checked in
// warn-targets mode; exactly one is expected to be enabled per fragment.
const targetPrefix = "TARGET_"

// Params holds the parameters extracted from one configuration fragment,
// plus the status and maintainer information attached during merge.
type Params struct {
	Arch   string
	CPU    string
	SoC    string
	Vendor string
	Board  string
	Target string
	Config string

	Status      string
	Maintainers string
}

// fields returns the persisted columns in artifact order.
func (p *Params) fields() []string {
	return []string{p.Status, p.Arch, p.CPU, p.SoC, p.Vendor, p.Board,
		p.Target, p.Config, p.Maintainers}
}

// Scanner extracts board parameters from configuration fragments.
type Scanner struct {
	eval        Evaluator
	warnTargets bool
}

// NewScanner creates a scanner over the given evaluator. If warnTargets is
// true, each scan also verifies that the fragment enables exactly one
// build-target selector symbol.
func NewScanner(eval Evaluator, warnTargets bool) *Scanner {
	return &Scanner{eval: eval, warnTargets: warnTargets}
}

// Scan loads one fragment file and extracts its board parameters.
//
// The target name is always derived from the filename (basename minus the
// fragment suffix), independent of evaluator output. Unset symbols are
// normalized to the "-" sentinel. Data-quality findings are returned as
// warnings and never fail the scan.
func (s *Scanner) Scan(fragmentPath string) (Params, []string, error) {
	leaf := filepath.Base(fragmentPath)
	// The suffix must appear exactly once, at the end of the name.
	idx := strings.Index(leaf, ConfigSuffix)
	if idx < 0 || idx+len(ConfigSuffix) != len(leaf) {
		return Params{}, nil, &InvalidFragmentNameError{Name: leaf}
	}
	target := leaf[:idx]

	if err := s.eval.Load(fragmentPath); err != nil {
		return Params{}, nil, fmt.Errorf("scan %s: %w", leaf, err)
	}

	params := Params{Target: target}
	for _, entry := range symbolTable {
		value := s.eval.Value(entry.symbol)
		if value == "" {
			value = Sentinel
		}
		*entry.field(&params) = value
	}

	var warnings []string
	if s.warnTargets {
		warnings = s.checkTarget(leaf, target)
	}

	normalizeArch(&params, s.eval)
	return params, warnings, nil
}

// checkTarget verifies that exactly one TARGET_xxx symbol is enabled.
// Zero enabled and more than one enabled each yield a warning, not an error.
func (s *Scanner) checkTarget(leaf, expect string) []string {
	var warnings []string
	var enabled string
	for _, name := range s.eval.Symbols() {
		if !strings.HasPrefix(name, targetPrefix) || s.eval.Value(name) != "y" {
			continue
		}
		tname := strings.ToLower(name[len(targetPrefix):])
		if enabled != "" {
			warnings = append(warnings, fmt.Sprintf(
				"WARNING: %s: Duplicate %sxxx: %s and %s", leaf, targetPrefix, enabled, tname))
		} else {
			enabled = tname
		}
	}
	if enabled == "" {
		cfgName := strings.ToUpper(strings.ReplaceAll(expect, "-", "_"))
		warnings = append(warnings, fmt.Sprintf(
			"WARNING: %s: No %s%s enabled", leaf, targetPrefix, cfgName))
	}
	return warnings
}

// normalizeArch applies the architecture fix-up rules. The rules are
// idempotent: running them on an already-normalized record changes nothing.
func normalizeArch(params *Params, eval Evaluator) {
	// armv8 cores report the 32-bit family name but run the 64-bit ISA
	if params.Arch == "arm" && params.CPU == "armv8" {
		params.Arch = "aarch64"
	}

	// riscv is split into 32/64-bit variants by a separate flag,
	// defaulting to 64-bit when the flag is unreadable
	if params.Arch == "riscv" {
		if eval.Flag("ARCH_RV32I") {
			params.Arch = "riscv32"
		} else {
			params.Arch = "riscv64"
		}
	}
}
