package boards

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// headerComment is the fixed comment block written at the top of the
// artifact. The column list doubles as the file's only schema documentation.
const headerComment = `#
# List of boards
#   Automatically generated by boarddb: don't edit
#
# Status, Arch, CPU, SoC, Vendor, Board, Target, Config, Maintainers

`

// FormatBoards renders board parameters as the artifact's line set:
// column widths computed per field over all records, fields left-justified
// and separated by a two-space gutter, trailing whitespace trimmed, lines
// sorted case-insensitively.
func FormatBoards(paramsList []Params) []string {
	var widths []int
	for _, params := range paramsList {
		fields := params.fields()
		if widths == nil {
			widths = make([]int, len(fields))
		}
		for i, field := range fields {
			if len(field) > widths[i] {
				widths[i] = len(field)
			}
		}
	}

	lines := make([]string, 0, len(paramsList))
	for _, params := range paramsList {
		parts := make([]string, 0, len(widths))
		for i, field := range params.fields() {
			parts = append(parts, fmt.Sprintf("%-*s", widths[i], field))
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return strings.ToLower(lines[i]) < strings.ToLower(lines[j])
	})
	return lines
}

// WriteBoards columnates, sorts and writes board parameters to the output
// file, replacing it entirely. The artifact is never patched in place.
func WriteBoards(paramsList []Params, output string) error {
	lines := FormatBoards(paramsList)
	content := headerComment + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write boards: %w", err)
	}
	return nil
}
