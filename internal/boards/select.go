package boards

import (
	"fmt"
	"sort"
	"strings"
)

// Selection is the result of selecting a subset of boards.
//
// Selection is returned as an explicit value; board records are never marked
// in place. ByTerm records provenance: which term caused each target to be
// selected. Targets included by an explicit name list or by the
// everything-selected default appear in All only.
type Selection struct {
	// All is the union of selected target names, in board order.
	All []string

	// Terms lists the canonical term strings in argument order.
	Terms []string

	// ByTerm maps a canonical term string to the targets it selected.
	ByTerm map[string][]string

	selected map[string]bool
}

// Contains reports whether the target is in the selected set.
func (s *Selection) Contains(target string) bool {
	return s.selected[target]
}

// Selected returns the selected boards from the collection, in board order.
func (b *Boards) Selected(sel *Selection) []*Board {
	var out []*Board
	for _, brd := range b.boards {
		if sel.Contains(brd.Target) {
			out = append(out, brd)
		}
	}
	return out
}

// SelectBoards selects boards matching the given criteria.
//
// Normally either names (an explicit list of targets) or args (a list of
// term strings to match against board properties) is used. Both may be given,
// in which case they are additive. If both are empty, every board is
// selected.
//
// A board is checked against the terms in order and credited to the first
// term that fully matches; remaining terms are not evaluated for that board.
// Exclusion expressions always win: a board matching one is dropped no matter
// how it was included.
//
// Returns the selection and a list of warnings (names that matched no board).
func (b *Boards) SelectBoards(args, exclude, names []string) (*Selection, []string, error) {
	terms, err := BuildTerms(args)
	if err != nil {
		return nil, nil, err
	}

	var excludeList []*Expr
	for _, expr := range exclude {
		e, err := NewExpr(expr)
		if err != nil {
			return nil, nil, err
		}
		excludeList = append(excludeList, e)
	}

	nameSet := make(map[string]bool, len(names))
	for _, name := range names {
		nameSet[name] = true
	}

	sel := &Selection{
		ByTerm:   make(map[string][]string, len(terms)),
		selected: make(map[string]bool),
	}
	// Entries start as empty slices so a term that selects nothing still
	// encodes as [] rather than null.
	for _, term := range terms {
		sel.Terms = append(sel.Terms, term.String())
		sel.ByTerm[term.String()] = []string{}
	}

	found := make(map[string]bool)
	for _, brd := range b.boards {
		// A listed name counts as found no matter how its board ends up
		// included, so an overlapping term does not make it "not found".
		if nameSet[brd.Target] {
			found[brd.Target] = true
		}
		props := brd.Props()
		matchingTerm := ""
		include := false
		switch {
		case len(terms) > 0:
			for _, term := range terms {
				if term.Matches(props) {
					matchingTerm = term.String()
					include = true
					break
				}
			}
			if !include && nameSet[brd.Target] {
				include = true
			}
		case len(nameSet) > 0:
			include = nameSet[brd.Target]
		default:
			include = true
		}

		for _, e := range excludeList {
			if e.Matches(props) {
				include = false
				break
			}
		}

		if include {
			if matchingTerm != "" {
				sel.ByTerm[matchingTerm] = append(sel.ByTerm[matchingTerm], brd.Target)
			}
			sel.All = append(sel.All, brd.Target)
			sel.selected[brd.Target] = true
		}
	}

	var warnings []string
	if len(names) > 0 {
		var missing []string
		for name := range nameSet {
			if !found[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			warnings = append(warnings, fmt.Sprintf("Boards not found: %s", strings.Join(missing, ", ")))
		}
	}

	return sel, warnings, nil
}
