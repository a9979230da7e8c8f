package boards

import (
	"fmt"
	"regexp"
	"strings"
)

// Expr is a single regular expression matched against board properties.
// The match is anchored at the start of each property.
type Expr struct {
	expr string
	re   *regexp.Regexp
}

// NewExpr compiles a new expression.
func NewExpr(expr string) (*Expr, error) {
	re, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return nil, fmt.Errorf("bad selection expression %q: %w", expr, err)
	}
	return &Expr{expr: expr, re: re}, nil
}

// Matches reports whether any of the properties match the expression.
func (e *Expr) Matches(props []string) bool {
	for _, prop := range props {
		if e.re.MatchString(prop) {
			return true
		}
	}
	return false
}

// String returns the original expression text.
func (e *Expr) String() string {
	return e.expr
}

// Term is a list of expressions, each of which must match a board's
// properties for the board to be selected. Terms provide the AND half of the
// selection language; the OR half is the argument list itself.
type Term struct {
	exprs []*Expr
}

// Add appends an expression to the list of those that must all match.
func (t *Term) Add(e *Expr) {
	t.exprs = append(t.exprs, e)
}

// Matches reports whether every expression in the term matches at least one
// of the properties.
func (t *Term) Matches(props []string) bool {
	for _, e := range t.exprs {
		if !e.Matches(props) {
			return false
		}
	}
	return true
}

// String returns the term's canonical form, expressions joined by '&'.
func (t *Term) String() string {
	parts := make([]string, len(t.exprs))
	for i, e := range t.exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "&")
}

// BuildTerms converts selection arguments to a list of terms.
//
// Each argument is tokenized on whitespace; the '&' operator joins adjacent
// expressions into a single term, so
//
//	["arm & freescale sandbox", "tegra"]
//
// produces three terms: arm&freescale, sandbox and tegra. All expressions of
// the first term must match for a board to be selected by it.
func BuildTerms(args []string) ([]*Term, error) {
	var syms []string
	for _, arg := range args {
		for _, word := range strings.Fields(arg) {
			var build []string
			for _, part := range strings.Split(word, "&") {
				if part != "" {
					build = append(build, part)
				}
				build = append(build, "&")
			}
			syms = append(syms, build[:len(build)-1]...)
		}
	}

	var terms []*Term
	var term *Term
	oper := false
	for _, sym := range syms {
		switch {
		case sym == "&":
			oper = true
		case oper && term != nil:
			e, err := NewExpr(sym)
			if err != nil {
				return nil, err
			}
			term.Add(e)
			oper = false
		default:
			if term != nil {
				terms = append(terms, term)
			}
			e, err := NewExpr(sym)
			if err != nil {
				return nil, err
			}
			term = &Term{}
			term.Add(e)
			oper = false
		}
	}
	if term != nil {
		terms = append(terms, term)
	}
	return terms, nil
}
