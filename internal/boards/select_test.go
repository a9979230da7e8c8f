package boards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoards() *Boards {
	brds := &Boards{}
	brds.Add(&Board{Status: "Active", Arch: "arm", CPU: "armv7", SoC: "socX",
		Vendor: "vendorA", Name: "boardA", Target: "t1", Config: "cfg1"})
	brds.Add(&Board{Status: "Active", Arch: "arm", CPU: "armv8", SoC: "socY",
		Vendor: "vendorB", Name: "boardB", Target: "t2", Config: "cfg2"})
	brds.Add(&Board{Status: "Orphan", Arch: "powerpc", CPU: "mpc85xx", SoC: "socZ",
		Vendor: "vendorC", Name: "boardC", Target: "t3", Config: "cfg3"})
	return brds
}

func TestSelectBoards_TermsWithProvenance(t *testing.T) {
	brds := testBoards()

	sel, warnings, err := brds.SelectBoards([]string{"vendorA & socX", "vendorB"}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"t1", "t2"}, sel.All)
	assert.True(t, sel.Contains("t1"))
	assert.True(t, sel.Contains("t2"))
	assert.False(t, sel.Contains("t3"))

	assert.Equal(t, []string{"t1"}, sel.ByTerm["vendorA&socX"])
	assert.Equal(t, []string{"t2"}, sel.ByTerm["vendorB"])
}

func TestSelectBoards_FirstMatchingTermWins(t *testing.T) {
	brds := testBoards()

	// t1 matches both terms; provenance must credit the first only.
	sel, _, err := brds.SelectBoards([]string{"armv7", "arm"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"t1"}, sel.ByTerm["armv7"])
	assert.Equal(t, []string{"t2"}, sel.ByTerm["arm"])
}

func TestSelectBoards_ExclusionAlwaysWins(t *testing.T) {
	brds := testBoards()

	sel, _, err := brds.SelectBoards([]string{"arm"}, []string{"vendorB"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, sel.All)

	// Exclusion overrides explicit names too.
	sel, _, err = brds.SelectBoards(nil, []string{"t1"}, []string{"t1", "t3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t3"}, sel.All)
}

func TestSelectBoards_ExplicitNames(t *testing.T) {
	brds := testBoards()

	sel, warnings, err := brds.SelectBoards(nil, nil, []string{"t2", "t3"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"t2", "t3"}, sel.All)
}

func TestSelectBoards_NamesAdditiveWithTerms(t *testing.T) {
	brds := testBoards()

	sel, warnings, err := brds.SelectBoards([]string{"vendorA"}, nil, []string{"t3"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"t1", "t3"}, sel.All)
	assert.Equal(t, []string{"t1"}, sel.ByTerm["vendorA"], "name-selected targets carry no term provenance")
}

func TestSelectBoards_NameCoveredByTermIsFound(t *testing.T) {
	brds := testBoards()

	// t1 is both named and matched by the term; it must not be reported
	// as missing.
	sel, warnings, err := brds.SelectBoards([]string{"vendorA"}, nil, []string{"t1"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"t1"}, sel.All)
	assert.Equal(t, []string{"t1"}, sel.ByTerm["vendorA"])
}

func TestSelectBoards_TermWithNoMatchesYieldsEmptyList(t *testing.T) {
	brds := testBoards()

	sel, _, err := brds.SelectBoards([]string{"vendorA", "nosuchvendor"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, sel.ByTerm["nosuchvendor"])
}

func TestSelectBoards_EverythingByDefault(t *testing.T) {
	brds := testBoards()

	sel, warnings, err := brds.SelectBoards(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"t1", "t2", "t3"}, sel.All)
}

func TestSelectBoards_UnknownNamesWarnOnce(t *testing.T) {
	brds := testBoards()

	sel, warnings, err := brds.SelectBoards(nil, nil, []string{"t1", "ghost", "wraith"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, sel.All)
	require.Len(t, warnings, 1, "missing names are aggregated into one warning")
	assert.Equal(t, "Boards not found: ghost, wraith", warnings[0])
}

func TestSelectBoards_BadExpressions(t *testing.T) {
	brds := testBoards()

	_, _, err := brds.SelectBoards([]string{"(unclosed"}, nil, nil)
	assert.Error(t, err)

	_, _, err = brds.SelectBoards(nil, []string{"(unclosed"}, nil)
	assert.Error(t, err)
}

func TestSelected_ReturnsBoardsInOrder(t *testing.T) {
	brds := testBoards()

	sel, _, err := brds.SelectBoards([]string{"arm"}, nil, nil)
	require.NoError(t, err)

	selected := brds.Selected(sel)
	require.Len(t, selected, 2)
	assert.Equal(t, "t1", selected[0].Target)
	assert.Equal(t, "t2", selected[1].Target)
}
