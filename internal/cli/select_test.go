package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selectTree generates a database for cliTree and returns its path.
func selectTree(t *testing.T) string {
	t.Helper()
	srcDir := cliTree(t)
	_, _, err := runCommand(t, "generate", srcDir)
	require.NoError(t, err)
	return filepath.Join(srcDir, "boards.cfg")
}

func TestSelectCommand_Terms(t *testing.T) {
	db := selectTree(t)

	stdout, _, err := runCommand(t, "select", "--db", db, "armv7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "armv7: snow")
	assert.Contains(t, stdout, "all: snow")
	assert.NotContains(t, stdout, "spring")
}

func TestSelectCommand_AllByDefault(t *testing.T) {
	db := selectTree(t)

	stdout, _, err := runCommand(t, "select", "--db", db)
	require.NoError(t, err)
	// The artifact sorts spring's aarch64 line before snow's arm line.
	assert.Contains(t, stdout, "all: spring snow")
}

func TestSelectCommand_ExcludeWins(t *testing.T) {
	db := selectTree(t)

	stdout, _, err := runCommand(t, "select", "--db", db, "--exclude", "spring")
	require.NoError(t, err)
	assert.Contains(t, stdout, "all: snow")
	assert.NotContains(t, stdout, "spring")
}

func TestSelectCommand_UnknownBoardWarns(t *testing.T) {
	db := selectTree(t)

	_, stderr, err := runCommand(t, "select", "--db", db, "--board", "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "Boards not found: ghost")
}

func TestSelectCommand_NamedBoardCoveredByTerm(t *testing.T) {
	db := selectTree(t)

	// snow is both named and matched by the term; that is a clean
	// selection, not a missing-board failure.
	stdout, stderr, err := runCommand(t, "select", "--db", db, "--board", "snow", "armv7")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Boards not found")
	assert.Contains(t, stdout, "all: snow")
}

func TestSelectCommand_JSONOutput(t *testing.T) {
	db := selectTree(t)

	stdout, _, err := runCommand(t, "select", "--format", "json", "--db", db, "armv7", "nosuchterm")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"snow"}, data["all"])

	byTerm, ok := data["by_term"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"snow"}, byTerm["armv7"])
	assert.Equal(t, []interface{}{}, byTerm["nosuchterm"], "empty terms encode as lists, not null")
}

func TestSelectCommand_MissingDatabase(t *testing.T) {
	_, _, err := runCommand(t, "select", "--db", filepath.Join(t.TempDir(), "nope.cfg"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
