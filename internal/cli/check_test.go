package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_StaleBeforeGeneration(t *testing.T) {
	srcDir := cliTree(t)

	stdout, _, err := runCommand(t, "check", srcDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "is stale")
}

func TestCheckCommand_FreshAfterGeneration(t *testing.T) {
	srcDir := cliTree(t)

	_, _, err := runCommand(t, "generate", srcDir)
	require.NoError(t, err)

	stdout, _, err := runCommand(t, "check", srcDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is up to date")
}

func TestCheckCommand_JSONOutput(t *testing.T) {
	srcDir := cliTree(t)

	stdout, _, err := runCommand(t, "check", "--format", "json", srcDir)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["up_to_date"])
}
