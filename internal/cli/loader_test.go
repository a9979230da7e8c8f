package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig_Defaults(t *testing.T) {
	cfg, err := LoadProjectConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "boards.cfg", cfg.Output)
	assert.Equal(t, "configs", cfg.Configs)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
	assert.Empty(t, cfg.Exclude)
}

func TestLoadProjectConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `output: db/boards.cfg
configs: board-configs
jobs: 3
exclude:
  - "sandbox.*"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigName), []byte(content), 0o644))

	cfg, err := LoadProjectConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "db/boards.cfg", cfg.Output)
	assert.Equal(t, "board-configs", cfg.Configs)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"sandbox.*"}, cfg.Exclude)
}

func TestLoadProjectConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigName), []byte("jobs: 2\n"), 0o644))

	cfg, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "boards.cfg", cfg.Output)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoadProjectConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigName), []byte("jobs: [1, 2\n"), 0o644))

	_, err := LoadProjectConfig(dir)
	assert.Error(t, err)
}
