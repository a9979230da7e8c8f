package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/916BGAI/boarddb/internal/boards"
)

// ProjectConfigName is the optional per-tree configuration file consulted by
// all commands, looked up relative to the source root.
const ProjectConfigName = ".boarddb.yaml"

// DefaultOutput is the artifact path used when neither the config file nor
// the command line names one.
const DefaultOutput = "boards.cfg"

// ProjectConfig holds per-tree defaults. Command-line flags override any
// value set here.
type ProjectConfig struct {
	// Output is the artifact path, relative to the source root.
	Output string `yaml:"output"`

	// Configs is the fragment directory, relative to the source root.
	Configs string `yaml:"configs"`

	// Jobs is the default worker count for the parallel scan.
	Jobs int `yaml:"jobs"`

	// Exclude lists expressions always excluded from selection.
	Exclude []string `yaml:"exclude"`
}

// LoadProjectConfig reads the project configuration under srcDir. A missing
// file yields the defaults; a malformed file is an error.
func LoadProjectConfig(srcDir string) (*ProjectConfig, error) {
	cfg := &ProjectConfig{
		Output:  DefaultOutput,
		Configs: boards.ConfigDirName,
		Jobs:    runtime.NumCPU(),
	}

	data, err := os.ReadFile(filepath.Join(srcDir, ProjectConfigName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read project config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ProjectConfigName, err)
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Configs == "" {
		cfg.Configs = boards.ConfigDirName
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = runtime.NumCPU()
	}
	return cfg, nil
}
