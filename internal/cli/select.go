package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/916BGAI/boarddb/internal/boards"
)

// SelectOptions holds flags for the select command.
type SelectOptions struct {
	*RootOptions
	Database string
	Exclude  []string
	Names    []string
}

// selectResult is the payload reported by the select command.
type selectResult struct {
	All    []string            `json:"all"`
	ByTerm map[string][]string `json:"by_term,omitempty"`

	terms []string
}

func (r selectResult) String() string {
	var b strings.Builder
	for _, term := range r.terms {
		fmt.Fprintf(&b, "%s: %s\n", term, strings.Join(r.ByTerm[term], " "))
	}
	fmt.Fprintf(&b, "all: %s", strings.Join(r.All, " "))
	return b.String()
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "select [terms...]",
		Short: "Select targets from the board database",
		Long: `Select a subset of targets from an existing board database.

Each term is a list of regular expressions joined by '&'; all expressions of
a term must match one of a target's properties (target, arch, cpu, board,
vendor, soc, config) for the term to select it. Terms are alternatives: a
target is selected by the first term that matches it. Explicit names given
with --board are additive with terms, and --exclude expressions always win.

With no terms and no --board, every target is selected.

Example:
  boarddb select 'arm & freescale' tegra
  boarddb select --board snow --board sandbox --exclude 'riscv.*'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "board database path (default from project config)")
	cmd.Flags().StringArrayVar(&opts.Exclude, "exclude", nil, "expression to exclude (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Names, "board", nil, "explicit target name to include (repeatable)")

	return cmd
}

func runSelect(opts *SelectOptions, args []string, cmd *cobra.Command) error {
	database := opts.Database
	exclude := opts.Exclude
	if database == "" {
		cfg, err := LoadProjectConfig(".")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load project config", err)
		}
		database = filepath.Join(".", cfg.Output)
		exclude = append(exclude, cfg.Exclude...)
	}

	brds, err := boards.ReadBoards(database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read board database", err)
	}

	sel, warnings, err := brds.SelectBoards(args, exclude, opts.Names)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to select boards", err)
	}

	for _, warning := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	result := selectResult{All: sel.All, ByTerm: sel.ByTerm, terms: sel.Terms}
	if err := formatter.Success(result); err != nil {
		return err
	}

	if len(warnings) > 0 {
		return NewExitError(ExitFailure, "some requested boards were not found")
	}
	return nil
}
