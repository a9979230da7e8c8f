package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/916BGAI/boarddb/internal/boards"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Output string
}

// checkResult is the payload reported by the check command.
type checkResult struct {
	Output   string `json:"output"`
	UpToDate bool   `json:"up_to_date"`
}

func (r checkResult) String() string {
	if r.UpToDate {
		return r.Output + " is up to date"
	}
	return r.Output + " is stale"
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [src-dir]",
		Short: "Check whether the board database is up to date",
		Long: `Check whether the board database artifact is still valid.

The artifact is stale if any fragment or MAINTAINERS/Kconfig file is newer
than it, if it uses the deprecated format, or if it mentions a target whose
fragment no longer exists.

Exit codes:
  0  up to date
  1  stale or missing
  2  artifact exists but cannot be read`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcDir := "."
			if len(args) == 1 {
				srcDir = args[0]
			}
			return runCheck(opts, srcDir, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "artifact path (default from project config)")

	return cmd
}

func runCheck(opts *CheckOptions, srcDir string, cmd *cobra.Command) error {
	cfg, err := LoadProjectConfig(srcDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load project config", err)
	}
	output := opts.Output
	if output == "" {
		output = filepath.Join(srcDir, cfg.Output)
	}

	upToDate, err := boards.IsUpToDate(output, filepath.Join(srcDir, cfg.Configs), srcDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to check board database", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := formatter.Success(checkResult{Output: output, UpToDate: upToDate}); err != nil {
		return err
	}
	if !upToDate {
		return NewExitError(ExitFailure, "board database is stale")
	}
	return nil
}
