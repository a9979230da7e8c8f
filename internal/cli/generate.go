package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/916BGAI/boarddb/internal/boards"
	"github.com/916BGAI/boarddb/internal/kconf"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output      string
	Jobs        int
	Force       bool
	Quiet       bool
	WarnTargets bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate [src-dir]",
		Short: "Regenerate the board database if needed",
		Long: `Regenerate the board database artifact from the source tree.

Fragment files under configs/ are scanned in parallel and merged with status
and maintainer information from MAINTAINERS files. If the existing artifact
is newer than every relevant source file and mentions no removed target,
nothing is done unless --force is given.

The artifact is written even when data-quality warnings occur; the exit code
reflects whether any warnings were reported.

Example:
  boarddb generate
  boarddb generate -j 8 --force /path/to/tree`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcDir := "."
			if len(args) == 1 {
				srcDir = args[0]
			}
			return runGenerate(opts, srcDir, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "artifact path (default from project config)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "number of scan workers (default from project config)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "regenerate even if the artifact is up to date")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print nothing if the artifact is up to date")
	cmd.Flags().BoolVar(&opts.WarnTargets, "warn-targets", false, "warn about missing or duplicate TARGET symbols")

	return cmd
}

func runGenerate(opts *GenerateOptions, srcDir string, cmd *cobra.Command) error {
	cfg, err := LoadProjectConfig(srcDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load project config", err)
	}
	output := opts.Output
	if output == "" {
		output = filepath.Join(srcDir, cfg.Output)
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = cfg.Jobs
	}

	gen := &boards.Generator{
		ConfigDir:   filepath.Join(srcDir, cfg.Configs),
		SrcDir:      srcDir,
		Jobs:        jobs,
		WarnTargets: opts.WarnTargets,
		NewEvaluator: func() (boards.Evaluator, error) {
			return kconf.New(kconf.Config{SrcTree: srcDir}), nil
		},
	}

	run := uuid.Must(uuid.NewV7()).String()
	slog.Info("generating board database", "run", run, "output", output, "jobs", jobs)

	upToDate, warnings, err := gen.EnsureBoardList(output, opts.Force)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate board database", err)
	}
	if upToDate {
		if !opts.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date. Nothing to do.\n", output)
		}
		return nil
	}

	for _, warning := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}
	slog.Info("board database written", "run", run, "output", output, "warnings", len(warnings))

	if len(warnings) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("generated with %d warnings", len(warnings)))
	}
	return nil
}
