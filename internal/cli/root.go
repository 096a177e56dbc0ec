// Package cli wires the command line onto the application.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bethropolis/bsa-matrix/internal/app"
	"github.com/bethropolis/bsa-matrix/internal/config"
	"github.com/bethropolis/bsa-matrix/internal/runner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Exit codes other than the archiver's own.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks errors that should print usage and exit with ExitUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// runFunc is swapped in tests to observe the parsed configuration.
type runFunc func(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error

func runApp(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	// Configure color globally
	color.NoColor = !cfg.UseColors
	return app.New(cfg, stdout, stderr).Run(ctx)
}

func newRootCommand(ctx context.Context, stdout, stderr io.Writer, run runFunc) *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "bsa-matrix [flags] <bsarch> <directory>",
		Short: "Pack a directory with bsarch under every archive flag combination",
		Long: `bsa-matrix runs bsarch once for every target format (tes4, tes5, sse)
and every combination of the archive flags directory_strings (0x1),
file_strings (0x2), compressed (0x4) and embedded_file_names (0x100).

Each run writes {format}_{flags}.bsa, flags in uppercase hex, into the
output directory ("bin" next to this executable unless --out is given).
Invocations run one at a time; the first failure stops the run.`,
		Example: `  bsa-matrix C:\tools\bsarch.exe D:\mods\MyMod\data
  bsa-matrix --format sse --dry-run --json bsarch ./data`,
		Version:       cfg.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &usageError{fmt.Errorf("requires exactly 2 arguments (<bsarch> <directory>), received %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Finalize(args); err != nil {
				return &usageError{err}
			}
			return run(ctx, cfg, stdout, stderr)
		},
	}

	cfg.Bind(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

// Execute parses args, runs the tool and returns the process exit code:
// the failing archiver's exit status, ExitUsage for bad arguments or
// ExitFailure for anything else.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, args, stdout, stderr, runApp)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, run runFunc) int {
	root := newRootCommand(ctx, stdout, stderr, run)
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err == nil {
		return ExitOK
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}

	var jobErr *runner.JobError
	if errors.As(err, &jobErr) {
		return jobErr.ExitCode
	}
	return ExitFailure
}
