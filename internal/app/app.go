package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bethropolis/bsa-matrix/internal/combo"
	"github.com/bethropolis/bsa-matrix/internal/config"
	"github.com/bethropolis/bsa-matrix/internal/inventory"
	"github.com/bethropolis/bsa-matrix/internal/logger"
	"github.com/bethropolis/bsa-matrix/internal/printer"
	"github.com/bethropolis/bsa-matrix/internal/runner"
	"github.com/bethropolis/bsa-matrix/internal/setup"
	"github.com/bethropolis/bsa-matrix/internal/summary"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer // dry-run plan and archiver stdout
	Errors io.Writer // log lines and archiver stderr

	// executor overrides process launching; nil means os/exec
	executor runner.Executor
}

// New creates a new App instance
func New(cfg *config.Config, stdout, stderr io.Writer) *App {
	log := logger.New(stderr, cfg.Verbose, cfg.UseColors)

	// Apply log level if specified (overrides verbose/quiet flags)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Output: stdout,
		Errors: stderr,
	}
}

// Run executes the main application logic. The returned error is a
// *runner.JobError when the archiver failed.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	a.log.Debug("Archiver: %s", a.cfg.Archiver)
	a.log.Debug("Source directory: %s", a.cfg.SourceDir)
	a.log.Debug("Color output: %v", a.cfg.UseColors)

	archiver, err := setup.ResolveArchiver(a.cfg.Archiver)
	if err != nil {
		a.log.Error("%v", err)
		return err
	}
	source, err := setup.ResolveSource(a.cfg.SourceDir)
	if err != nil {
		a.log.Error("%v", err)
		return err
	}

	formats, err := a.cfg.SelectedFormats()
	if err != nil {
		a.log.Error("%v", err)
		return err
	}
	jobs := combo.Jobs(formats, combo.Combinations(combo.Flags()))
	a.log.Debug("Planned %d jobs over formats %v", len(jobs), formats)

	// --- Pre-flight scan ---
	if !a.cfg.NoScan {
		s, err := inventory.Scan(source,
			inventory.WithLogger(a.log),
			inventory.WithContext(ctx),
		)
		if err != nil {
			// bsarch reports the real failure; the scan is advisory
			a.log.Warn("Pre-flight scan failed: %v", err)
		} else {
			summary.DisplayInventory(a.log, s, a.Errors, a.cfg.Quiet)
		}
	}

	if a.cfg.DryRun {
		return a.printPlan(archiver, source, jobs)
	}

	outDir, err := setup.OutputDir(a.cfg.OutputDir)
	if err != nil {
		a.log.Error("%v", err)
		return err
	}
	if !a.cfg.Quiet {
		a.log.Info("Packing %s into %d archives in %s", source, len(jobs), outDir)
	}

	opts := setup.RunnerOptions(a.cfg, a.log, outDir)
	if !a.cfg.Quiet {
		opts = append(opts, runner.WithStdout(a.Output))
	}
	opts = append(opts, runner.WithStderr(a.Errors), runner.WithExecutor(a.executor))

	done, err := runner.New(archiver, opts...).Run(ctx, source, jobs)
	if err != nil {
		a.log.Debug("%d of %d archives were packed before the failure", done, len(jobs))
		a.log.Error("%v", err)
		return err
	}

	summary.DisplayResults(a.log, done, outDir, time.Since(startTime), a.cfg.Quiet)
	return nil
}

func (a *App) printPlan(archiver, source string, jobs []combo.Job) error {
	p := printer.New(archiver, source).WithOutput(a.Output).WithColors(a.cfg.UseColors)
	switch {
	case a.cfg.JSONOutput:
		a.log.Debug("JSON output mode enabled")
		p.WithJSON(true).WithColors(false)
	case a.cfg.MarkdownOutput:
		a.log.Debug("Markdown output mode enabled")
		p.WithMarkdown(true).WithColors(false)
	}

	for _, job := range jobs {
		if err := p.PrintJob(job); err != nil {
			return fmt.Errorf("app: print plan: %w", err)
		}
	}
	if err := p.Finalize(); err != nil {
		return fmt.Errorf("app: print plan: %w", err)
	}

	if outDir, err := setup.OutputDirPath(a.cfg.OutputDir); err == nil && !a.cfg.Quiet {
		a.log.Info("Dry run: %d invocations would write to %s", p.Count(), outDir)
	}
	return nil
}
