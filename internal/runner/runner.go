// Package runner invokes the external archiver once per job, in order,
// stopping at the first failure.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/bethropolis/bsa-matrix/internal/combo"
)

// Command is a single process launch.
type Command struct {
	Path   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Executor starts a process and waits for it to exit.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}

// ExecExecutor launches real processes with os/exec.
type ExecExecutor struct{}

// Execute runs cmd to completion.
func (ExecExecutor) Execute(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// JobError reports the job that stopped the run.
type JobError struct {
	Index    int
	Job      combo.Job
	ExitCode int
	Err      error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("runner: job %d (%s) failed with exit status %d: %v", e.Index+1, e.Job, e.ExitCode, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// Runner drives the archiver through a job list
type Runner struct {
	archiver string
	opts     Options
}

// New creates a Runner for the archiver executable at path
func New(archiver string, opts ...Option) *Runner {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Runner{archiver: archiver, opts: options}
}

// Run packs sourceDir once per job. Jobs run one after another; the first
// failing job aborts the run and is returned as a *JobError. The count of
// jobs that completed is always returned.
func (r *Runner) Run(ctx context.Context, sourceDir string, jobs []combo.Job) (int, error) {
	log := r.opts.Logger

	for i, job := range jobs {
		if r.opts.ProgressFn != nil {
			r.opts.ProgressFn(Progress{Index: i, Total: len(jobs), File: job.FileName()})
		}

		args := job.Args(sourceDir)
		log.Debug("runner: [%d/%d] %s %s", i+1, len(jobs), r.archiver, strings.Join(args, " "))

		err := r.opts.Executor.Execute(ctx, Command{
			Path:   r.archiver,
			Args:   args,
			Dir:    r.opts.Dir,
			Stdout: r.opts.Stdout,
			Stderr: r.opts.Stderr,
		})
		if err != nil {
			return i, &JobError{Index: i, Job: job, ExitCode: exitCode(err), Err: err}
		}
	}

	return len(jobs), nil
}

// exitCode extracts the child's exit status, or 1 when it never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
