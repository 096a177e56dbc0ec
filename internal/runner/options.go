package runner

import (
	"io"
	"os"

	"github.com/bethropolis/bsa-matrix/internal/logger"
)

// Options configures a Runner
type Options struct {
	Logger     logger.Interface
	Dir        string
	Stdout     io.Writer
	Stderr     io.Writer
	Executor   Executor
	ProgressFn ProgressCallback
}

// ProgressCallback is called before each job starts.
type ProgressCallback func(p Progress)

// Progress describes the job about to run.
type Progress struct {
	Index int // zero based
	Total int
	File  string
}

func defaultOptions() Options {
	return Options{
		Logger:   logger.Noop{},
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Executor: ExecExecutor{},
	}
}

// Option is a functional option for configuring a Runner
type Option func(*Options)

// WithLogger sets the logger
func WithLogger(l logger.Interface) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithDir sets the working directory of every archiver process; the
// archives land there.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithStdout redirects the archiver's standard output
func WithStdout(w io.Writer) Option {
	return func(o *Options) {
		o.Stdout = w
	}
}

// WithStderr redirects the archiver's standard error
func WithStderr(w io.Writer) Option {
	return func(o *Options) {
		o.Stderr = w
	}
}

// WithExecutor replaces the process launcher
func WithExecutor(e Executor) Option {
	return func(o *Options) {
		if e != nil {
			o.Executor = e
		}
	}
}

// WithProgress adds a progress callback
func WithProgress(fn ProgressCallback) Option {
	return func(o *Options) {
		o.ProgressFn = fn
	}
}
