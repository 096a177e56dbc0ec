package inventory

import (
	"context"

	"github.com/bethropolis/bsa-matrix/internal/logger"
)

// ScanOptions configures Scan
type ScanOptions struct {
	Logger       logger.Interface
	Context      context.Context
	checkHidden  bool
	useGitignore bool
}

func defaultOptions() ScanOptions {
	return ScanOptions{
		Logger:       logger.Noop{},
		Context:      context.Background(),
		checkHidden:  true,
		useGitignore: true,
	}
}

// Option is a functional option for configuring ScanOptions
type Option func(*ScanOptions)

// WithLogger sets a custom logger for the scan
func WithLogger(l logger.Interface) Option {
	return func(opts *ScanOptions) {
		if l != nil {
			opts.Logger = l
		}
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *ScanOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithHiddenCheck enables or disables flagging dot files and directories
func WithHiddenCheck(enabled bool) Option {
	return func(opts *ScanOptions) {
		opts.checkHidden = enabled
	}
}

// WithGitignore enables or disables flagging entries matched by .gitignore
func WithGitignore(enabled bool) Option {
	return func(opts *ScanOptions) {
		opts.useGitignore = enabled
	}
}
