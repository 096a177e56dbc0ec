package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bethropolis/bsa-matrix/internal/combo"
	"github.com/bethropolis/bsa-matrix/internal/config"
	"github.com/bethropolis/bsa-matrix/internal/runner"
)

func TestExecuteUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "one argument", args: []string{"bsarch"}},
		{name: "three arguments", args: []string{"bsarch", "dir", "extra"}},
		{name: "unknown flag", args: []string{"--bogus", "bsarch", "dir"}},
		{name: "unknown format", args: []string{"--format", "fo4", "bsarch", "dir"}},
		{name: "json and markdown", args: []string{"--json", "--markdown", "bsarch", "dir"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			run := func(context.Context, *config.Config, io.Writer, io.Writer) error {
				called = true
				return nil
			}

			var stderr bytes.Buffer
			code := execute(context.Background(), tt.args, &bytes.Buffer{}, &stderr, run)
			if code != ExitUsage {
				t.Errorf("exit code = %d, want %d", code, ExitUsage)
			}
			if called {
				t.Error("application ran despite a usage error")
			}
			if !strings.Contains(stderr.String(), "Usage:") {
				t.Errorf("usage text missing from stderr:\n%s", stderr.String())
			}
		})
	}
}

func TestExecuteParsesConfig(t *testing.T) {
	t.Parallel()

	var got *config.Config
	run := func(_ context.Context, cfg *config.Config, _, _ io.Writer) error {
		got = cfg
		return nil
	}

	code := execute(context.Background(),
		[]string{"--dry-run", "--format", "sse", "-v", "--out", "/tmp/out", "bsarch", "mods/data"},
		&bytes.Buffer{}, &bytes.Buffer{}, run)
	if code != ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got.Archiver != "bsarch" || got.SourceDir != "mods/data" {
		t.Errorf("positional args = %q %q", got.Archiver, got.SourceDir)
	}
	if !got.DryRun || !got.Verbose || got.OutputDir != "/tmp/out" {
		t.Errorf("flags not bound: %+v", got)
	}
	formats, _ := got.SelectedFormats()
	if len(formats) != 1 || formats[0] != combo.FormatSSE {
		t.Errorf("formats = %v, want [sse]", formats)
	}
}

func TestExecuteExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitOK},
		{name: "archiver exit status", err: &runner.JobError{ExitCode: 7, Err: errors.New("exit status 7")}, want: 7},
		{name: "archiver did not start", err: &runner.JobError{ExitCode: 1, Err: errors.New("not found")}, want: 1},
		{name: "other failure", err: errors.New("mkdir failed"), want: ExitFailure},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run := func(context.Context, *config.Config, io.Writer, io.Writer) error { return tt.err }
			if code := execute(context.Background(), []string{"bsarch", "dir"}, &bytes.Buffer{}, &bytes.Buffer{}, run); code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestExecuteVersion(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	run := func(context.Context, *config.Config, io.Writer, io.Writer) error {
		t.Error("application ran for --version")
		return nil
	}
	if code := execute(context.Background(), []string{"--version"}, &stdout, &bytes.Buffer{}, run); code != ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), config.Version) {
		t.Errorf("version output = %q", stdout.String())
	}
}
