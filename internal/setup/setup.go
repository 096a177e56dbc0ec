// Package setup prepares paths and runner wiring before any archiver runs
package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/bsa-matrix/internal/config"
	"github.com/bethropolis/bsa-matrix/internal/logger"
	"github.com/bethropolis/bsa-matrix/internal/runner"
)

// OutputDirName is the directory created next to the executable.
const OutputDirName = "bin"

// executable is swapped in tests.
var executable = os.Executable

// OutputDir returns the directory archives are written to, creating it if
// needed. An empty override means "bin" beside the running executable.
func OutputDir(override string) (string, error) {
	dir, err := OutputDirPath(override)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("setup: create output directory: %w", err)
	}
	return dir, nil
}

// OutputDirPath resolves the output directory without touching the disk.
func OutputDirPath(override string) (string, error) {
	dir := override
	if dir == "" {
		exe, err := executable()
		if err != nil {
			return "", fmt.Errorf("setup: locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Join(filepath.Dir(exe), OutputDirName)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("setup: output directory %q: %w", dir, err)
	}
	return abs, nil
}

// ResolveArchiver makes path absolute unless it is a bare command name, which
// is left for PATH lookup.
func ResolveArchiver(path string) (string, error) {
	if !strings.ContainsRune(path, '/') && !strings.ContainsRune(path, filepath.Separator) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("setup: archiver path %q: %w", path, err)
	}
	return abs, nil
}

// ResolveSource makes the source directory absolute. The archiver runs inside
// the output directory, so relative paths would otherwise point elsewhere.
func ResolveSource(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("setup: source directory %q: %w", path, err)
	}
	return abs, nil
}

// RunnerOptions builds the runner configuration for a run writing to outDir
func RunnerOptions(cfg *config.Config, log logger.Interface, outDir string) []runner.Option {
	opts := []runner.Option{
		runner.WithLogger(log),
		runner.WithDir(outDir),
	}

	if cfg.ShowProgress && !cfg.Quiet {
		opts = append(opts, runner.WithProgress(func(p runner.Progress) {
			log.Info("[%d/%d] packing %s", p.Index+1, p.Total, p.File)
		}))
	}

	if cfg.Quiet {
		opts = append(opts, runner.WithStdout(io.Discard))
	}

	return opts
}
