package config

import (
	"fmt"
	"os"

	"github.com/bethropolis/bsa-matrix/internal/combo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// Version is overridden at build time with -ldflags "-X ...config.Version=..."
var Version = "1.0.0"

// Config holds all application configuration settings
type Config struct {
	// Positional arguments
	Archiver  string
	SourceDir string

	// Output settings
	OutputDir      string
	Formats        []string
	DryRun         bool
	JSONOutput     bool
	MarkdownOutput bool

	// Pre-flight scan
	NoScan bool

	// Logging settings
	Verbose      bool
	Quiet        bool
	LogLevel     string
	NoColor      bool
	UseColors    bool
	ShowProgress bool

	Version string
}

// stderrIsTerminal is swapped in tests
var stderrIsTerminal = func() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New creates a Config with default values
func New() *Config {
	return &Config{
		Version: Version,
	}
}

// Bind registers the command-line flags on fs
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.OutputDir, "out", "", "Output directory (default: \"bin\" next to the executable)")
	fs.StringSliceVar(&c.Formats, "format", nil, "Only pack these formats (tes4, tes5, sse); repeatable")
	fs.BoolVar(&c.DryRun, "dry-run", false, "Print the archiver invocations instead of running them")
	fs.BoolVar(&c.JSONOutput, "json", false, "Print the dry-run plan as JSON")
	fs.BoolVar(&c.MarkdownOutput, "markdown", false, "Print the dry-run plan as a Markdown table")
	fs.BoolVar(&c.NoScan, "no-scan", false, "Skip the source directory pre-flight scan")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "Suppress INFO messages and archiver output")
	fs.StringVar(&c.LogLevel, "log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR, NONE); overrides --verbose and --quiet")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	fs.BoolVar(&c.ShowProgress, "progress", false, "Log each archive before it is packed")
}

// Finalize derives computed settings once flags and arguments are parsed
func (c *Config) Finalize(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("config: expected <bsarch> <directory>, got %d arguments", len(args))
	}
	c.Archiver, c.SourceDir = args[0], args[1]

	if c.JSONOutput && c.MarkdownOutput {
		return fmt.Errorf("config: --json and --markdown are mutually exclusive")
	}
	if _, err := c.SelectedFormats(); err != nil {
		return err
	}

	c.UseColors = !c.NoColor && stderrIsTerminal()
	return nil
}

// SelectedFormats returns the formats to pack, in canonical order, without
// duplicates. No --format means all of them.
func (c *Config) SelectedFormats() ([]combo.Format, error) {
	if len(c.Formats) == 0 {
		return combo.Formats(), nil
	}

	want := make(map[combo.Format]bool, len(c.Formats))
	for _, s := range c.Formats {
		f, err := combo.ParseFormat(s)
		if err != nil {
			return nil, fmt.Errorf("config: --format: %w", err)
		}
		want[f] = true
	}

	var formats []combo.Format
	for _, f := range combo.Formats() {
		if want[f] {
			formats = append(formats, f)
		}
	}
	return formats, nil
}
