// Package printer renders the archiver job plan for --dry-run
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bethropolis/bsa-matrix/internal/combo"
	"github.com/fatih/color"
)

// Printer writes one entry per job in text, JSON or Markdown form
type Printer struct {
	output         io.Writer
	count          int
	useColors      bool
	jsonOutput     bool
	jsonStarted    bool
	markdownOutput bool
	mdStarted      bool
	archiver       string
	sourceDir      string
}

// New creates a Printer for plans that invoke archiver on sourceDir
func New(archiver, sourceDir string) *Printer {
	return &Printer{
		output:    os.Stdout,
		useColors: true,
		archiver:  archiver,
		sourceDir: sourceDir,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	p.markdownOutput = enabled
	return p
}

// JSONJobEntry is one job in JSON output
type JSONJobEntry struct {
	Format string   `json:"format"`
	Flags  string   `json:"flags"`
	Names  string   `json:"names"`
	File   string   `json:"file"`
	Args   []string `json:"args"`
}

// PrintJob outputs a single planned invocation
func (p *Printer) PrintJob(job combo.Job) error {
	p.count++
	argv := append([]string{p.archiver}, job.Args(p.sourceDir)...)

	switch {
	case p.jsonOutput:
		sep := ",\n"
		if !p.jsonStarted {
			sep = "[\n"
			p.jsonStarted = true
		}

		entry := JSONJobEntry{
			Format: string(job.Format),
			Flags:  "0x" + job.Flags.Hex(),
			Names:  job.Flags.String(),
			File:   job.FileName(),
			Args:   argv,
		}
		data, err := json.MarshalIndent(entry, "  ", "  ")
		if err != nil {
			return fmt.Errorf("printer: marshal %s: %w", job, err)
		}
		_, err = fmt.Fprintf(p.output, "%s  %s", sep, data)
		return err

	case p.markdownOutput:
		if !p.mdStarted {
			fmt.Fprint(p.output, "| # | format | flags | file | command |\n|---|---|---|---|---|\n")
			p.mdStarted = true
		}
		_, err := fmt.Fprintf(p.output, "| %d | %s | 0x%s | %s | `%s` |\n",
			p.count, job.Format, job.Flags.Hex(), job.FileName(), strings.Join(argv, " "))
		return err

	default:
		name := fmt.Sprintf("%-14s", job.FileName())
		if p.useColors {
			c := color.New(color.FgCyan, color.Bold)
			c.EnableColor()
			name = c.Sprint(name)
		}
		_, err := fmt.Fprintf(p.output, "%s %s\n", name, strings.Join(argv, " "))
		return err
	}
}

// Finalize completes any pending output (like closing the JSON array)
func (p *Printer) Finalize() error {
	if p.jsonOutput {
		if !p.jsonStarted {
			_, err := fmt.Fprint(p.output, "[]\n")
			return err
		}
		_, err := fmt.Fprint(p.output, "\n]\n")
		return err
	}
	return nil
}

// Count returns the number of jobs printed
func (p *Printer) Count() int {
	return p.count
}
