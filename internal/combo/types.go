// Package combo enumerates the archive flag combinations and target formats
// that bsarch is driven through.
package combo

import (
	"fmt"
	"strings"
)

// Flag is a single archive flag bit as understood by bsarch's -af switch.
type Flag uint32

const (
	DirectoryStrings  Flag = 1 << 0
	FileStrings       Flag = 1 << 1
	Compressed        Flag = 1 << 2
	EmbeddedFileNames Flag = 1 << 8
)

var flagNames = map[Flag]string{
	DirectoryStrings:  "directory_strings",
	FileStrings:       "file_strings",
	Compressed:        "compressed",
	EmbeddedFileNames: "embedded_file_names",
}

// Flags returns the known flags in ascending bit order.
func Flags() []Flag {
	return []Flag{DirectoryStrings, FileStrings, Compressed, EmbeddedFileNames}
}

// String returns the flag name for single known bits, "none" for zero and
// the "|"-joined names for combinations. Unknown bits render as hex.
func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	if name, ok := flagNames[f]; ok {
		return name
	}

	var parts []string
	rest := f
	for _, flag := range Flags() {
		if f&flag != 0 {
			parts = append(parts, flagNames[flag])
			rest &^= flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// Hex renders the flag value as uppercase hex without padding or prefix.
func (f Flag) Hex() string {
	return fmt.Sprintf("%X", uint32(f))
}

// Format is a target archive dialect selector.
type Format string

const (
	FormatTES4 Format = "tes4"
	FormatTES5 Format = "tes5"
	FormatSSE  Format = "sse"
)

// Formats returns every supported format in invocation order.
func Formats() []Format {
	return []Format{FormatTES4, FormatTES5, FormatSSE}
}

// ParseFormat accepts a format tag case-insensitively, with or without the
// leading dash bsarch uses on its command line.
func ParseFormat(s string) (Format, error) {
	tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "-"))
	for _, f := range Formats() {
		if string(f) == tag {
			return f, nil
		}
	}
	return "", fmt.Errorf("combo: unknown format %q (want one of tes4, tes5, sse)", s)
}

// Switch is the command line selector for the format, e.g. "-sse".
func (f Format) Switch() string {
	return "-" + string(f)
}

// Job is one archiver invocation.
type Job struct {
	Format Format `json:"format"`
	Flags  Flag   `json:"flags"`
}

// FileName is the archive name bsarch writes for this job.
func (j Job) FileName() string {
	return fmt.Sprintf("%s_%s.bsa", j.Format, j.Flags.Hex())
}

// Args returns the archiver arguments, without the executable itself.
func (j Job) Args(sourceDir string) []string {
	return []string{
		"pack",
		sourceDir,
		j.FileName(),
		j.Format.Switch(),
		"-af:0x" + j.Flags.Hex(),
	}
}

func (j Job) String() string {
	return j.FileName()
}
