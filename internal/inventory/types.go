// Package inventory scans the source directory before packing and reports
// what bsarch is about to pick up.
package inventory

// Reason explains why an entry was flagged.
type Reason string

const (
	ReasonHidden    Reason = "hidden"
	ReasonGitDir    Reason = ".git directory"
	ReasonGitignore Reason = "matched .gitignore"
)

// Suspicious is an entry bsarch will pack although it probably should not.
// Entries below a flagged directory are not listed separately.
type Suspicious struct {
	Path   string `json:"path"`
	Reason Reason `json:"reason"`
	IsDir  bool   `json:"is_dir"`
}

// Summary is the result of a scan.
type Summary struct {
	Root       string       `json:"root"`
	Files      int64        `json:"files"`
	Dirs       int64        `json:"dirs"`
	Bytes      int64        `json:"bytes"`
	Suspicious []Suspicious `json:"suspicious,omitempty"`
	Unreadable []string     `json:"unreadable,omitempty"`
}

// Empty reports whether the directory holds no files at all.
func (s Summary) Empty() bool {
	return s.Files == 0
}
