package inventory

import (
	"path/filepath"
	"strings"

	"github.com/bethropolis/bsa-matrix/internal/logger"
	gitignore "github.com/denormal/go-gitignore"
)

// matcher decides whether an entry is worth a warning
type matcher struct {
	repo        gitignore.GitIgnore
	checkHidden bool
	logger      logger.Interface
}

func newMatcher(absRoot string, opts ScanOptions) *matcher {
	m := &matcher{checkHidden: opts.checkHidden, logger: opts.Logger}
	if !opts.useGitignore {
		return m
	}

	repo, err := gitignore.NewRepository(absRoot)
	if err != nil {
		m.logger.Warn("inventory: cannot load .gitignore rules from '%s': %v", absRoot, err)
		return m
	}
	m.repo = repo
	return m
}

// classify returns the reason an entry is suspicious, if any. relPath is
// relative to the scan root, absPath is the same entry on disk.
func (m *matcher) classify(relPath, absPath string, isDir bool) (Reason, bool) {
	if relPath == "" || relPath == "." {
		return "", false
	}

	base := filepath.Base(relPath)
	if base == ".git" && isDir {
		return ReasonGitDir, true
	}
	if m.checkHidden && strings.HasPrefix(base, ".") {
		return ReasonHidden, true
	}

	if m.repo != nil && m.gitignored(absPath, isDir) {
		return ReasonGitignore, true
	}
	return "", false
}

func (m *matcher) gitignored(absPath string, isDir bool) (ignored bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("inventory: gitignore matcher panicked on %q: %v", absPath, r)
			ignored = false
		}
	}()

	match := m.repo.Absolute(absPath, isDir)
	return match != nil && match.Ignore()
}
