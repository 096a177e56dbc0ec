package inventory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Scan walks rootDir and counts what it holds. Symlinks are not followed.
// Unreadable entries are recorded and skipped; only an unusable root or a
// cancelled context fails the scan.
func Scan(rootDir string, opts ...Option) (Summary, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := options.Logger

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return Summary{}, fmt.Errorf("inventory: failed to get absolute path for '%s': %w", rootDir, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return Summary{}, fmt.Errorf("inventory: %w", err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("inventory: '%s' is not a directory", absRoot)
	}

	summary := Summary{Root: absRoot}
	m := newMatcher(absRoot, options)
	flagged := make(map[string]bool)

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-options.Context.Done():
			return options.Context.Err()
		default:
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			summary.Unreadable = append(summary.Unreadable, path)
			return nil
		}
		if rel == "." {
			return err
		}

		isDir := d != nil && d.IsDir()
		if err != nil {
			log.Warn("inventory: cannot read %q: %v", rel, err)
			summary.Unreadable = append(summary.Unreadable, rel)
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			summary.Dirs++
		} else {
			summary.Files++
			if d.Type().IsRegular() {
				if fi, err := d.Info(); err == nil {
					summary.Bytes += fi.Size()
				}
			}
		}

		if underFlagged(rel, flagged) {
			return nil
		}
		if reason, ok := m.classify(rel, path, isDir); ok {
			log.Debug("inventory: %q flagged (%s)", rel, reason)
			summary.Suspicious = append(summary.Suspicious, Suspicious{Path: filepath.ToSlash(rel), Reason: reason, IsDir: isDir})
			if isDir {
				flagged[rel] = true
			}
		}
		return nil
	})

	log.Debug("inventory: scanned %s in %s", absRoot, time.Since(startTime))
	if walkErr != nil {
		return summary, fmt.Errorf("inventory: walk '%s': %w", absRoot, walkErr)
	}
	return summary, nil
}

func underFlagged(rel string, flagged map[string]bool) bool {
	for dir := filepath.Dir(rel); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if flagged[dir] {
			return true
		}
	}
	return false
}
