// Package summary handles display of run results and scan findings
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/bsa-matrix/internal/inventory"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// DisplayResults reports a completed run
func DisplayResults(logger Logger, archives int, outDir string, duration time.Duration, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Packed %d archives into %s.", archives, outDir)
	logger.Info("Run complete in %v.", duration.Round(time.Millisecond))
}

// DisplayInventory reports the pre-flight scan and lists flagged entries
func DisplayInventory(logger Logger, s inventory.Summary, output io.Writer, quiet bool) {
	if !quiet {
		logger.Info("Source %s: %d files in %d directories, %s.", s.Root, s.Files, s.Dirs, humanBytes(s.Bytes))
	}
	if s.Empty() {
		logger.Warn("Source directory %s contains no files.", s.Root)
	}
	if len(s.Unreadable) > 0 {
		logger.Warn("%d entries could not be read and may break packing.", len(s.Unreadable))
	}
	if len(s.Suspicious) == 0 {
		return
	}

	logger.Warn("%d entries will be packed that are hidden, in .git or gitignored:", len(s.Suspicious))
	items := append([]inventory.Suspicious(nil), s.Suspicious...)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})
	for _, item := range items {
		typeStr := "FILE"
		if item.IsDir {
			typeStr = "DIR " // Add space for alignment
		}
		fmt.Fprintf(output, "  %s %-.*s [%s]\n", typeStr, 60, item.Path, item.Reason)
	}
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
