package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) int64 {
	t.Helper()

	var total int64
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		total += int64(len(content))
	}
	return total
}

func suspiciousPaths(s Summary) map[string]Reason {
	out := make(map[string]Reason, len(s.Suspicious))
	for _, item := range s.Suspicious {
		out[item.Path] = item.Reason
	}
	return out
}

func TestScanCounts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	bytes := writeTree(t, root, map[string]string{
		"meshes/a.nif":        "nif-data",
		"meshes/sub/b.nif":    "more",
		"textures/c.dds":      "dds",
		"scripts/source/d.ps": "",
	})

	s, err := Scan(root, WithGitignore(false))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if s.Files != 4 {
		t.Errorf("Files = %d, want 4", s.Files)
	}
	if s.Dirs != 5 {
		t.Errorf("Dirs = %d, want 5", s.Dirs)
	}
	if s.Bytes != bytes {
		t.Errorf("Bytes = %d, want %d", s.Bytes, bytes)
	}
	if len(s.Suspicious) != 0 {
		t.Errorf("unexpected suspicious entries: %+v", s.Suspicious)
	}
	if s.Empty() {
		t.Error("Empty() = true for a populated tree")
	}
}

func TestScanFlagsHiddenAndGitDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":          "a",
		".hidden":        "h",
		".git/config":    "[core]",
		".git/refs/head": "ref",
		"sub/.env":       "X=1",
	})

	s, err := Scan(root, WithGitignore(false))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	got := suspiciousPaths(s)
	want := map[string]Reason{
		".hidden":  ReasonHidden,
		".git":     ReasonGitDir,
		"sub/.env": ReasonHidden,
	}
	if len(got) != len(want) {
		t.Errorf("suspicious = %v, want %v", got, want)
	}
	for path, reason := range want {
		if got[path] != reason {
			t.Errorf("suspicious[%q] = %q, want %q", path, got[path], reason)
		}
	}
	if s.Files != 5 {
		t.Errorf("Files = %d, want 5 (flagged files still count)", s.Files)
	}
}

func TestScanHiddenCheckDisabled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{".hidden": "h", "a": "a"})

	s, err := Scan(root, WithGitignore(false), WithHiddenCheck(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Suspicious) != 0 {
		t.Errorf("suspicious = %+v, want none", s.Suspicious)
	}
}

func TestScanGitignore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "*.log\nbuild/\n",
		"keep.esp":         "plugin",
		"debug.log":        "log",
		"build/out.bin":    "bin",
		"meshes/x.nif":     "nif",
		"meshes/trace.log": "log",
	})

	s, err := Scan(root, WithHiddenCheck(false))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	var paths []string
	for path, reason := range suspiciousPaths(s) {
		if reason != ReasonGitignore {
			t.Errorf("%q flagged as %q, want %q", path, reason, ReasonGitignore)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	want := []string{"build", "debug.log", "meshes/trace.log"}
	if len(paths) != len(want) {
		t.Fatalf("gitignored = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("gitignored[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestScanEmptyDir(t *testing.T) {
	t.Parallel()

	s, err := Scan(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Empty() || s.Dirs != 0 {
		t.Errorf("empty dir summary = %+v", s)
	}
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := Scan(filepath.Join(root, "missing")); err == nil {
		t.Error("Scan() of a missing directory succeeded")
	}

	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Scan(file); err == nil {
		t.Error("Scan() of a regular file succeeded")
	}
}

func TestScanCancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(root, WithContext(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}
