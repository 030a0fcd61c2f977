package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file with parent directories under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func scanPaths(t *testing.T, dir string, opts ScanOptions) []string {
	t.Helper()
	scanner, err := NewScanner(dir, opts)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	defer scanner.Close()

	files, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func TestScanFindsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.md", "top")
	writeFile(t, dir, "docs/guide.md", "guide")
	writeFile(t, dir, "docs/deep/nested.md", "nested")

	paths := scanPaths(t, dir, ScanOptions{})

	want := map[string]bool{
		"top.md":                          true,
		filepath.Join("docs", "guide.md"): true,
		filepath.Join("docs", "deep", "nested.md"): true,
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(paths), paths)
	}
	for _, p := range paths {
		if !want[p] {
			t.Errorf("unexpected path %q", p)
		}
	}
}

func TestScanSkipsConfiguredDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.md", "x")
	writeFile(t, dir, "node_modules/dep/readme.md", "x")
	writeFile(t, dir, ".git/config", "x")

	paths := scanPaths(t, dir, ScanOptions{IncludeHidden: true})

	if len(paths) != 1 || paths[0] != "keep.md" {
		t.Errorf("expected only keep.md, got %v", paths)
	}
}

func TestScanHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hidden.md", "x")
	writeFile(t, dir, "visible.md", "x")

	paths := scanPaths(t, dir, ScanOptions{})
	if len(paths) != 1 || paths[0] != "visible.md" {
		t.Errorf("hidden files should be excluded by default, got %v", paths)
	}

	paths = scanPaths(t, dir, ScanOptions{IncludeHidden: true})
	if len(paths) != 2 {
		t.Errorf("expected hidden + visible, got %v", paths)
	}
}

func TestScanFileFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "x")
	writeFile(t, dir, "b.txt", "x")

	paths := scanPaths(t, dir, ScanOptions{
		FileFilter: func(name string) bool { return strings.HasSuffix(name, ".md") },
	})
	if len(paths) != 1 || paths[0] != "a.md" {
		t.Errorf("expected only a.md, got %v", paths)
	}
}

func TestScanRespectsMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/file.md", "x")
	writeFile(t, dir, "a/b/c/d/deep.md", "x")

	paths := scanPaths(t, dir, ScanOptions{MaxDepth: 2})
	if len(paths) != 1 {
		t.Errorf("expected only the shallow file, got %v", paths)
	}
}

func TestNewScannerRejectsBadPaths(t *testing.T) {
	if _, err := NewScanner("", ScanOptions{}); err == nil {
		t.Error("empty path should be rejected")
	}
	if _, err := NewScanner(filepath.Join(t.TempDir(), "missing"), ScanOptions{}); err == nil {
		t.Error("missing directory should be rejected")
	}

	file := filepath.Join(t.TempDir(), "file.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewScanner(file, ScanOptions{}); err == nil {
		t.Error("regular file should be rejected")
	}
}

func TestScanAfterCloseFails(t *testing.T) {
	scanner, err := NewScanner(t.TempDir(), ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if err := scanner.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := scanner.Scan(); err == nil {
		t.Error("scan on a closed scanner should fail")
	}
}
