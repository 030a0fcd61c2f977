package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScanOptions configures directory scanning.
type ScanOptions struct {
	// MaxDepth limits recursion depth. Values below 1 fall back to the
	// default of 20.
	MaxDepth int

	// IncludeHidden includes entries whose name starts with '.'.
	IncludeHidden bool

	// SkipDirs lists directory names (exact matches, not paths) that are
	// never descended into.
	SkipDirs []string

	// FileFilter, when set, decides per filename whether a file is
	// reported. Nil reports every file.
	FileFilter func(name string) bool
}

// DefaultSkipDirs are directory names that never contain corpus content.
var DefaultSkipDirs = []string{
	"node_modules", ".git", "vendor", "target", "build", "dist",
	".cache", "__pycache__", ".vscode", ".idea",
}

// FileInfo describes a discovered file, with Path relative to the scan root.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scanner walks a directory tree inside an os.Root boundary.
type Scanner struct {
	root    *os.Root
	rootDir string
	opts    ScanOptions
	visited map[string]bool
}

// NewScanner opens a scanner rooted at dir. Close must be called when the
// scanner is no longer needed.
func NewScanner(dir string, opts ScanOptions) (*Scanner, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("scan directory cannot be empty")
	}

	abs, err := filepath.Abs(ExpandPath(dir))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve scan directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", abs)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot open scan root: %w", err)
	}

	if opts.MaxDepth < 1 {
		opts.MaxDepth = 20
	}
	if opts.SkipDirs == nil {
		opts.SkipDirs = DefaultSkipDirs
	}

	return &Scanner{root: root, rootDir: abs, opts: opts}, nil
}

// Root returns the absolute directory the scanner is bound to.
func (s *Scanner) Root() string {
	return s.rootDir
}

// Close releases the scanner's root handle.
func (s *Scanner) Close() error {
	if s.root == nil {
		return nil
	}
	err := s.root.Close()
	s.root = nil
	return err
}

// Scan walks the tree and returns every file that passes the configured
// filters, paths relative to the scan root. Unreadable directories are
// skipped rather than failing the whole scan.
func (s *Scanner) Scan() ([]FileInfo, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner is closed")
	}
	s.visited = make(map[string]bool)

	var files []FileInfo
	if err := s.walk(".", 1, &files); err != nil {
		return nil, fmt.Errorf("directory scan failed: %w", err)
	}
	return files, nil
}

func (s *Scanner) walk(rel string, depth int, out *[]FileInfo) error {
	if depth > s.opts.MaxDepth {
		return nil
	}

	clean := filepath.Clean(rel)
	if s.visited[clean] {
		// Already seen through another link; avoid loops.
		return nil
	}
	s.visited[clean] = true

	dir, err := s.root.Open(rel)
	if err != nil {
		return nil
	}
	entries, err := dir.ReadDir(-1)
	dir.Close()
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		entryPath := name
		if rel != "." {
			entryPath = filepath.Join(rel, name)
		}

		if entry.IsDir() {
			if s.skipDir(name) {
				continue
			}
			if err := s.walk(entryPath, depth+1, out); err != nil {
				return err
			}
			continue
		}

		if s.opts.FileFilter != nil && !s.opts.FileFilter(name) {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		*out = append(*out, FileInfo{Name: name, Path: entryPath, Size: size})
	}
	return nil
}

func (s *Scanner) skipDir(name string) bool {
	for _, skip := range s.opts.SkipDirs {
		if name == skip {
			return true
		}
	}
	return false
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
