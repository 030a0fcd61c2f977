// Package filemanager discovers skill files in the configured skills
// directory and maps their on-disk paths to routing path segments. It is
// the file-discovery side of resource addressing: the router itself never
// touches the filesystem.
package filemanager

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"skillmcp/internal/logging"
	"skillmcp/pkg/fileops"
)

// markdownExtensions contains supported markdown file extensions.
var markdownExtensions = []string{
	".md", ".mdown", ".mkdn", ".mkd", ".markdown",
}

// FileManager scans a skills directory for markdown skill files.
type FileManager struct {
	skillsDir string
	logger    *logging.AppLogger
}

// NewFileManager creates a manager bound to skillsDir. The directory must
// exist.
func NewFileManager(skillsDir string, logger *logging.AppLogger) (*FileManager, error) {
	scanner, err := fileops.NewScanner(skillsDir, fileops.ScanOptions{})
	if err != nil {
		return nil, fmt.Errorf("invalid skills directory: %w", err)
	}
	abs := scanner.Root()
	scanner.Close()

	return &FileManager{skillsDir: abs, logger: logger}, nil
}

// SkillsDir returns the absolute skills directory path.
func (fm *FileManager) SkillsDir() string {
	return fm.skillsDir
}

// GetAbsolutePath returns the absolute path for a discovered file.
func (fm *FileManager) GetAbsolutePath(item FileItem) string {
	return filepath.Join(fm.skillsDir, item.Path)
}

// ScanSkills walks the skills directory and returns every markdown file,
// paths relative to the skills directory.
func (fm *FileManager) ScanSkills() ([]FileItem, error) {
	scanner, err := fileops.NewScanner(fm.skillsDir, fileops.ScanOptions{
		FileFilter: IsMarkdownFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create directory scanner: %w", err)
	}
	defer scanner.Close()

	files, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan skills directory: %w", err)
	}

	items := make([]FileItem, 0, len(files))
	for _, file := range files {
		items = append(items, FileItem{Name: file.Name, Path: file.Path})
	}

	fm.logger.Debug("Scanned skills directory", "fileCount", len(items))
	return items, nil
}

// RouteSegments converts a file's relative path into the raw routing path
// segments used for URI derivation: one segment per directory plus the
// filename with its extension stripped. Routing syntax in the names, like
// "(group)" and "[param]", is passed through untouched for the router to
// classify.
func RouteSegments(relPath string) []string {
	clean := filepath.ToSlash(filepath.Clean(relPath))
	segments := strings.Split(clean, "/")
	if len(segments) == 0 {
		return segments
	}

	last := segments[len(segments)-1]
	if ext := filepath.Ext(last); ext != "" && last != ext {
		segments[len(segments)-1] = strings.TrimSuffix(last, ext)
	}
	return segments
}

// IsMarkdownFile checks if a filename has a markdown extension.
func IsMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(markdownExtensions, ext)
}
