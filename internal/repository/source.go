package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skillmcp/internal/logging"
	"skillmcp/pkg/fileops"
)

// Source abstracts a skill corpus location. Implementations validate their
// configuration, perform any setup (cloning, fetching), and return an
// absolute local path ready for scanning.
type Source interface {
	// Prepare validates and prepares the source, returning the absolute
	// local directory holding the corpus.
	Prepare(logger *logging.AppLogger) (string, error)

	// Describe returns a short human-readable description for logs and
	// status output.
	Describe() string
}

// LocalSource is an existing local directory used directly as the corpus.
type LocalSource struct {
	Path string
}

// NewLocalSource creates a local source for the given directory.
func NewLocalSource(path string) *LocalSource {
	return &LocalSource{Path: path}
}

func (ls *LocalSource) Describe() string {
	return fmt.Sprintf("local directory %s", ls.Path)
}

// Prepare checks that the directory exists and is readable.
func (ls *LocalSource) Prepare(logger *logging.AppLogger) (string, error) {
	if strings.TrimSpace(ls.Path) == "" {
		return "", fmt.Errorf("skills directory cannot be empty")
	}

	abs, err := filepath.Abs(fileops.ExpandPath(ls.Path))
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", ls.Path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("skills directory is not accessible: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("skills path is not a directory: %s", abs)
	}

	logger.Debug("Local source prepared", "path", abs)
	return abs, nil
}
