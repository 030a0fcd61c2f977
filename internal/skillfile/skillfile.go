// Package skillfile parses skill markdown files: YAML frontmatter carrying
// the skill's metadata followed by the guide body served to MCP clients.
package skillfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skillmcp/internal/logging"

	"github.com/adrg/frontmatter"
)

// DefaultMaxFileSize caps how large a single skill file may be.
const DefaultMaxFileSize = 10 << 20 // 10 MiB

// DefaultMIMEType is used when frontmatter does not override it.
const DefaultMIMEType = "text/markdown"

// SkillMeta is the YAML frontmatter structure expected in skill files.
// Description is required; files without it are skipped.
type SkillMeta struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description"`
	MIMEType    string `yaml:"mimeType,omitempty"`
}

// Skill is a parsed skill file: metadata plus the body with frontmatter
// stripped.
type Skill struct {
	// FileName is the base filename, FilePath the path relative to the
	// skills directory.
	FileName string
	FilePath string

	Name        string
	Description string
	MIMEType    string

	// Content is the guide body without frontmatter.
	Content string
}

// Parser reads and validates skill files.
type Parser struct {
	logger  *logging.AppLogger
	maxSize int64
}

// NewParser creates a parser. maxSize <= 0 falls back to DefaultMaxFileSize.
func NewParser(logger *logging.AppLogger, maxSize int64) *Parser {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Parser{logger: logger, maxSize: maxSize}
}

// ParseFile reads a single skill file. relPath is kept on the result for
// URI derivation; absPath is used for I/O.
func (p *Parser) ParseFile(absPath, relPath string) (*Skill, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot stat skill file: %w", err)
	}
	if info.Size() > p.maxSize {
		return nil, fmt.Errorf("skill file exceeds size limit (%d > %d bytes)", info.Size(), p.maxSize)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill file: %w", err)
	}

	var meta SkillMeta
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return nil, fmt.Errorf("no valid frontmatter: %w", err)
	}
	if meta.Description == "" {
		return nil, fmt.Errorf("frontmatter is missing required 'description' field")
	}

	name := meta.Name
	if name == "" {
		name = nameFromFile(filepath.Base(relPath))
	}
	mimeType := meta.MIMEType
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}

	return &Skill{
		FileName:    filepath.Base(relPath),
		FilePath:    relPath,
		Name:        name,
		Description: meta.Description,
		MIMEType:    mimeType,
		Content:     string(body),
	}, nil
}

// ParseAll parses every file under root given by relative path, skipping
// files that fail to parse so one malformed skill does not take down the
// whole corpus. It returns the parsed skills and the number of skipped
// files.
func (p *Parser) ParseAll(root string, relPaths []string) ([]*Skill, int) {
	var skills []*Skill
	var skipped int

	for _, rel := range relPaths {
		skill, err := p.ParseFile(filepath.Join(root, rel), rel)
		if err != nil {
			p.logger.Debug("Skipping skill file", "file", rel, "reason", err)
			skipped++
			continue
		}
		skills = append(skills, skill)
	}

	p.logger.Info("Skill parsing completed",
		"totalFiles", len(relPaths),
		"validSkills", len(skills),
		"skipped", skipped)

	return skills, skipped
}

// nameFromFile turns a filename into a human-readable skill name:
// extension stripped, separators spaced.
func nameFromFile(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return name
}
