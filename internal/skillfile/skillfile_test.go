package skillfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillmcp/internal/logging"
)

func writeSkill(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "tool-design.md", `---
name: Tool Design
description: How to design MCP tools
---
# Tool Design

Guide body here.
`)

	logger, _ := logging.NewTestLogger()
	parser := NewParser(logger, 0)

	skill, err := parser.ParseFile(filepath.Join(dir, "tool-design.md"), "tool-design.md")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if skill.Name != "Tool Design" {
		t.Errorf("Name = %q, want 'Tool Design'", skill.Name)
	}
	if skill.Description != "How to design MCP tools" {
		t.Errorf("Description = %q", skill.Description)
	}
	if skill.MIMEType != DefaultMIMEType {
		t.Errorf("MIMEType = %q, want %q", skill.MIMEType, DefaultMIMEType)
	}
	if strings.Contains(skill.Content, "description:") {
		t.Error("Content should not include frontmatter")
	}
	if !strings.Contains(skill.Content, "Guide body here.") {
		t.Error("Content should include the body")
	}
}

func TestParseFileNameFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "resource_design-guide.md", `---
description: Resource addressing guide
---
body
`)

	logger, _ := logging.NewTestLogger()
	skill, err := NewParser(logger, 0).ParseFile(filepath.Join(dir, "resource_design-guide.md"), "resource_design-guide.md")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if skill.Name != "resource design guide" {
		t.Errorf("Name = %q, want 'resource design guide'", skill.Name)
	}
}

func TestParseFileRequiresDescription(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "nodesc.md", `---
name: No Description
---
body
`)

	logger, _ := logging.NewTestLogger()
	_, err := NewParser(logger, 0).ParseFile(filepath.Join(dir, "nodesc.md"), "nodesc.md")
	if err == nil || !strings.Contains(err.Error(), "description") {
		t.Errorf("expected missing-description error, got %v", err)
	}
}

func TestParseFileRejectsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "big.md", "---\ndescription: d\n---\n"+strings.Repeat("x", 2048))

	logger, _ := logging.NewTestLogger()
	_, err := NewParser(logger, 1024).ParseFile(filepath.Join(dir, "big.md"), "big.md")
	if err == nil || !strings.Contains(err.Error(), "size limit") {
		t.Errorf("expected size limit error, got %v", err)
	}
}

func TestParseAllSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "good.md", "---\ndescription: valid\n---\nbody\n")
	writeSkill(t, dir, "sub/also-good.md", "---\ndescription: also valid\n---\nbody\n")
	writeSkill(t, dir, "plain.md", "no frontmatter at all\n")
	writeSkill(t, dir, "nodesc.md", "---\nname: x\n---\nbody\n")

	files := []string{
		"good.md",
		filepath.Join("sub", "also-good.md"),
		"plain.md",
		"nodesc.md",
	}

	logger, _ := logging.NewTestLogger()
	skills, skipped := NewParser(logger, 0).ParseAll(dir, files)

	if len(skills) != 2 {
		t.Errorf("expected 2 valid skills, got %d", len(skills))
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped files, got %d", skipped)
	}
}
