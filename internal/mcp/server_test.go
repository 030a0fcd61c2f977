package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillmcp/internal/config"
	"skillmcp/internal/logging"
	"skillmcp/internal/router"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// newTestServer creates an initialized server over a temp corpus.
func newTestServer(t *testing.T, files map[string]string) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	logger, _ := logging.NewTestLogger()
	cfg := &config.Config{SkillsDir: dir, ServerName: "skillmcp-test"}
	server := NewServer(cfg, logger)
	if err := server.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return server, dir
}

const validSkill = `---
name: %NAME%
description: %DESC%
---
%BODY%
`

func skillContent(name, desc, body string) string {
	s := strings.ReplaceAll(validSkill, "%NAME%", name)
	s = strings.ReplaceAll(s, "%DESC%", desc)
	return strings.ReplaceAll(s, "%BODY%", body)
}

func TestInitializeBuildsCatalog(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		"docs/readme.md":              skillContent("Readme", "Intro guide", "Welcome."),
		"(mcp)/tools/design.md":       skillContent("Tool Design", "Designing tools", "Body."),
		"users/[userId]/profile.md":   skillContent("User Profile", "Per-user guide", "Body."),
		"docs/ignored-no-metadata.md": "no frontmatter here\n",
	})

	templates := make(map[string]bool)
	for _, entry := range server.Catalog() {
		templates[entry.Template] = true
	}

	for _, want := range []string{
		"skillmcp://guide", // built-in
		"docs://readme",
		"tools://design",
		"users://[userId]/profile",
	} {
		if !templates[want] {
			t.Errorf("catalog is missing template %q (have %v)", want, templates)
		}
	}
	if len(templates) != 4 {
		t.Errorf("expected 4 catalog entries, got %d", len(templates))
	}
}

func TestReadResourceRoutesURI(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		"users/[userId]/profile.md": skillContent("User Profile", "Per-user guide", "Profile skill body."),
	})

	var req mcpgo.ReadResourceRequest
	req.Params.URI = "users://42/profile"

	contents, err := server.readResource(context.Background(), req)
	if err != nil {
		t.Fatalf("readResource failed: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(contents))
	}

	text, ok := contents[0].(mcpgo.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	if text.URI != "users://42/profile" {
		t.Errorf("content URI = %q, want the requested URI", text.URI)
	}
	if text.MIMEType != "text/markdown" {
		t.Errorf("MIMEType = %q, want text/markdown", text.MIMEType)
	}
	if !strings.Contains(text.Text, "Profile skill body.") {
		t.Errorf("content text missing skill body: %q", text.Text)
	}
}

func TestReadResourceNotFound(t *testing.T) {
	server, _ := newTestServer(t, map[string]string{
		"docs/readme.md": skillContent("Readme", "Intro", "Body."),
	})

	var req mcpgo.ReadResourceRequest
	req.Params.URI = "docs://missing/deeply"

	_, err := server.readResource(context.Background(), req)
	var notFound *router.NotFoundError
	if err == nil {
		t.Fatal("expected an error for an unmatched URI")
	}
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestBuiltinGuideIsServed(t *testing.T) {
	server, _ := newTestServer(t, nil)

	var req mcpgo.ReadResourceRequest
	req.Params.URI = "skillmcp://guide"

	contents, err := server.readResource(context.Background(), req)
	if err != nil {
		t.Fatalf("readResource failed: %v", err)
	}
	text := contents[0].(mcpgo.TextResourceContents)
	if !strings.Contains(text.Text, "Addressing") {
		t.Error("built-in guide content looks wrong")
	}
}

func TestDuplicateTemplateSkippedNotFatal(t *testing.T) {
	// Both files derive docs://readme; the group segment contributes
	// nothing. One of them must win, the other is skipped.
	server, _ := newTestServer(t, map[string]string{
		"docs/readme.md":         skillContent("A", "first", "Body A."),
		"(extra)/docs/readme.md": skillContent("B", "second", "Body B."),
	})

	count := 0
	for _, entry := range server.Catalog() {
		if entry.Template == "docs://readme" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one docs://readme entry, got %d", count)
	}
}

func TestRescanPicksUpNewSkills(t *testing.T) {
	server, dir := newTestServer(t, map[string]string{
		"docs/readme.md": skillContent("Readme", "Intro", "Body."),
	})

	if _, err := server.Table().Match("docs://fresh"); err == nil {
		t.Fatal("docs://fresh should not match before rescan")
	}

	if err := os.WriteFile(filepath.Join(dir, "docs", "fresh.md"),
		[]byte(skillContent("Fresh", "Added later", "New body.")), 0o644); err != nil {
		t.Fatal(err)
	}

	count, err := server.Rescan()
	if err != nil {
		t.Fatalf("Rescan failed: %v", err)
	}
	if count != 3 { // builtin + readme + fresh
		t.Errorf("expected 3 resources after rescan, got %d", count)
	}

	match, err := server.Table().Match("docs://fresh")
	if err != nil {
		t.Fatalf("docs://fresh should match after rescan: %v", err)
	}
	if match.Definition.Template != "docs://fresh" {
		t.Errorf("matched wrong template %q", match.Definition.Template)
	}
}

func TestRFC6570Rendering(t *testing.T) {
	def, err := router.Derive([]string{"users", "[userId]", "posts", "[postId]"})
	if err != nil {
		t.Fatal(err)
	}
	if got := rfc6570(def); got != "users://{userId}/posts/{postId}" {
		t.Errorf("rfc6570 = %q", got)
	}
}
