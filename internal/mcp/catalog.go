package mcp

import (
	"context"

	"skillmcp/internal/router"
)

// Entry describes one addressable resource in the corpus: a parsed skill
// file or a built-in guide. Entries back both the routing handlers and the
// human-facing listings (list command, list_skills tool, browse TUI).
type Entry struct {
	Template    string
	Name        string
	Description string
	MIMEType    string

	// FilePath is the skill file's path relative to the skills directory,
	// empty for built-in resources.
	FilePath string

	Content string
}

// Read implements router.Handler: the entry serves its own content. The
// content was captured when the registry snapshot was built, so serving
// never races with a rescan.
func (e *Entry) Read(ctx context.Context, match *router.MatchResult) (router.Content, error) {
	return router.Content{
		MIMEType: e.MIMEType,
		Text:     e.Content,
	}, nil
}
