package mcp

// builtinResource pairs a built-in entry with the routing path it is
// registered under.
type builtinResource struct {
	pathSegments []string
	entry        *Entry
}

// builtinEntries returns the resources every server instance carries
// regardless of corpus content. Entries are rebuilt per registry snapshot
// so handlers never outlive their snapshot.
func builtinEntries() []builtinResource {
	return []builtinResource{
		{
			pathSegments: []string{"skillmcp", "guide"},
			entry: &Entry{
				Name:        "skillmcp usage guide",
				Description: "How skill files are organized and addressed, and how to read them",
				MIMEType:    "text/markdown",
				Content:     guideContent,
			},
		},
	}
}

// guideContent is served at skillmcp://guide. It documents the corpus
// conventions for both humans and model clients.
const guideContent = `# skillmcp Guide

This server exposes a directory tree of markdown skill files as MCP
resources. Each file carries YAML frontmatter followed by the guide body:

` + "```" + `markdown
---
name: Tool Design
description: How to design MCP tools
---
# Tool Design
...
` + "```" + `

The ` + "`description`" + ` field is required; files without it are skipped.

## Addressing

A skill's URI is derived from its path inside the skills directory:

| Path | URI |
|------|-----|
| docs/readme.md | docs://readme |
| (mcp)/docs/readme.md | docs://readme |
| users/[userId]/profile.md | users://[userId]/profile |

- The first path segment (after any groups) becomes the URI scheme.
- Directories wrapped in parentheses are route groups: they organize files
  on disk and never appear in the URI.
- Names wrapped in brackets are parameters. A request may supply any value
  for that segment; the value is handed to the skill verbatim.
- The file extension is stripped; the remaining filename is the last URI
  segment.

## Reading skills

- ` + "`list_skills`" + ` returns every addressable skill with its URI template.
- ` + "`read_skill`" + ` reads one skill by concrete URI, resolving parameters.
- Standard MCP ` + "`resources/read`" + ` works with the same URIs.
- ` + "`rescan_skills`" + ` picks up files added or changed since startup.

When two templates could match the same URI, the one with more exactly
matching literal segments wins. Registration rejects template pairs that
cannot be told apart.
`
