package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillmcp/internal/router"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the corpus tools with the mcp-go server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_skills",
			mcp.WithDescription("List every skill in the corpus with its URI template and description"),
		),
		s.handleListSkills,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("read_skill",
			mcp.WithDescription("Read a skill by concrete URI, e.g. users://42/profile for the template users://[userId]/profile"),
			mcp.WithString("uri",
				mcp.Required(),
				mcp.Description("Concrete resource URI of the form scheme://seg1/seg2"),
			),
		),
		s.handleReadSkill,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("rescan_skills",
			mcp.WithDescription("Rescan the skills directory and publish a fresh corpus snapshot"),
		),
		s.handleRescanSkills,
	)
}

func (s *Server) handleListSkills(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog := s.Catalog()
	if len(catalog) == 0 {
		return mcp.NewToolResultText("No skills are registered."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d skills available:\n\n", len(catalog))
	for _, entry := range catalog {
		fmt.Fprintf(&b, "- %s (%s)", entry.Template, entry.Name)
		if entry.Description != "" {
			fmt.Fprintf(&b, ": %s", entry.Description)
		}
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleReadSkill(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := request.RequireString("uri")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	match, err := s.table.Match(uri)
	if err != nil {
		var notFound *router.NotFoundError
		if errors.As(err, &notFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no skill matches %q; use list_skills to see available URIs", uri)), nil
		}
		// Ambiguity is an internal consistency problem, not a bad request.
		s.logger.Error("read_skill failed", "uri", uri, "error", err)
		return nil, err
	}

	content, err := match.Definition.Handler.Read(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("handler failed for %q: %w", uri, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", match.Definition.Template)
	if len(match.Params) > 0 {
		b.WriteString("Parameters:")
		for _, p := range match.Params {
			fmt.Fprintf(&b, " %s=%s", p.Name, p.Value)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(content.Text)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleRescanSkills(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := s.Rescan()
	if err != nil {
		return nil, fmt.Errorf("rescan failed: %w", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Rescan complete: %d resources registered.", count)), nil
}
