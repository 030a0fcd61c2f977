package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"skillmcp/internal/config"
	"skillmcp/internal/filemanager"
	"skillmcp/internal/logging"
	"skillmcp/internal/router"
	"skillmcp/internal/skillfile"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is the server version announced to MCP clients.
const Version = "0.1.0"

const serverInstructions = `This server exposes a corpus of skill guides for scaffolding MCP server
artifacts. List available guides with the list_skills tool or the MCP
resource listing, then read them by URI. Parameterized URIs (shown with
{param} placeholders) accept any value for each parameter.`

// Server is the skillmcp MCP server instance.
type Server struct {
	cfg         *config.Config
	logger      *logging.AppLogger
	fileManager *filemanager.FileManager
	parser      *skillfile.Parser

	table *router.Table
	// catalog is published atomically, like the table: the stdio server
	// dispatches tool calls on a worker pool, so rescan_skills runs
	// concurrently with handlers reading the catalog. Slices stored here
	// are never mutated after publication.
	catalog   atomic.Pointer[[]*Entry]
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		parser: skillfile.NewParser(logger, skillfile.DefaultMaxFileSize),
	}
}

// Start initializes the server and serves MCP over stdio until the client
// disconnects.
func (s *Server) Start() error {
	if err := s.Initialize(); err != nil {
		return err
	}

	s.logger.Info("Starting MCP stdio server",
		"name", s.cfg.ServerName,
		"resources", len(s.Catalog()))

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Initialize scans the corpus, builds the routing table, and registers all
// resources and tools. It is exposed separately from Start so the CLI can
// use the server's catalog and routing table without serving stdio.
func (s *Server) Initialize() error {
	s.logger.Info("Initializing MCP server", "skillsDir", s.cfg.SkillsDir)

	var err error
	s.fileManager, err = filemanager.NewFileManager(s.cfg.SkillsDir, s.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize file manager: %w", err)
	}

	registry, catalog, err := s.buildRegistry()
	if err != nil {
		return fmt.Errorf("failed to build resource registry: %w", err)
	}
	s.table = router.NewTable(registry)
	s.catalog.Store(&catalog)

	s.mcpServer = server.NewMCPServer(
		s.cfg.ServerName,
		Version,
		server.WithResourceCapabilities(false, true),
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
	)

	s.registerResources(registry)
	s.registerTools()

	s.logger.Info("MCP server initialized", "resources", len(catalog))
	return nil
}

// Table returns the routing table. Valid after Initialize.
func (s *Server) Table() *router.Table {
	return s.table
}

// Catalog returns the entries of the current corpus snapshot. Valid after
// Initialize. The returned slice belongs to one snapshot and is never
// mutated; callers may hold it across a rescan.
func (s *Server) Catalog() []*Entry {
	if c := s.catalog.Load(); c != nil {
		return *c
	}
	return nil
}

// buildRegistry scans the skills directory, derives a URI template per
// skill, and assembles a fresh registry plus its catalog. Files whose path
// cannot be routed (bad parameter names, group-only paths, duplicate or
// ambiguous templates) are skipped with a log line; one bad file never
// prevents the rest of the corpus from loading.
func (s *Server) buildRegistry() (*router.Registry, []*Entry, error) {
	items, err := s.fileManager.ScanSkills()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan skills directory: %w", err)
	}

	relPaths := make([]string, len(items))
	for i, item := range items {
		relPaths[i] = item.Path
	}
	skills, _ := s.parser.ParseAll(s.fileManager.SkillsDir(), relPaths)

	registry := router.NewRegistry()
	var catalog []*Entry

	for _, builtin := range builtinEntries() {
		entry, err := s.register(registry, builtin.pathSegments, builtin.entry)
		if err != nil {
			// Built-ins are static; a conflict here is a programming error.
			return nil, nil, err
		}
		catalog = append(catalog, entry)
	}

	for _, skill := range skills {
		entry := &Entry{
			Name:        skill.Name,
			Description: skill.Description,
			MIMEType:    skill.MIMEType,
			FilePath:    skill.FilePath,
			Content:     skill.Content,
		}
		segments := filemanager.RouteSegments(skill.FilePath)
		if _, err := s.register(registry, segments, entry); err != nil {
			s.logger.Warn("Skipping unroutable skill file",
				"file", skill.FilePath,
				"error", err)
			continue
		}
		catalog = append(catalog, entry)
	}

	return registry, catalog, nil
}

// register derives a definition from path segments, attaches the entry as
// its handler, and adds it to the registry.
func (s *Server) register(registry *router.Registry, segments []string, entry *Entry) (*Entry, error) {
	def, err := router.Derive(segments)
	if err != nil {
		return nil, err
	}
	entry.Template = def.Template
	def.Handler = entry
	if err := registry.Add(def); err != nil {
		return nil, err
	}
	return entry, nil
}

// Rescan rebuilds the registry from the current state of the skills
// directory and publishes it atomically. In-flight reads keep the old
// snapshot; new reads see the new one. Returns the number of resources in
// the new snapshot.
func (s *Server) Rescan() (int, error) {
	registry, catalog, err := s.buildRegistry()
	if err != nil {
		return 0, err
	}

	s.table.Swap(registry)
	s.catalog.Store(&catalog)

	if s.mcpServer != nil {
		// Register templates added since the last scan so they show up in
		// resource listings. Reads always go through the freshly swapped
		// table regardless.
		s.registerResources(registry)
	}

	s.logger.Info("Corpus rescanned", "resources", len(catalog))
	return len(catalog), nil
}

// registerResources registers every definition with the mcp-go server:
// concrete resources for fully-literal templates, resource templates for
// parameterized ones.
func (s *Server) registerResources(registry *router.Registry) {
	for _, def := range registry.Definitions() {
		entry, ok := def.Handler.(*Entry)
		if !ok {
			continue
		}

		if hasParams(def) {
			s.mcpServer.AddResourceTemplate(
				mcp.NewResourceTemplate(
					rfc6570(def),
					entry.Name,
					mcp.WithTemplateDescription(entry.Description),
					mcp.WithTemplateMIMEType(entry.MIMEType),
				),
				s.readResource,
			)
			continue
		}

		s.mcpServer.AddResource(
			mcp.NewResource(
				def.Template,
				entry.Name,
				mcp.WithResourceDescription(entry.Description),
				mcp.WithMIMEType(entry.MIMEType),
			),
			s.readResource,
		)
	}
}

// readResource handles resources/read by routing the request URI through
// the current table snapshot and invoking the matched handler.
func (s *Server) readResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI

	match, err := s.table.Match(uri)
	if err != nil {
		var ambiguous *router.AmbiguousRouteError
		if errors.As(err, &ambiguous) {
			// Registration-time invariant violation, not a missing
			// resource. Log loudly and keep it distinguishable.
			s.logger.Error("Ambiguous route detected at read time", "uri", uri, "templates", ambiguous.Templates)
		}
		return nil, err
	}

	content, err := match.Definition.Handler.Read(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("handler failed for %q: %w", uri, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: content.MIMEType,
			Text:     content.Text,
		},
	}, nil
}

// hasParams reports whether a definition carries parameter segments.
func hasParams(def *router.ResourceDefinition) bool {
	for _, seg := range def.Segments {
		if seg.Kind == router.SegmentParam {
			return true
		}
	}
	return false
}

// rfc6570 renders a definition's template in the RFC 6570 form MCP clients
// expect for resource templates: "[name]" becomes "{name}".
func rfc6570(def *router.ResourceDefinition) string {
	var b strings.Builder
	b.WriteString(def.Scheme)
	b.WriteString("://")
	for i, seg := range def.Segments {
		if i > 0 {
			b.WriteByte('/')
		}
		if seg.Kind == router.SegmentParam {
			b.WriteByte('{')
			b.WriteString(seg.Text)
			b.WriteByte('}')
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
