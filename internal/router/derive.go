package router

import (
	"context"
	"regexp"
	"strings"
)

// SegmentKind classifies a template segment.
type SegmentKind int

const (
	// SegmentLiteral is fixed text that a request segment must equal exactly.
	SegmentLiteral SegmentKind = iota
	// SegmentParam is a named capture that accepts the request segment verbatim.
	SegmentParam
)

// Segment is one element of a URI template after the scheme. For literals,
// Text is the segment text; for params, Text is the parameter name.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Content is the payload a handler produces for a matched resource.
type Content struct {
	URI      string
	MIMEType string
	Text     string
}

// Handler is the capability attached to a ResourceDefinition. The router
// only locates handlers and extracts their parameters; invoking them is the
// caller's job.
type Handler interface {
	Read(ctx context.Context, match *MatchResult) (Content, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, match *MatchResult) (Content, error)

func (f HandlerFunc) Read(ctx context.Context, match *MatchResult) (Content, error) {
	return f(ctx, match)
}

// ResourceDefinition is the routing entry for a single resource file. It is
// created during a scan, registered once, and never mutated afterwards.
type ResourceDefinition struct {
	// FilePath holds the raw path segments the definition was derived from,
	// directories first, filename (extension already stripped) last.
	FilePath []string

	// Scheme is the URI namespace, taken from the first non-group path
	// segment with any wrapping syntax removed.
	Scheme string

	// Segments are the template segments after the scheme, in order.
	Segments []Segment

	// Template is the canonical rendered template, e.g. "users://[userId]/profile".
	Template string

	// Handler is supplied by the caller after derivation.
	Handler Handler
}

// segmentNameRe validates the interior of a bracketed path segment.
var segmentNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Derive converts a file-hierarchy path into a ResourceDefinition. It is a
// pure function of its input; registering the result (and rejecting
// duplicates) is the caller's responsibility.
//
// Classification rules per raw segment:
//   - "(name)" is a route group: dropped from the template entirely.
//   - "[name]" is a parameter capture; the interior must be a non-empty
//     identifier, otherwise an InvalidSegmentNameError is returned.
//   - anything else is a literal segment.
//
// The scheme comes from the first non-group segment, rendered with any
// wrapping syntax removed. A path consisting only of groups fails with
// ErrEmptyScheme.
func Derive(path []string) (*ResourceDefinition, error) {
	def := &ResourceDefinition{FilePath: path}

	for _, raw := range path {
		if raw == "" {
			continue
		}
		if isGroup(raw) {
			continue
		}

		text := raw
		kind := SegmentLiteral
		if isParam(raw) {
			text = raw[1 : len(raw)-1]
			kind = SegmentParam
			if !segmentNameRe.MatchString(text) {
				return nil, &InvalidSegmentNameError{Segment: raw}
			}
		}

		if def.Scheme == "" {
			// First concrete segment becomes the scheme, wrapping removed.
			// A bracketed scheme segment still names a fixed namespace: the
			// scheme is always matched literally, never captured.
			def.Scheme = text
			continue
		}
		def.Segments = append(def.Segments, Segment{Kind: kind, Text: text})
	}

	if def.Scheme == "" {
		return nil, ErrEmptyScheme
	}

	def.Template = renderTemplate(def.Scheme, def.Segments)
	return def, nil
}

// renderTemplate reconstructs the canonical template string, rendering
// param segments back as "[name]".
func renderTemplate(scheme string, segments []Segment) string {
	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		if seg.Kind == SegmentParam {
			b.WriteByte('[')
			b.WriteString(seg.Text)
			b.WriteByte(']')
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

func isGroup(s string) bool {
	return len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')'
}

func isParam(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}
