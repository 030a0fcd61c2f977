package router

import (
	"sort"
	"strings"
)

// entry pairs a definition with its compiled matcher.
type entry struct {
	def *ResourceDefinition
	m   *matcher
}

// Registry holds the routing entries for one scan of the skills directory.
// It is populated through Add during the scan and must be treated as
// read-only once published via a Table; a rescan builds a fresh Registry
// instead of mutating an existing one.
type Registry struct {
	byTemplate map[string]*entry
	byScheme   map[string][]*entry
}

// NewRegistry returns an empty registry ready for Add calls.
func NewRegistry() *Registry {
	return &Registry{
		byTemplate: make(map[string]*entry),
		byScheme:   make(map[string][]*entry),
	}
}

// Add registers a definition. It fails with a DuplicateResourceError when
// the template is already registered (the first registration stays active),
// and with an AmbiguousRouteError when an existing template could match the
// same concrete requests with equal specificity. Rejecting the latter here
// keeps request-time matching deterministic.
func (r *Registry) Add(def *ResourceDefinition) error {
	if _, ok := r.byTemplate[def.Template]; ok {
		return &DuplicateResourceError{Template: def.Template}
	}

	m := compile(def)
	for _, existing := range r.byScheme[def.Scheme] {
		if ambiguous(m, existing.m) {
			return &AmbiguousRouteError{Templates: []string{existing.def.Template, def.Template}}
		}
	}

	e := &entry{def: def, m: m}
	r.byTemplate[def.Template] = e
	r.byScheme[def.Scheme] = append(r.byScheme[def.Scheme], e)
	return nil
}

// ambiguous reports whether two compiled matchers of the same scheme can
// both match some concrete request with equal specificity. That is the case
// when they have the same segment count, the same number of literals, and
// agree at every position where both are literal: positions where one side
// is a param accept anything, so a common request always exists.
func ambiguous(a, b *matcher) bool {
	if len(a.segments) != len(b.segments) || a.literals != b.literals {
		return false
	}
	for i := range a.segments {
		if a.segments[i].Kind == SegmentLiteral && b.segments[i].Kind == SegmentLiteral &&
			a.segments[i].Text != b.segments[i].Text {
			return false
		}
	}
	return true
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.byTemplate)
}

// Definitions returns all registered definitions sorted by template, for
// stable listing and MCP resource registration.
func (r *Registry) Definitions() []*ResourceDefinition {
	defs := make([]*ResourceDefinition, 0, len(r.byTemplate))
	for _, e := range r.byTemplate {
		defs = append(defs, e.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Template < defs[j].Template })
	return defs
}

// Lookup returns the definition registered for an exact template string.
func (r *Registry) Lookup(template string) (*ResourceDefinition, bool) {
	e, ok := r.byTemplate[template]
	if !ok {
		return nil, false
	}
	return e.def, true
}

// Match resolves a concrete request URI of the form "scheme://seg1/seg2"
// to the unique matching definition and its extracted parameters.
//
// Candidates are bounded to the request's scheme. When several templates
// match, the one with the most exactly-matched literal segments wins.
// An exact specificity tie means a registration invariant was violated and
// surfaces as an AmbiguousRouteError rather than a silent pick.
func (r *Registry) Match(uri string) (*MatchResult, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" {
		return nil, &NotFoundError{URI: uri}
	}
	var segs []string
	if rest != "" {
		segs = strings.Split(rest, "/")
	}

	var (
		best     *MatchResult
		bestSpec = -1
		tied     []string
	)
	for _, e := range r.byScheme[scheme] {
		params, matched := e.m.match(scheme, segs)
		if !matched {
			continue
		}
		switch {
		case e.m.literals > bestSpec:
			best = &MatchResult{Definition: e.def, Params: params}
			bestSpec = e.m.literals
			tied = tied[:0]
		case e.m.literals == bestSpec:
			tied = append(tied, e.def.Template)
		}
	}

	if best == nil {
		return nil, &NotFoundError{URI: uri}
	}
	if len(tied) > 0 {
		return nil, &AmbiguousRouteError{
			URI:       uri,
			Templates: append([]string{best.Definition.Template}, tied...),
		}
	}
	return best, nil
}
