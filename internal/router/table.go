package router

import "sync/atomic"

// Table publishes the current registry for concurrent request matching.
// Matching is read-only, so any number of goroutines may match against the
// same snapshot without coordination. A rescan builds a complete new
// Registry and publishes it with Swap; readers always observe either the
// entirely-old or entirely-new registry.
type Table struct {
	current atomic.Pointer[Registry]
}

// NewTable returns a table serving the given registry.
func NewTable(r *Registry) *Table {
	t := &Table{}
	t.current.Store(r)
	return t
}

// Current returns the registry snapshot in effect right now.
func (t *Table) Current() *Registry {
	return t.current.Load()
}

// Swap atomically replaces the published registry. The new registry must be
// fully built before it is passed in.
func (t *Table) Swap(r *Registry) {
	t.current.Store(r)
}

// Match resolves a request URI against the current snapshot.
func (t *Table) Match(uri string) (*MatchResult, error) {
	return t.current.Load().Match(uri)
}
