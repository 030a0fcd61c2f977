package router

// Param is a single extracted parameter. Params preserve template
// declaration order, which a plain map cannot.
type Param struct {
	Name  string
	Value string
}

// Params holds extracted parameters in template declaration order.
type Params []Param

// Get returns the value for name and whether it was present.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Map returns the parameters as a plain map, losing declaration order.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, param := range p {
		m[param.Name] = param.Value
	}
	return m
}

// MatchResult is produced for each successful match. It is owned by the
// caller and discarded after the request completes.
type MatchResult struct {
	Definition *ResourceDefinition
	Params     Params
}

// matcher is the compiled form of a definition's segment list. Compilation
// happens once at registration; matching is a single pass over the request
// segments with no allocation on the miss path.
type matcher struct {
	scheme   string
	segments []Segment
	// literals counts literal segments, the definition's specificity.
	literals int
	// params counts param segments so match can size its result exactly.
	params int
}

func compile(def *ResourceDefinition) *matcher {
	m := &matcher{
		scheme:   def.Scheme,
		segments: def.Segments,
	}
	for _, seg := range def.Segments {
		if seg.Kind == SegmentParam {
			m.params++
		} else {
			m.literals++
		}
	}
	return m
}

// match applies the compiled matcher against a request's scheme and path
// segments. Segment counts must be equal, the scheme must match exactly
// (case-sensitive), literals must match exactly, and param segments accept
// the request segment verbatim.
func (m *matcher) match(scheme string, segs []string) (Params, bool) {
	if scheme != m.scheme || len(segs) != len(m.segments) {
		return nil, false
	}
	for i, seg := range m.segments {
		if seg.Kind == SegmentLiteral && segs[i] != seg.Text {
			return nil, false
		}
	}

	if m.params == 0 {
		return nil, true
	}
	params := make(Params, 0, m.params)
	for i, seg := range m.segments {
		if seg.Kind == SegmentParam {
			params = append(params, Param{Name: seg.Text, Value: segs[i]})
		}
	}
	return params, true
}
