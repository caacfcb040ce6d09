package graphql

// Path is an immutable cons-list of response-path segments. Every descent
// into a field or a list element allocates a new node; existing nodes are
// never mutated, so a Path can be captured by a closure (an error, a pending
// patch) and stay valid after its parent frame returns.
type Path struct {
	parent   *Path
	key      interface{} // string response-name or int list-index
	typename string
}

// AppendPath returns a new Path with key appended under parent. typename is
// carried only to enrich diagnostics printed against abstract types; it never
// affects Linearize.
func AppendPath(parent *Path, key interface{}, typename string) *Path {
	switch key.(type) {
	case string, int:
	default:
		panic("graphql: path key must be a string or an int")
	}
	return &Path{parent: parent, key: key, typename: typename}
}

// Typename returns the typename recorded at this path segment, if any.
func (p *Path) Typename() string {
	if p == nil {
		return ""
	}
	return p.typename
}

// Linearize walks parent links back to the root and returns the path as an
// ordered slice, root first, suitable for the "path" field of a located error
// or an incremental patch.
func (p *Path) Linearize() []interface{} {
	if p == nil {
		return nil
	}
	var segments []interface{}
	for node := p; node != nil; node = node.parent {
		segments = append(segments, node.key)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}

// Equal compares two paths by value, not identity.
func (p *Path) Equal(other *Path) bool {
	for {
		switch {
		case p == nil && other == nil:
			return true
		case p == nil || other == nil:
			return false
		case p.key != other.key:
			return false
		}
		p, other = p.parent, other.parent
	}
}
