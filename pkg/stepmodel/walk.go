package stepmodel

// Step is one hop of a Walk.
type Step struct {
	field string
	kind  Kind
}

// Up follows a sharing record of the given kind.
func Up(kind Kind) Step { return Step{kind: kind} }

// Via follows a reference field; kind, when not empty, constrains the target.
func Via(field string, kind Kind) Step { return Step{field: field, kind: kind} }

// Walk follows steps from start and returns the first complete path,
// start included. Alternatives are tried depth-first in sharing order, so
// the result is stable for a given graph.
func (g *Graph) Walk(start ID, steps ...Step) ([]ID, bool) {
	path := []ID{start}
	var walk func(cur ID, rest []Step) bool
	walk = func(cur ID, rest []Step) bool {
		if len(rest) == 0 {
			return true
		}
		st := rest[0]
		var next []ID
		if st.field != "" {
			if ref, ok := g.RefField(cur, st.field); ok {
				next = []ID{ref}
			}
		} else {
			next = g.Sharings(cur)
		}
		for _, n := range next {
			if st.kind != "" && !g.IsKind(n, st.kind) {
				continue
			}
			path = append(path, n)
			if walk(n, rest[1:]) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if !walk(start, steps) {
		return nil, false
	}
	return path, true
}

// FirstSharing returns the first member of the given kind referencing id.
func (g *Graph) FirstSharing(id ID, kind Kind) (ID, bool) {
	for _, s := range g.Sharings(id) {
		if g.IsKind(s, kind) {
			return s, true
		}
	}
	return 0, false
}
