// Package registry maps document labels and located shapes to the records
// that represent them in the output graph.
//
// It is the single de-duplication authority of a transfer: a label is bound
// to the shape it was translated as, and every shape the translator emits is
// bound to its records, so that shared definitions reached twice resolve to
// the records of the first visit.
package registry

import (
	"github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

type instanceKey struct {
	label *xcaf.Label
	loc   topo.Location
}

// Registry holds the bindings of one writer. It is not safe for concurrent use.
type Registry struct {
	// labels maps translated labels to the shape they were translated as;
	// in multi-file mode that is a placeholder compound.
	labels map[*xcaf.Label]topo.Shape
	order  []*xcaf.Label

	// binder maps located shapes to their records: items for geometry,
	// SDR and SR for definitions, CDSR for occurrences.
	binder map[topo.Shape][]stepmodel.ID

	assemblies map[*topo.TShape]struct{}

	// instances maps (label, placement) pairs to their product record.
	instances map[instanceKey]stepmodel.ID
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		labels:     make(map[*xcaf.Label]topo.Shape),
		binder:     make(map[topo.Shape][]stepmodel.ID),
		assemblies: make(map[*topo.TShape]struct{}),
		instances:  make(map[instanceKey]stepmodel.ID),
	}
}

// BindLabel records that a label was translated as s. An existing binding
// is kept.
func (r *Registry) BindLabel(l *xcaf.Label, s topo.Shape) {
	if _, ok := r.labels[l]; ok {
		return
	}
	r.labels[l] = s
	r.order = append(r.order, l)
}

// IsBound reports whether the label was translated.
func (r *Registry) IsBound(l *xcaf.Label) bool {
	_, ok := r.labels[l]
	return ok
}

// Shape returns the shape a label was translated as.
func (r *Registry) Shape(l *xcaf.Label) (topo.Shape, bool) {
	s, ok := r.labels[l]
	return s, ok
}

// Labels returns the bound labels in binding order.
func (r *Registry) Labels() []*xcaf.Label {
	return append([]*xcaf.Label(nil), r.order...)
}

// RegisterAssembly marks a compound definition as an assembly so that it is
// translated as product structure rather than geometry.
func (r *Registry) RegisterAssembly(s topo.Shape) {
	if s.IsNull() {
		return
	}
	r.assemblies[s.TShape()] = struct{}{}
}

// IsAssembly reports whether the definition of s was registered as an assembly.
func (r *Registry) IsAssembly(s topo.Shape) bool {
	if s.IsNull() {
		return false
	}
	_, ok := r.assemblies[s.TShape()]
	return ok
}

// Bind appends a record to the bindings of a located shape.
func (r *Registry) Bind(s topo.Shape, id stepmodel.ID) {
	for _, b := range r.binder[s] {
		if b == id {
			return
		}
	}
	r.binder[s] = append(r.binder[s], id)
}

// Find returns the records bound to a located shape, in binding order.
func (r *Registry) Find(s topo.Shape) []stepmodel.ID {
	return r.binder[s]
}

// FindTyped returns the first record bound to s that is of the given kind
// or one of its subtypes.
func (r *Registry) FindTyped(g *stepmodel.Graph, s topo.Shape, kind stepmodel.Kind) (stepmodel.ID, bool) {
	for _, id := range r.binder[s] {
		if g.IsKind(id, kind) {
			return id, true
		}
	}
	return 0, false
}

// FindEntities returns the representation items of a shape. A shape that
// was not translated at its own placement is looked up at the identity
// placement; a compound without items of its own yields the items of its
// children.
func (r *Registry) FindEntities(g *stepmodel.Graph, s topo.Shape) []stepmodel.ID {
	if s.IsNull() {
		return nil
	}
	if items := r.items(g, s); len(items) > 0 {
		return items
	}
	if !s.Location().IsIdentity() {
		if items := r.items(g, s.Located(topo.Location{})); len(items) > 0 {
			return items
		}
	}
	if s.Type() != topo.Compound {
		return nil
	}
	var out []stepmodel.ID
	for _, c := range s.Children() {
		out = append(out, r.FindEntities(g, c)...)
	}
	return out
}

func (r *Registry) items(g *stepmodel.Graph, s topo.Shape) []stepmodel.ID {
	var out []stepmodel.ID
	for _, id := range r.binder[s] {
		if g.IsKind(id, stepmodel.RepresentationItem) {
			out = append(out, id)
		}
	}
	return out
}

// Lookup returns the product record bound to a label at a placement.
func (r *Registry) Lookup(l *xcaf.Label, loc topo.Location) (stepmodel.ID, bool) {
	id, ok := r.instances[instanceKey{l, loc}]
	return id, ok
}

// Register binds a label at a placement to a record. If the pair is already
// bound the existing record is returned with false and nothing changes.
func (r *Registry) Register(l *xcaf.Label, loc topo.Location, id stepmodel.ID) (stepmodel.ID, bool) {
	k := instanceKey{l, loc}
	if cur, ok := r.instances[k]; ok {
		return cur, false
	}
	r.instances[k] = id
	return id, true
}
