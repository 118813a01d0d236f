package gdt

import (
	"strings"

	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// anchor is where an annotation attaches to the product structure.
type anchor struct {
	item    m.ID // first representation item of the shape
	face    m.ID
	edge    m.ID
	pds     m.ID
	context m.ID
}

// edgeToFace climbs from an edge curve to a face bounded by it.
var edgeToFace = []m.Step{
	m.Up(m.OrientedEdge),
	m.Up(m.EdgeLoop),
	m.Up(m.FaceBound),
	m.Up(m.AdvancedFace),
}

// faceToDefinition climbs from a face to the product definition shape of
// the representation holding it.
var faceToDefinition = []m.Step{
	m.Up(m.ConnectedFaceSet),
	m.Up(m.RepresentationItem),
	m.Up(m.ShapeRepresentation),
	m.Up(m.ShapeDefinitionRepresentation),
	m.Via("definition", m.ProductDefinitionShape),
}

// findAnchor locates the face or edge a shape was translated into and the
// product definition shape above it.
func (t *Translator) findAnchor(s topo.Shape, subject string) (anchor, bool) {
	items := t.reg.FindEntities(t.g, s)
	if len(items) == 0 {
		t.sink.Miss(subject, "no representation item for annotated %s", typeName(s))
		return anchor{}, false
	}
	a := anchor{item: items[0]}
	switch {
	case t.g.IsKind(a.item, m.AdvancedFace):
		a.face = a.item
	case t.g.IsKind(a.item, m.EdgeCurve):
		a.edge = a.item
		path, ok := t.g.Walk(a.edge, edgeToFace...)
		if !ok {
			t.sink.Miss(subject, "no face bounded by annotated edge %s", a.edge)
			return anchor{}, false
		}
		a.face = path[len(path)-1]
	default:
		t.sink.Miss(subject, "annotated item %s is neither a face nor an edge", t.g.Kind(a.item))
		return anchor{}, false
	}
	path, ok := t.g.Walk(a.face, faceToDefinition...)
	if !ok {
		t.sink.Miss(subject, "no product definition shape above face %s", a.face)
		return anchor{}, false
	}
	a.pds = path[len(path)-1]
	sr := path[len(path)-3]
	a.context, _ = t.g.RefField(sr, "context_of_items")
	return a, true
}

func typeName(s topo.Shape) string {
	if s.IsNull() {
		return "null shape"
	}
	return s.Type().String()
}

// aspectName derives a shape aspect name from an annotation label name:
// the text after its first space, or nothing.
func aspectName(l *xcaf.Label) string {
	_, after, ok := strings.Cut(l.Name(), " ")
	if !ok {
		return ""
	}
	return m.ASCII(after)
}

// aspect is a written shape aspect with the usage identifying its item.
type aspect struct {
	id   m.ID
	gisu m.ID
	anchor
}

// shapeAspect writes a shape aspect of s for an annotation label, with the
// geometric item specific usage linking it to the annotated item.
func (t *Translator) shapeAspect(run *RunContext, l *xcaf.Label, s topo.Shape) (aspect, bool) {
	a, ok := t.findAnchor(s, l.Entry())
	if !ok {
		return aspect{}, false
	}
	sdr, ok := t.g.FirstSharing(a.pds, m.ShapeDefinitionRepresentation)
	if !ok {
		t.sink.Miss(l.Entry(), "no shape definition representation for %s", a.pds)
		return aspect{}, false
	}
	sr, _ := t.g.RefField(sdr, "used_representation")
	if run.context == 0 {
		run.context = a.context
	}

	name := aspectName(l)
	sa := t.g.New(m.ShapeAspect,
		m.F("name", m.Str(name)),
		m.F("description", m.Str("")),
		m.F("of_shape", m.Ref(a.pds)),
		m.F("product_definitional", m.Bool(true)))
	gisu := t.g.Create(m.GeometricItemSpecificUsage,
		m.F("name", m.Str(name)),
		m.F("description", m.Str("")),
		m.F("definition", m.Ref(sa)),
		m.F("used_representation", m.Ref(sr)),
		m.F("identified_item", m.RefsOf(a.item)))
	return aspect{id: sa, gisu: gisu, anchor: a}, true
}

// shapeAspects writes the aspect of a group of shape labels: the shape
// aspect of a single label, or a record of the head kind relating the
// aspect of every label of the group. The returned aspect carries the
// anchor and usage of the first written member.
func (t *Translator) shapeAspects(run *RunContext, l *xcaf.Label, shapes []*xcaf.Label, head m.Kind, name string) (aspect, bool) {
	if len(shapes) == 1 {
		return t.shapeAspect(run, l, shapes[0].Shape())
	}
	var group aspect
	for _, s := range shapes {
		sa, ok := t.shapeAspect(run, l, s.Shape())
		if !ok {
			continue
		}
		if group.id == 0 {
			group = sa
			group.id = t.g.Create(head,
				m.F("name", m.Str(name)),
				m.F("description", m.Str("")),
				m.F("of_shape", m.Ref(sa.pds)),
				m.F("product_definitional", m.Bool(true)))
		}
		t.g.Create(m.ShapeAspectRelationship,
			m.F("name", m.Str("")),
			m.F("description", m.Null{}),
			m.F("relating_shape_aspect", m.Ref(group.id)),
			m.F("related_shape_aspect", m.Ref(sa.id)))
	}
	return group, group.id != 0
}

// composite writes the aspect of a group under a composite shape aspect.
func (t *Translator) composite(run *RunContext, l *xcaf.Label, shapes []*xcaf.Label) (aspect, bool) {
	return t.shapeAspects(run, l, shapes, m.CompositeShapeAspect, aspectName(l))
}
