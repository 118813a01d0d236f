package gdt

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// presentation writes the tessellated presentation of an annotation on its
// annotation plane and links it to the annotation record.
func (t *Translator) presentation(run *RunContext, p *xcaf.Presentation, target m.ID) {
	if p == nil || p.Shape.IsNull() {
		return
	}
	set, ok := t.tessellation(p.Shape)
	if !ok {
		t.logger.Debug("presentation without edges skipped", "annotation", target)
		return
	}
	if run.curveStyle == 0 {
		run.curveStyle = t.styles.MakeColorPSA(0, t.styles.EncodeColor(xcaf.Black), false)
	}
	if run.model == 0 {
		run.model = t.g.Create(m.DraughtingModel,
			m.F("name", m.Str("")),
			m.F("items", m.Refs{}),
			m.F("context_of_items", m.Null{}))
	}

	tao := t.g.New(m.TessellatedAnnotationOccurrence,
		m.F("name", m.Str("")),
		m.F("styles", m.RefsOf(run.curveStyle)),
		m.F("item", m.Ref(set)))
	callout := t.g.New(m.DraughtingCallout,
		m.F("name", m.Str("")),
		m.F("contents", m.RefsOf(tao)))
	t.g.Create(m.DraughtingModelItemAssociation,
		m.F("name", m.Str("PMI representation to presentation link")),
		m.F("description", m.Str("")),
		m.F("definition", m.Ref(target)),
		m.F("used_representation", m.Ref(run.model)),
		m.F("identified_item", m.RefsOf(callout)))

	axis := p.Plane
	axis.Origin = p.TextPosition
	plane := t.g.New(m.Plane,
		m.F("name", m.Str("")),
		m.F("position", m.Ref(t.shapes.Placement(axis))))
	nullStyle := t.g.New(m.PresentationStyleAssignment,
		m.F("styles", m.List{m.Typed{Type: "NULL_STYLE", V: m.Enum("NULL")}}))
	run.planes = append(run.planes, t.g.Create(m.AnnotationPlane,
		m.F("name", m.Str("")),
		m.F("styles", m.RefsOf(nullStyle)),
		m.F("item", m.Ref(plane)),
		m.F("elements", m.RefsOf(callout))))
}

// tessellation writes the edges of a presentation shape as a tessellated
// curve set, one two-point strip per edge.
func (t *Translator) tessellation(s topo.Shape) (m.ID, bool) {
	var coords m.List
	var strips m.List
	for _, e := range topo.Explore(s, topo.Edge) {
		vs := e.Children()
		if len(vs) != 2 {
			continue
		}
		n := len(coords)
		coords = append(coords, m.Reals(vs[0].Point().Coords()), m.Reals(vs[1].Point().Coords()))
		strips = append(strips, m.List{m.Int(n + 1), m.Int(n + 2)})
	}
	if len(strips) == 0 {
		return 0, false
	}
	list := t.g.New(m.CoordinatesList,
		m.F("name", m.Str("")),
		m.F("npoints", m.Int(len(coords))),
		m.F("position_coords", coords))
	curves := t.g.New(m.TessellatedCurveSet,
		m.F("name", m.Str("")),
		m.F("coordinates", m.Ref(list)),
		m.F("line_strips", strips))
	return t.g.New(m.TessellatedGeometricSet,
		m.F("name", m.Str("")),
		m.F("children", m.RefsOf(curves))), true
}
