package shapewrite

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
)

// brep translates the geometry of s and returns the representation items
// to list in its shape representation.
func (t *Translator) brep(s topo.Shape) (items []m.ID, hasSolid bool) {
	switch s.Type() {
	case topo.Compound, topo.CompSolid:
		for _, c := range s.Children() {
			sub, solid := t.brep(c)
			items = append(items, sub...)
			hasSolid = hasSolid || solid
		}
		return items, hasSolid
	case topo.Solid:
		if id, ok := t.solid(s); ok {
			return []m.ID{id}, true
		}
		return nil, false
	case topo.Shell:
		return []m.ID{t.surfaceModel(t.shell(s, m.OpenShell))}, false
	case topo.Face:
		af := t.face(s)
		sh := t.g.Create(m.OpenShell, m.F("name", m.Str("")), m.F("cfs_faces", m.RefsOf(af)))
		return []m.ID{t.surfaceModel(sh)}, false
	default:
		return []m.ID{t.curveSet(s)}, false
	}
}

func (t *Translator) solid(s topo.Shape) (m.ID, bool) {
	shells := s.Children()
	if len(shells) == 0 {
		t.logger.Warn("solid without shells skipped", "shape", s)
		return 0, false
	}
	if len(shells) > 1 {
		t.logger.Debug("inner shells of solid are not written", "shape", s, "shells", len(shells))
	}
	outer := t.shell(shells[0], m.ClosedShell)
	id := t.g.Create(m.ManifoldSolidBrep, m.F("name", m.Str("")), m.F("outer", m.Ref(outer)))
	t.reg.Bind(s, id)
	return id, true
}

func (t *Translator) surfaceModel(shell m.ID) m.ID {
	return t.g.Create(m.ShellBasedSurfaceModel, m.F("name", m.Str("")), m.F("sbsm_boundary", m.RefsOf(shell)))
}

func (t *Translator) shell(s topo.Shape, kind m.Kind) m.ID {
	if id, ok := t.reg.FindTyped(t.g, s, kind); ok {
		return id
	}
	var faces []m.ID
	for _, f := range s.Children() {
		if f.Type() == topo.Face {
			faces = append(faces, t.face(f))
		}
	}
	id := t.g.Create(kind, m.F("name", m.Str("")), m.F("cfs_faces", m.RefsOf(faces...)))
	t.reg.Bind(s, id)
	return id
}

func (t *Translator) face(f topo.Shape) m.ID {
	if id, ok := t.reg.FindTyped(t.g, f, m.AdvancedFace); ok {
		return id
	}
	wires := f.Children()
	var bounds []m.ID
	var pts []topo.Point
	for i, w := range wires {
		loop, wpts := t.loop(w)
		if i == 0 {
			pts = wpts
		}
		kind := m.FaceBound
		if i == 0 {
			kind = m.FaceOuterBound
		}
		bounds = append(bounds, t.g.Create(kind,
			m.F("name", m.Str("")),
			m.F("bound", m.Ref(loop)),
			m.F("orientation", m.Bool(true))))
	}
	plane := t.g.Create(m.Plane, m.F("name", m.Str("")), m.F("position", m.Ref(t.placement(planeAxis(pts)))))
	id := t.g.Create(m.AdvancedFace,
		m.F("name", m.Str("")),
		m.F("bounds", m.RefsOf(bounds...)),
		m.F("face_geometry", m.Ref(plane)),
		m.F("same_sense", m.Bool(true)))
	t.reg.Bind(f, id)
	return id
}

// loop writes an edge loop and returns the points of the wire in loop order.
func (t *Translator) loop(w topo.Shape) (m.ID, []topo.Point) {
	edges := w.Children()
	forward := orient(edges)
	var oes []m.ID
	var pts []topo.Point
	for i, e := range edges {
		ec := t.edge(e)
		oes = append(oes, t.g.Create(m.OrientedEdge,
			m.F("name", m.Str("")),
			m.F("edge_start", m.Derived{}),
			m.F("edge_end", m.Derived{}),
			m.F("edge_element", m.Ref(ec)),
			m.F("orientation", m.Bool(forward[i]))))
		if start, _, ok := ends(e, forward[i]); ok {
			pts = append(pts, start.Point())
		}
	}
	id := t.g.Create(m.EdgeLoop, m.F("name", m.Str("")), m.F("edge_list", m.RefsOf(oes...)))
	t.reg.Bind(w, id)
	return id, pts
}

func (t *Translator) edge(e topo.Shape) m.ID {
	if id, ok := t.reg.FindTyped(t.g, e, m.EdgeCurve); ok {
		return id
	}
	vs := e.Children()
	if len(vs) < 2 {
		vs = append(vs, vs...)
	}
	v1, v2 := t.vertex(vs[0]), t.vertex(vs[1])
	id := t.g.Create(m.EdgeCurve,
		m.F("name", m.Str("")),
		m.F("edge_start", m.Ref(v1)),
		m.F("edge_end", m.Ref(v2)),
		m.F("edge_geometry", m.Ref(t.line(vs[0].Point(), vs[1].Point()))),
		m.F("same_sense", m.Bool(true)))
	t.reg.Bind(e, id)
	return id
}

func (t *Translator) vertex(v topo.Shape) m.ID {
	if id, ok := t.reg.FindTyped(t.g, v, m.VertexPoint); ok {
		return id
	}
	id := t.g.Create(m.VertexPoint, m.F("name", m.Str("")), m.F("vertex_geometry", m.Ref(t.point(v.Point()))))
	t.reg.Bind(v, id)
	return id
}

// curveSet writes wireframe shapes as lines and points.
func (t *Translator) curveSet(s topo.Shape) m.ID {
	var elems []m.ID
	for _, e := range topo.Explore(s, topo.Edge) {
		t.edge(e)
		ec, _ := t.reg.FindTyped(t.g, e, m.EdgeCurve)
		if line, ok := t.g.RefField(ec, "edge_geometry"); ok {
			elems = append(elems, line)
		}
	}
	if s.Type() == topo.Vertex {
		elems = append(elems, t.point(s.Point()))
	}
	id := t.g.Create(m.GeometricCurveSet, m.F("name", m.Str("")), m.F("elements", m.RefsOf(elems...)))
	t.reg.Bind(s, id)
	return id
}

func (t *Translator) line(p1, p2 topo.Point) m.ID {
	d := p2.Sub(p1)
	vec := t.g.Create(m.Vector,
		m.F("name", m.Str("")),
		m.F("orientation", m.Ref(t.direction(d.Normalized()))),
		m.F("magnitude", m.Real(d.Norm())))
	return t.g.Create(m.Line, m.F("name", m.Str("")), m.F("pnt", m.Ref(t.point(p1))), m.F("dir", m.Ref(vec)))
}

func (t *Translator) point(p topo.Point) m.ID {
	return t.g.Create(m.CartesianPoint, m.F("name", m.Str("")), m.F("coordinates", m.Reals(p.Coords())))
}

func (t *Translator) direction(d topo.Point) m.ID {
	return t.g.Create(m.Direction, m.F("name", m.Str("")), m.F("direction_ratios", m.Reals(d.Coords())))
}

// Placement writes an AXIS2_PLACEMENT_3D.
func (t *Translator) Placement(a topo.Axis) m.ID { return t.placement(a) }

// Point writes a CARTESIAN_POINT.
func (t *Translator) Point(p topo.Point) m.ID { return t.point(p) }

// Direction writes a normalized DIRECTION.
func (t *Translator) Direction(d topo.Point) m.ID { return t.direction(d.Normalized()) }

func (t *Translator) placement(a topo.Axis) m.ID {
	return t.g.Create(m.Axis2Placement3D,
		m.F("name", m.Str("")),
		m.F("location", m.Ref(t.point(a.Origin))),
		m.F("axis", m.Ref(t.direction(a.Dir.Normalized()))),
		m.F("ref_direction", m.Ref(t.direction(a.XDir.Normalized()))))
}

// orient reports for each edge of a wire whether it is traversed from its
// first to its second vertex.
func orient(edges []topo.Shape) []bool {
	fw := make([]bool, len(edges))
	if len(edges) == 0 {
		return fw
	}
	fw[0] = true
	if len(edges) > 1 {
		_, end, _ := ends(edges[0], true)
		next := edges[1].Children()
		fw[0] = len(next) == 2 && (end == next[0] || end == next[1])
	}
	for i := 1; i < len(edges); i++ {
		_, prevEnd, _ := ends(edges[i-1], fw[i-1])
		vs := edges[i].Children()
		fw[i] = len(vs) == 0 || vs[0] == prevEnd
	}
	return fw
}

func ends(e topo.Shape, forward bool) (start, end topo.Shape, ok bool) {
	vs := e.Children()
	if len(vs) != 2 {
		return topo.Shape{}, topo.Shape{}, false
	}
	if forward {
		return vs[0], vs[1], true
	}
	return vs[1], vs[0], true
}

// planeAxis fits a plane through a closed polyline (Newell's method).
func planeAxis(pts []topo.Point) topo.Axis {
	if len(pts) < 3 {
		return topo.DefaultAxis
	}
	var n topo.Point
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	x := pts[1].Sub(pts[0])
	if n.Norm() == 0 || x.Norm() == 0 {
		return topo.DefaultAxis
	}
	return topo.Axis{Origin: pts[0], Dir: n.Normalized(), XDir: x.Normalized()}
}
