package topo

import "fmt"

func newShape(typ ShapeType, children []Shape) Shape {
	return Shape{t: &TShape{typ: typ, children: children}}
}

// MakeVertex builds a vertex.
func MakeVertex(p Point) Shape {
	s := newShape(Vertex, nil)
	s.t.point = p
	return s
}

// MakeEdge builds a straight edge between two vertices.
func MakeEdge(v1, v2 Shape) Shape { return newShape(Edge, []Shape{v1, v2}) }

// MakeWire builds a wire from edges.
func MakeWire(edges ...Shape) Shape { return newShape(Wire, edges) }

// MakeFace builds a face bounded by wires; the first wire is the outer bound.
func MakeFace(wires ...Shape) Shape { return newShape(Face, wires) }

// MakeShell builds a shell from faces.
func MakeShell(faces ...Shape) Shape { return newShape(Shell, faces) }

// MakeSolid builds a solid from shells; the first shell is the outer one.
func MakeSolid(shells ...Shape) Shape { return newShape(Solid, shells) }

// MakeCompound builds a compound. Children may be added later with Add.
func MakeCompound(children ...Shape) Shape {
	return newShape(Compound, append([]Shape(nil), children...))
}

// Add appends a child to a compound definition. Every shape sharing the
// definition sees the new child.
func Add(compound, child Shape) error {
	if compound.IsNull() || compound.Type() != Compound {
		return fmt.Errorf("cannot add to %s: not a compound", compound)
	}
	compound.t.children = append(compound.t.children, child)
	return nil
}

// MakePolygon builds a planar face from a closed polyline.
func MakePolygon(pts ...Point) Shape {
	vs := make([]Shape, len(pts))
	for i, p := range pts {
		vs[i] = MakeVertex(p)
	}
	edges := make([]Shape, len(vs))
	for i := range vs {
		edges[i] = MakeEdge(vs[i], vs[(i+1)%len(vs)])
	}
	return MakeFace(MakeWire(edges...))
}

// MakeBox builds an axis-aligned box with shared edges and vertices.
func MakeBox(dx, dy, dz float64) Shape {
	var v [8]Shape
	for i := 0; i < 8; i++ {
		v[i] = MakeVertex(Point{
			X: float64(i&1) * dx,
			Y: float64((i>>1)&1) * dy,
			Z: float64((i>>2)&1) * dz,
		})
	}
	edges := make(map[[2]int]Shape)
	edge := func(a, b int) Shape {
		if a > b {
			a, b = b, a
		}
		k := [2]int{a, b}
		if e, ok := edges[k]; ok {
			return e
		}
		e := MakeEdge(v[a], v[b])
		edges[k] = e
		return e
	}
	quads := [6][4]int{
		{0, 2, 3, 1}, // bottom
		{4, 5, 7, 6}, // top
		{0, 1, 5, 4},
		{2, 6, 7, 3},
		{0, 4, 6, 2},
		{1, 3, 7, 5},
	}
	faces := make([]Shape, 0, 6)
	for _, q := range quads {
		faces = append(faces, MakeFace(MakeWire(
			edge(q[0], q[1]), edge(q[1], q[2]), edge(q[2], q[3]), edge(q[3], q[0]),
		)))
	}
	return MakeSolid(MakeShell(faces...))
}
