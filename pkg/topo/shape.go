// Package topo is a minimal boundary-representation model: shapes are shared
// topological definitions placed by a Location.
//
// Two shapes with the same definition and location are the same shape and
// compare equal with ==, so Shape values can be used directly as map keys.
package topo

import "fmt"

// ShapeType identifies the topological level of a shape.
type ShapeType int

// Shape types ordered from the most to the least complex.
const (
	Compound ShapeType = iota
	CompSolid
	Solid
	Shell
	Face
	Wire
	Edge
	Vertex
)

var shapeTypeNames = [...]string{"compound", "compsolid", "solid", "shell", "face", "wire", "edge", "vertex"}

// String returns the lower-case name of the type.
func (t ShapeType) String() string {
	if t < 0 || int(t) >= len(shapeTypeNames) {
		return fmt.Sprintf("shapetype(%d)", int(t))
	}
	return shapeTypeNames[t]
}

// ParseShapeType is the inverse of String.
func ParseShapeType(s string) (ShapeType, error) {
	for i, name := range shapeTypeNames {
		if name == s {
			return ShapeType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape type %q", s)
}

// TShape is a shared topological definition.
type TShape struct {
	typ      ShapeType
	children []Shape
	point    Point
}

// Type returns the type of the definition.
func (t *TShape) Type() ShapeType { return t.typ }

// Shape is a located reference to a TShape. The zero value is the null shape.
type Shape struct {
	t   *TShape
	loc Location
}

// IsNull reports whether the shape has no definition.
func (s Shape) IsNull() bool { return s.t == nil }

// Type returns the shape type. It panics on a null shape.
func (s Shape) Type() ShapeType { return s.t.typ }

// TShape returns the underlying definition.
func (s Shape) TShape() *TShape { return s.t }

// Location returns the placement of the shape.
func (s Shape) Location() Location { return s.loc }

// Located returns the same definition with its location replaced.
func (s Shape) Located(l Location) Shape { return Shape{t: s.t, loc: l} }

// Moved returns the shape with l applied after its current location.
func (s Shape) Moved(l Location) Shape { return Shape{t: s.t, loc: l.Multiplied(s.loc)} }

// IsPartner reports whether both shapes share a definition, whatever their location.
func (s Shape) IsPartner(o Shape) bool { return s.t == o.t }

// IsSame reports whether both shapes share a definition and a location.
func (s Shape) IsSame(o Shape) bool { return s == o }

// NbChildren returns the number of direct sub-shapes.
func (s Shape) NbChildren() int {
	if s.t == nil {
		return 0
	}
	return len(s.t.children)
}

// Children returns the direct sub-shapes, moved by the location of s.
func (s Shape) Children() []Shape {
	if s.t == nil {
		return nil
	}
	out := make([]Shape, len(s.t.children))
	for i, c := range s.t.children {
		out[i] = c.Moved(s.loc)
	}
	return out
}

// Point returns the placed point of a vertex.
func (s Shape) Point() Point {
	if s.t == nil {
		return Point{}
	}
	return s.loc.Apply(s.t.point)
}

// String is used in diagnostics.
func (s Shape) String() string {
	if s.t == nil {
		return "null"
	}
	return fmt.Sprintf("%s@%p", s.t.typ, s.t)
}

// Explore returns the distinct sub-shapes of the given type in depth-first order,
// including s itself when it has that type.
func Explore(s Shape, typ ShapeType) []Shape {
	if s.IsNull() {
		return nil
	}
	var out []Shape
	seen := make(map[Shape]bool)
	var walk func(Shape)
	walk = func(c Shape) {
		if c.Type() == typ {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
			return
		}
		if c.Type() > typ {
			return
		}
		for _, child := range c.Children() {
			walk(child)
		}
	}
	walk(s)
	return out
}

// Contains reports whether sub is s or one of its sub-shapes.
func Contains(s, sub Shape) bool {
	if s.IsNull() || sub.IsNull() {
		return false
	}
	if s == sub {
		return true
	}
	for _, c := range s.Children() {
		if Contains(c, sub) {
			return true
		}
	}
	return false
}
