package topo

import "math"

// Point is a cartesian point or direction in model space.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Norm returns the euclidean length of p.
func (p Point) Norm() float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }

// Normalized returns p scaled to unit length. The zero vector is returned unchanged.
func (p Point) Normalized() Point {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return Point{p.X / n, p.Y / n, p.Z / n}
}

// Coords returns the coordinates as a slice.
func (p Point) Coords() []float64 { return []float64{p.X, p.Y, p.Z} }

// Axis is a right-handed placement: origin, main direction and reference direction.
type Axis struct {
	Origin Point
	Dir    Point
	XDir   Point
}

// DefaultAxis is the global coordinate system.
var DefaultAxis = Axis{Dir: Point{Z: 1}, XDir: Point{X: 1}}

// Location is a rigid placement. The zero value is the identity.
type Location struct {
	m   [3][4]float64
	set bool
}

var identity = [3][4]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}

// Translation returns a pure translation.
func Translation(x, y, z float64) Location {
	m := identity
	m[0][3], m[1][3], m[2][3] = x, y, z
	return normalize(m)
}

// FromAxis returns the location mapping the global frame onto the axis placement.
func FromAxis(a Axis) Location {
	z := a.Dir.Normalized()
	x := a.XDir.Normalized()
	y := Point{z.Y*x.Z - z.Z*x.Y, z.Z*x.X - z.X*x.Z, z.X*x.Y - z.Y*x.X}
	m := [3][4]float64{
		{x.X, y.X, z.X, a.Origin.X},
		{x.Y, y.Y, z.Y, a.Origin.Y},
		{x.Z, y.Z, z.Z, a.Origin.Z},
	}
	return normalize(m)
}

func normalize(m [3][4]float64) Location {
	if m == identity {
		return Location{}
	}
	return Location{m: m, set: true}
}

func (l Location) matrix() [3][4]float64 {
	if !l.set {
		return identity
	}
	return l.m
}

// IsIdentity reports whether l leaves every point unchanged.
func (l Location) IsIdentity() bool { return !l.set }

// Multiplied returns the composition l * o: o is applied first.
func (l Location) Multiplied(o Location) Location {
	if !l.set {
		return o
	}
	if !o.set {
		return l
	}
	a, b := l.m, o.m
	var r [3][4]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			v := a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
			if j == 3 {
				v += a[i][3]
			}
			r[i][j] = v
		}
	}
	return normalize(r)
}

// Apply transforms a point.
func (l Location) Apply(p Point) Point {
	m := l.matrix()
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// Axis returns the placement of the global frame under l.
func (l Location) Axis() Axis {
	m := l.matrix()
	return Axis{
		Origin: Point{m[0][3], m[1][3], m[2][3]},
		Dir:    Point{m[0][2], m[1][2], m[2][2]},
		XDir:   Point{m[0][0], m[1][0], m[2][0]},
	}
}
