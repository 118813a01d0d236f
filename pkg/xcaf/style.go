package xcaf

import "fmt"

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Common colours.
var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// String formats the colour as "(r, g, b)".
func (c Color) String() string { return fmt.Sprintf("(%g, %g, %g)", c.R, c.G, c.B) }

// ColorType selects which geometry a colour applies to.
type ColorType int

// Colour types. A generic colour applies to both curves and surfaces.
const (
	ColorGen ColorType = iota
	ColorSurf
	ColorCurv
)

// Style is the declared presentation of a label or occurrence.
type Style struct {
	Gen, Surf, Curv *Color
	Hidden          bool
}

// Color returns the colour of the given type.
func (s Style) Color(t ColorType) (Color, bool) {
	var p *Color
	switch t {
	case ColorGen:
		p = s.Gen
	case ColorSurf:
		p = s.Surf
	case ColorCurv:
		p = s.Curv
	}
	if p == nil {
		return Color{}, false
	}
	return *p, true
}

// SetColor sets the colour of the given type.
func (s *Style) SetColor(t ColorType, c Color) {
	switch t {
	case ColorGen:
		s.Gen = &c
	case ColorSurf:
		s.Surf = &c
	case ColorCurv:
		s.Curv = &c
	}
}

// HasColor reports whether any colour is declared.
func (s Style) HasColor() bool { return s.Gen != nil || s.Surf != nil || s.Curv != nil }

// IsEmpty reports whether the style declares nothing.
func (s Style) IsEmpty() bool { return !s.HasColor() && !s.Hidden }
