// Package xcaf is the product-structure document: a tree of labels carrying
// shapes and their attributes (names, colours, layers, validation properties,
// materials, GD&T annotations and per-occurrence overrides).
//
// Documents are built once and then read by the STEP writer; nothing in the
// writer mutates them.
package xcaf

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapstep/pkg/topo"
)

type labelKind int

const (
	kindSection labelKind = iota
	kindShape
	kindAssembly
	kindComponent
	kindSubShape
	kindAnnotation
)

// Label is a node of the document tree.
type Label struct {
	doc      *Document
	tag      int
	father   *Label
	children []*Label
	kind     labelKind

	name  string
	shape topo.Shape

	// component
	ref *Label
	loc topo.Location

	style    Style
	layers   []*Layer
	area     *float64
	volume   *float64
	centroid *topo.Point
	material *Material
	shuos    []*SHUO

	// annotation
	gdt    any
	first  []*Label
	second []*Label
	datums []*Label
}

func (l *Label) newChild(kind labelKind) *Label {
	c := &Label{doc: l.doc, tag: len(l.children) + 1, father: l, kind: kind}
	l.children = append(l.children, c)
	return c
}

// Entry returns the tag path of the label, e.g. "0:1:1:3".
func (l *Label) Entry() string {
	if l.father == nil {
		return strconv.Itoa(l.tag)
	}
	return l.father.Entry() + ":" + strconv.Itoa(l.tag)
}

// String returns the entry, followed by the name when there is one.
func (l *Label) String() string {
	if l.name == "" {
		return l.Entry()
	}
	return l.Entry() + " " + strconv.Quote(l.name)
}

// Document returns the owning document.
func (l *Label) Document() *Document { return l.doc }

// Father returns the parent label, nil for the root.
func (l *Label) Father() *Label { return l.father }

// Name returns the label name.
func (l *Label) Name() string { return l.name }

// SetName sets the label name.
func (l *Label) SetName(name string) { l.name = name }

// Shape returns the shape of the label. A component returns the referred
// shape moved by the component placement.
func (l *Label) Shape() topo.Shape {
	if l.kind == kindComponent {
		if l.ref == nil {
			return topo.Shape{}
		}
		return l.ref.Shape().Moved(l.loc)
	}
	return l.shape
}

// IsTopLevel reports whether the label is a shape definition directly under the shapes section.
func (l *Label) IsTopLevel() bool {
	return (l.kind == kindShape || l.kind == kindAssembly) && l.father == l.doc.shapes
}

// IsAssembly reports whether the label is an assembly of components.
func (l *Label) IsAssembly() bool { return l.kind == kindAssembly }

// IsComponent reports whether the label is an occurrence of another shape inside an assembly.
func (l *Label) IsComponent() bool { return l.kind == kindComponent }

// IsReference reports whether the label refers to another shape label.
func (l *Label) IsReference() bool { return l.kind == kindComponent }

// IsSimpleShape reports whether the label owns geometry directly.
func (l *Label) IsSimpleShape() bool { return l.kind == kindShape }

// IsSubShape reports whether the label designates a sub-shape of its father.
func (l *Label) IsSubShape() bool { return l.kind == kindSubShape }

// IsCompound reports whether the label holds a compound that is not an assembly.
func (l *Label) IsCompound() bool {
	if l.kind == kindAssembly {
		return false
	}
	s := l.Shape()
	return !s.IsNull() && s.Type() == topo.Compound
}

// ReferredShape returns the shape label a component refers to.
func (l *Label) ReferredShape() (*Label, bool) {
	if l.kind != kindComponent || l.ref == nil {
		return nil, false
	}
	return l.ref, true
}

// Location returns the placement of a component, identity otherwise.
func (l *Label) Location() topo.Location { return l.loc }

// Components returns the direct components of an assembly.
func (l *Label) Components() []*Label {
	if l.kind != kindAssembly {
		return nil
	}
	return l.childrenOf(kindComponent)
}

// SubShapes returns the sub-shape labels attached to the label.
func (l *Label) SubShapes() []*Label { return l.childrenOf(kindSubShape) }

// Children returns all child labels in creation order.
func (l *Label) Children() []*Label { return append([]*Label(nil), l.children...) }

func (l *Label) childrenOf(kind labelKind) []*Label {
	var out []*Label
	for _, c := range l.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// IsDescendantOf reports whether l is other or lies below it in the tree.
func (l *Label) IsDescendantOf(other *Label) bool {
	for cur := l; cur != nil; cur = cur.father {
		if cur == other {
			return true
		}
	}
	return false
}

// Style returns the declared style of the label.
func (l *Label) Style() Style { return l.style }

// Color returns the colour of the given type, if set.
func (l *Label) Color(t ColorType) (Color, bool) { return l.style.Color(t) }

// SetColor sets a colour of the given type.
func (l *Label) SetColor(t ColorType, c Color) { l.style.SetColor(t, c) }

// IsVisible reports the declared visibility. Labels are visible by default.
func (l *Label) IsVisible() bool { return !l.style.Hidden }

// SetVisible sets the declared visibility.
func (l *Label) SetVisible(v bool) { l.style.Hidden = !v }

// Layers returns the layers the label belongs to.
func (l *Label) Layers() []*Layer { return l.layers }

// Area returns the declared surface area.
func (l *Label) Area() (float64, bool) { return deref(l.area) }

// SetArea declares the surface area.
func (l *Label) SetArea(v float64) { l.area = &v }

// Volume returns the declared volume.
func (l *Label) Volume() (float64, bool) { return deref(l.volume) }

// SetVolume declares the volume.
func (l *Label) SetVolume(v float64) { l.volume = &v }

// Centroid returns the declared centre of mass.
func (l *Label) Centroid() (topo.Point, bool) {
	if l.centroid == nil {
		return topo.Point{}, false
	}
	return *l.centroid, true
}

// SetCentroid declares the centre of mass.
func (l *Label) SetCentroid(p topo.Point) { l.centroid = &p }

// Material returns the material of the label.
func (l *Label) Material() *Material { return l.material }

// SetMaterial assigns a material.
func (l *Label) SetMaterial(m *Material) { l.material = m }

// SHUOs returns the occurrence override nodes attached to a component.
func (l *Label) SHUOs() []*SHUO { return l.shuos }

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// annotationName builds a default annotation name such as "Datum 1".
func annotationName(prefix string, n int) string {
	return strings.TrimSpace(prefix + " " + strconv.Itoa(n))
}
