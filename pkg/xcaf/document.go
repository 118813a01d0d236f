package xcaf

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapstep/pkg/topo"
)

// ErrNotShape is returned when an operation needs a shape definition label.
var ErrNotShape = errors.New("label is not a shape definition")

// Document is a product structure. The root holds two sections: shapes
// (top-level definitions with their components and sub-shapes) and
// annotations (GD&T objects).
type Document struct {
	root        *Label
	shapes      *Label
	annotations *Label
	layers      []*Layer
	materials   map[string]*Material
}

// New creates an empty document.
func New() *Document {
	d := &Document{materials: make(map[string]*Material)}
	d.root = &Label{doc: d, kind: kindSection}
	d.shapes = d.root.newChild(kindSection)
	d.annotations = d.root.newChild(kindSection)
	return d
}

// Root returns the root label.
func (d *Document) Root() *Label { return d.root }

// AddShape adds a top-level simple shape.
func (d *Document) AddShape(name string, s topo.Shape) *Label {
	l := d.shapes.newChild(kindShape)
	l.name = name
	l.shape = s
	return l
}

// NewAssembly adds an empty top-level assembly. Components are added with
// AddComponent; the assembly shape is a compound that grows with them.
func (d *Document) NewAssembly(name string) *Label {
	l := d.shapes.newChild(kindAssembly)
	l.name = name
	l.shape = topo.MakeCompound()
	return l
}

// AddComponent places an occurrence of ref inside asm.
func (d *Document) AddComponent(asm, ref *Label, loc topo.Location) (*Label, error) {
	if asm == nil || !asm.IsAssembly() || asm.doc != d {
		return nil, fmt.Errorf("cannot add component to %v: not an assembly of this document", asm)
	}
	if ref == nil || !ref.IsTopLevel() || ref.doc != d {
		return nil, fmt.Errorf("cannot reference %v: %w", ref, ErrNotShape)
	}
	if ref == asm {
		return nil, fmt.Errorf("assembly %s cannot contain itself", asm)
	}
	c := asm.newChild(kindComponent)
	c.ref = ref
	c.loc = loc
	if err := topo.Add(asm.shape, c.Shape()); err != nil {
		return nil, fmt.Errorf("failed to add component shape: %w", err)
	}
	return c, nil
}

// AddSubShape attaches a label to a sub-shape of a simple shape.
func (d *Document) AddSubShape(l *Label, s topo.Shape, name string) (*Label, error) {
	if l == nil || !l.IsSimpleShape() {
		return nil, fmt.Errorf("cannot add sub-shape to %v: %w", l, ErrNotShape)
	}
	if !topo.Contains(l.shape, s) {
		return nil, fmt.Errorf("shape %s is not a sub-shape of %s", s, l)
	}
	for _, sub := range l.SubShapes() {
		if sub.shape == s {
			return sub, nil
		}
	}
	sub := l.newChild(kindSubShape)
	sub.shape = s
	sub.name = name
	return sub, nil
}

// Shapes returns the top-level shape labels in creation order.
func (d *Document) Shapes() []*Label {
	var out []*Label
	for _, c := range d.shapes.children {
		if c.kind == kindShape || c.kind == kindAssembly {
			out = append(out, c)
		}
	}
	return out
}

// FreeShapes returns the top-level shapes not referenced by any component.
func (d *Document) FreeShapes() []*Label {
	used := make(map[*Label]bool)
	for _, l := range d.Shapes() {
		for _, c := range l.Components() {
			used[c.ref] = true
		}
	}
	var out []*Label
	for _, l := range d.Shapes() {
		if !used[l] {
			out = append(out, l)
		}
	}
	return out
}

// FindShape returns the top-level label holding s, ignoring the location of s.
func (d *Document) FindShape(s topo.Shape) (*Label, bool) {
	if s.IsNull() {
		return nil, false
	}
	s = s.Located(topo.Location{})
	for _, l := range d.Shapes() {
		if l.shape == s {
			return l, true
		}
	}
	return nil, false
}

// AddLayer returns the layer with the given name, creating it visible.
func (d *Document) AddLayer(name string) *Layer {
	if ly, ok := d.Layer(name); ok {
		return ly
	}
	ly := &Layer{Name: name, Visible: true}
	d.layers = append(d.layers, ly)
	return ly
}

// Layer looks a layer up by name.
func (d *Document) Layer(name string) (*Layer, bool) {
	for _, ly := range d.layers {
		if ly.Name == name {
			return ly, true
		}
	}
	return nil, false
}

// Layers returns all layers in creation order.
func (d *Document) Layers() []*Layer { return d.layers }

// AddMaterial registers a material, replacing any previous one of the same name.
func (d *Document) AddMaterial(m Material) *Material {
	p := &m
	d.materials[m.Name] = p
	return p
}

// Material looks a material up by name.
func (d *Document) Material(name string) (*Material, bool) {
	m, ok := d.materials[name]
	return m, ok
}

func (d *Document) newAnnotation(prefix string, payload any) *Label {
	l := d.annotations.newChild(kindAnnotation)
	l.gdt = payload
	l.name = annotationName(prefix, len(d.annotations.children))
	return l
}

func (d *Document) checkRefs(labels []*Label) error {
	for _, l := range labels {
		if l == nil || l.doc != d || l.kind == kindSection || l.kind == kindAnnotation {
			return fmt.Errorf("annotation cannot reference %v", l)
		}
	}
	return nil
}

func (d *Document) annotationsOf(match func(any) bool) []*Label {
	var out []*Label
	for _, c := range d.annotations.children {
		if match(c.gdt) {
			out = append(out, c)
		}
	}
	return out
}
