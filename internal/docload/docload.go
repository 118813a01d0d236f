// Package docload reads YAML product descriptions into XCAF documents.
//
// A description lists materials, layers, simple shapes built from boxes,
// assemblies of placed components, styled higher usage chains and GD&T
// annotations attached to faces:
//
//	materials:
//	  - {name: Steel, density: 7.85}
//	shapes:
//	  - name: Bolt
//	    box: [2, 2, 10]
//	    color: red
//	    material: Steel
//	    faces:
//	      - {index: 0, name: bottom}
//	assemblies:
//	  - name: Root
//	    components:
//	      - {ref: Bolt, name: left, at: [-5, 0, 0]}
//	datums:
//	  - name: A
//	    on: [{shape: Bolt, face: 0}]
package docload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
	"gopkg.in/yaml.v3"
)

// ParseError reports an invalid description.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Description is the YAML form of a document.
type Description struct {
	Materials      []MaterialSpec      `yaml:"materials"`
	Layers         []LayerSpec         `yaml:"layers"`
	Shapes         []ShapeSpec         `yaml:"shapes"`
	Assemblies     []AssemblySpec      `yaml:"assemblies"`
	SHUOs          []SHUOSpec          `yaml:"shuos"`
	Datums         []DatumSpec         `yaml:"datums"`
	Dimensions     []DimensionSpec     `yaml:"dimensions"`
	GeomTolerances []GeomToleranceSpec `yaml:"tolerances"`
	DimTols        []DimTolSpec        `yaml:"dimtols"`
}

// MaterialSpec describes a material.
type MaterialSpec struct {
	Name             string  `yaml:"name"`
	Description      string  `yaml:"description"`
	Density          float64 `yaml:"density"`
	DensityName      string  `yaml:"density_name"`
	DensityValueType string  `yaml:"density_value_type"`
}

// LayerSpec declares a layer. Layers named by shapes or components are
// created visible when not declared.
type LayerSpec struct {
	Name    string `yaml:"name"`
	Visible *bool  `yaml:"visible"`
}

// StyleSpec is the presentation shared by shapes, faces, components and
// higher usage chains.
type StyleSpec struct {
	Color      *ColorSpec `yaml:"color"`
	Surface    *ColorSpec `yaml:"surface_color"`
	Curve      *ColorSpec `yaml:"curve_color"`
	Hidden     bool       `yaml:"hidden"`
	LayerNames []string   `yaml:"layers"`
}

// PropsSpec holds precomputed validation properties.
type PropsSpec struct {
	Area     *float64  `yaml:"area"`
	Volume   *float64  `yaml:"volume"`
	Centroid []float64 `yaml:"centroid"`
}

// ShapeSpec describes a simple shape.
type ShapeSpec struct {
	Name      string      `yaml:"name"`
	Box       []float64   `yaml:"box"`
	Boxes     [][]float64 `yaml:"boxes"`
	Material  string      `yaml:"material"`
	Faces     []FaceSpec  `yaml:"faces"`
	StyleSpec `yaml:",inline"`
	PropsSpec `yaml:",inline"`
}

// FaceSpec names a face of a shape by its exploration index.
type FaceSpec struct {
	Index     int    `yaml:"index"`
	Name      string `yaml:"name"`
	StyleSpec `yaml:",inline"`
	PropsSpec `yaml:",inline"`
}

// AssemblySpec describes an assembly.
type AssemblySpec struct {
	Name       string          `yaml:"name"`
	Components []ComponentSpec `yaml:"components"`
	StyleSpec  `yaml:",inline"`
	PropsSpec  `yaml:",inline"`
}

// ComponentSpec places an occurrence of a shape or assembly.
type ComponentSpec struct {
	Ref       string    `yaml:"ref"`
	Name      string    `yaml:"name"`
	At        []float64 `yaml:"at"`
	Axis      *AxisSpec `yaml:"axis"`
	StyleSpec `yaml:",inline"`
}

// AxisSpec is a placement frame.
type AxisSpec struct {
	Origin []float64 `yaml:"origin"`
	Dir    []float64 `yaml:"dir"`
	XDir   []float64 `yaml:"xdir"`
}

// SHUOSpec overrides the style of one occurrence path. Each path element
// is "assembly/component", the component given by name or index.
type SHUOSpec struct {
	Path      []string `yaml:"path"`
	StyleSpec `yaml:",inline"`
}

// FaceRef designates a face of a simple shape.
type FaceRef struct {
	Shape string `yaml:"shape"`
	Face  int    `yaml:"face"`
}

// DatumSpec describes a datum.
type DatumSpec struct {
	Name           string    `yaml:"name"`
	Description    string    `yaml:"description"`
	Identification string    `yaml:"identification"`
	Modifiers      []string  `yaml:"modifiers"`
	On             []FaceRef `yaml:"on"`
}

// DimensionSpec describes a dimension.
type DimensionSpec struct {
	Type      string    `yaml:"type"`
	Value     float64   `yaml:"value"`
	Qualifier string    `yaml:"qualifier"`
	Range     []float64 `yaml:"range"`
	PlusMinus []float64 `yaml:"plus_minus"`
	Fit       *FitSpec  `yaml:"fit"`
	Modifiers []string  `yaml:"modifiers"`
	On        []FaceRef `yaml:"on"`
	To        []FaceRef `yaml:"to"`
}

// FitSpec is an ISO limits-and-fits class such as H7.
type FitSpec struct {
	Hole  bool   `yaml:"hole"`
	Class string `yaml:"class"`
	Grade string `yaml:"grade"`
}

// GeomToleranceSpec describes a geometric tolerance.
type GeomToleranceSpec struct {
	Type      string    `yaml:"type"`
	Value     float64   `yaml:"value"`
	ValueType string    `yaml:"value_type"`
	Material  string    `yaml:"material_modifier"`
	Zone      string    `yaml:"zone_modifier"`
	ZoneValue float64   `yaml:"zone_value"`
	Modifiers []string  `yaml:"modifiers"`
	MaxValue  float64   `yaml:"max_value"`
	On        []FaceRef `yaml:"on"`
	Datums    []string  `yaml:"datums"`
}

// DimTolSpec describes a legacy kind-coded dimension or tolerance.
type DimTolSpec struct {
	Kind        int       `yaml:"kind"`
	Values      []float64 `yaml:"values"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	On          []FaceRef `yaml:"on"`
	Datums      []string  `yaml:"datums"`
}

// LoadFile reads a description from path.
func LoadFile(path string) (*xcaf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Load(bytes.NewReader(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Load reads a description. Unknown fields are rejected.
func Load(r io.Reader) (*xcaf.Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var desc Description
	if err := dec.Decode(&desc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	return Build(&desc)
}

// Build turns a decoded description into a document.
func Build(desc *Description) (*xcaf.Document, error) {
	b := &builder{
		doc:    xcaf.New(),
		labels: make(map[string]*xcaf.Label),
		shapes: make(map[string]topo.Shape),
		datums: make(map[string]*xcaf.Label),
	}
	steps := []func(*Description) error{
		b.materials, b.layers, b.simpleShapes, b.assemblies, b.shuos,
		b.addDatums, b.dimensions, b.tolerances, b.dimtols,
	}
	for _, step := range steps {
		if err := step(desc); err != nil {
			return nil, err
		}
	}
	return b.doc, nil
}

type builder struct {
	doc    *xcaf.Document
	labels map[string]*xcaf.Label
	shapes map[string]topo.Shape
	datums map[string]*xcaf.Label
}

func invalid(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

func (b *builder) materials(desc *Description) error {
	for _, ms := range desc.Materials {
		if ms.Name == "" {
			return invalid("material without name")
		}
		if ms.Density < 0 {
			return invalid("material %q: negative density", ms.Name)
		}
		b.doc.AddMaterial(xcaf.Material{
			Name:             ms.Name,
			Description:      ms.Description,
			Density:          ms.Density,
			DensityName:      ms.DensityName,
			DensityValueType: ms.DensityValueType,
		})
	}
	return nil
}

func (b *builder) layers(desc *Description) error {
	for _, ls := range desc.Layers {
		if ls.Name == "" {
			return invalid("layer without name")
		}
		ly := b.doc.AddLayer(ls.Name)
		if ls.Visible != nil {
			ly.Visible = *ls.Visible
		}
	}
	return nil
}

func (b *builder) declare(name string, l *xcaf.Label) error {
	if name == "" {
		return invalid("shape without name")
	}
	if _, dup := b.labels[name]; dup {
		return invalid("duplicate shape name %q", name)
	}
	b.labels[name] = l
	return nil
}

func (b *builder) simpleShapes(desc *Description) error {
	for _, ss := range desc.Shapes {
		s, err := geometry(ss)
		if err != nil {
			return err
		}
		l := b.doc.AddShape(ss.Name, s)
		if err := b.declare(ss.Name, l); err != nil {
			return err
		}
		b.shapes[ss.Name] = s
		b.style(l, ss.StyleSpec)
		if err := applyProps(l, ss.PropsSpec, ss.Name); err != nil {
			return err
		}
		if ss.Material != "" {
			mat, ok := b.doc.Material(ss.Material)
			if !ok {
				return invalid("shape %q: unknown material %q", ss.Name, ss.Material)
			}
			l.SetMaterial(mat)
		}

		faces := topo.Explore(s, topo.Face)
		for _, fs := range ss.Faces {
			if fs.Index < 0 || fs.Index >= len(faces) {
				return invalid("shape %q: face %d out of range (%d faces)", ss.Name, fs.Index, len(faces))
			}
			sub, err := b.doc.AddSubShape(l, faces[fs.Index], fs.Name)
			if err != nil {
				return fmt.Errorf("failed to add face %d of %q: %w", fs.Index, ss.Name, err)
			}
			subject := ss.Name + " face " + strconv.Itoa(fs.Index)
			b.style(sub, fs.StyleSpec)
			if err := applyProps(sub, fs.PropsSpec, subject); err != nil {
				return err
			}
		}
	}
	return nil
}

func geometry(ss ShapeSpec) (topo.Shape, error) {
	box := func(dims []float64) (topo.Shape, error) {
		if len(dims) != 3 {
			return topo.Shape{}, invalid("shape %q: box needs 3 dimensions, got %d", ss.Name, len(dims))
		}
		for _, d := range dims {
			if d <= 0 {
				return topo.Shape{}, invalid("shape %q: box dimensions must be positive", ss.Name)
			}
		}
		return topo.MakeBox(dims[0], dims[1], dims[2]), nil
	}
	switch {
	case ss.Box != nil && ss.Boxes != nil:
		return topo.Shape{}, invalid("shape %q: box and boxes are exclusive", ss.Name)
	case ss.Box != nil:
		return box(ss.Box)
	case len(ss.Boxes) > 0:
		parts := make([]topo.Shape, 0, len(ss.Boxes))
		for _, dims := range ss.Boxes {
			s, err := box(dims)
			if err != nil {
				return topo.Shape{}, err
			}
			parts = append(parts, s)
		}
		return topo.MakeCompound(parts...), nil
	default:
		// an empty shape is kept so the writer can report it
		return topo.Shape{}, nil
	}
}

func (b *builder) assemblies(desc *Description) error {
	// declare first so components may refer to assemblies listed later
	asms := make([]*xcaf.Label, len(desc.Assemblies))
	for i, as := range desc.Assemblies {
		asms[i] = b.doc.NewAssembly(as.Name)
		if err := b.declare(as.Name, asms[i]); err != nil {
			return err
		}
	}
	for i, as := range desc.Assemblies {
		asm := asms[i]
		b.style(asm, as.StyleSpec)
		if err := applyProps(asm, as.PropsSpec, as.Name); err != nil {
			return err
		}
		for j, cs := range as.Components {
			ref, ok := b.labels[cs.Ref]
			if !ok {
				return invalid("assembly %q: component %d refers to unknown shape %q", as.Name, j, cs.Ref)
			}
			loc, err := placement(cs)
			if err != nil {
				return invalid("assembly %q: component %d: %v", as.Name, j, err)
			}
			comp, err := b.doc.AddComponent(asm, ref, loc)
			if err != nil {
				return &ParseError{Message: err.Error()}
			}
			if cs.Name != "" {
				comp.SetName(cs.Name)
			}
			b.style(comp, cs.StyleSpec)
		}
	}
	return nil
}

func point(v []float64, what string) (topo.Point, error) {
	if len(v) != 3 {
		return topo.Point{}, fmt.Errorf("%s needs 3 coordinates, got %d", what, len(v))
	}
	return topo.Point{X: v[0], Y: v[1], Z: v[2]}, nil
}

func placement(cs ComponentSpec) (topo.Location, error) {
	if cs.Axis != nil && cs.At != nil {
		return topo.Location{}, errors.New("at and axis are exclusive")
	}
	if cs.At != nil {
		p, err := point(cs.At, "at")
		if err != nil {
			return topo.Location{}, err
		}
		return topo.Translation(p.X, p.Y, p.Z), nil
	}
	if cs.Axis == nil {
		return topo.Location{}, nil
	}
	ax := topo.DefaultAxis
	var err error
	if cs.Axis.Origin != nil {
		if ax.Origin, err = point(cs.Axis.Origin, "origin"); err != nil {
			return topo.Location{}, err
		}
	}
	if cs.Axis.Dir != nil {
		if ax.Dir, err = point(cs.Axis.Dir, "dir"); err != nil {
			return topo.Location{}, err
		}
	}
	if cs.Axis.XDir != nil {
		if ax.XDir, err = point(cs.Axis.XDir, "xdir"); err != nil {
			return topo.Location{}, err
		}
	}
	if ax.Dir.Norm() == 0 || ax.XDir.Norm() == 0 {
		return topo.Location{}, errors.New("axis directions must not be zero")
	}
	return topo.FromAxis(ax), nil
}

func (b *builder) component(ref string) (*xcaf.Label, error) {
	asmName, comp, ok := strings.Cut(ref, "/")
	if !ok {
		return nil, fmt.Errorf("occurrence %q is not assembly/component", ref)
	}
	asm, ok := b.labels[asmName]
	if !ok || !asm.IsAssembly() {
		return nil, fmt.Errorf("occurrence %q: unknown assembly %q", ref, asmName)
	}
	comps := asm.Components()
	if i, err := strconv.Atoi(comp); err == nil {
		if i < 0 || i >= len(comps) {
			return nil, fmt.Errorf("occurrence %q: component index out of range", ref)
		}
		return comps[i], nil
	}
	for _, c := range comps {
		if c.Name() == comp {
			return c, nil
		}
	}
	return nil, fmt.Errorf("occurrence %q: no component named %q", ref, comp)
}

func (b *builder) shuos(desc *Description) error {
	for i, ss := range desc.SHUOs {
		path := make([]*xcaf.Label, len(ss.Path))
		for j, ref := range ss.Path {
			c, err := b.component(ref)
			if err != nil {
				return invalid("shuo %d: %v", i, err)
			}
			path[j] = c
		}
		main, err := b.doc.SetSHUO(path...)
		if err != nil {
			return invalid("shuo %d: %v", i, err)
		}
		if len(ss.LayerNames) > 0 {
			return invalid("shuo %d: layers cannot be assigned to occurrences", i)
		}
		for t, c := range ss.colors() {
			main.SetColor(t, c)
		}
		if ss.Hidden {
			main.SetVisible(false)
		}
	}
	return nil
}

func (b *builder) faces(refs []FaceRef, what string) ([]*xcaf.Label, error) {
	out := make([]*xcaf.Label, 0, len(refs))
	for _, fr := range refs {
		l, ok := b.labels[fr.Shape]
		s, isSimple := b.shapes[fr.Shape]
		if !ok || !isSimple {
			return nil, invalid("%s: unknown simple shape %q", what, fr.Shape)
		}
		faces := topo.Explore(s, topo.Face)
		if fr.Face < 0 || fr.Face >= len(faces) {
			return nil, invalid("%s: face %d of %q out of range", what, fr.Face, fr.Shape)
		}
		sub, err := b.doc.AddSubShape(l, faces[fr.Face], "")
		if err != nil {
			return nil, invalid("%s: %v", what, err)
		}
		out = append(out, sub)
	}
	return out, nil
}

func (b *builder) datumRefs(names []string, what string) ([]*xcaf.Label, error) {
	out := make([]*xcaf.Label, 0, len(names))
	for _, n := range names {
		d, ok := b.datums[n]
		if !ok {
			return nil, invalid("%s: unknown datum %q", what, n)
		}
		out = append(out, d)
	}
	return out, nil
}

func (b *builder) addDatums(desc *Description) error {
	for _, ds := range desc.Datums {
		what := fmt.Sprintf("datum %q", ds.Name)
		if ds.Name == "" {
			return invalid("datum without name")
		}
		if _, dup := b.datums[ds.Name]; dup {
			return invalid("duplicate datum %q", ds.Name)
		}
		on, err := b.faces(ds.On, what)
		if err != nil {
			return err
		}
		obj := xcaf.DatumObject{Name: ds.Name, Description: ds.Description, Identification: ds.Identification}
		for _, s := range ds.Modifiers {
			mod, err := xcaf.ParseDatumModifier(s)
			if err != nil {
				return invalid("%s: %v", what, err)
			}
			obj.Modifiers = append(obj.Modifiers, mod)
		}
		l, err := b.doc.AddDatum(obj, on...)
		if err != nil {
			return invalid("%s: %v", what, err)
		}
		b.datums[ds.Name] = l
	}
	return nil
}

func bounds(v []float64, what string) (*xcaf.Bounds, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 2 {
		return nil, invalid("%s needs [lower, upper]", what)
	}
	return &xcaf.Bounds{Lower: v[0], Upper: v[1]}, nil
}

func (b *builder) dimensions(desc *Description) error {
	for i, ds := range desc.Dimensions {
		what := fmt.Sprintf("dimension %d", i)
		typ, err := xcaf.ParseDimensionType(ds.Type)
		if err != nil {
			return invalid("%s: %v", what, err)
		}
		obj := xcaf.DimensionObject{Type: typ, Value: ds.Value}
		if ds.Qualifier != "" {
			if obj.Qualifier, err = xcaf.ParseQualifier(ds.Qualifier); err != nil {
				return invalid("%s: %v", what, err)
			}
		}
		if obj.Range, err = bounds(ds.Range, what+" range"); err != nil {
			return err
		}
		if obj.PlusMinus, err = bounds(ds.PlusMinus, what+" plus_minus"); err != nil {
			return err
		}
		if ds.Fit != nil {
			obj.ClassOfTolerance = &xcaf.ClassOfTolerance{Hole: ds.Fit.Hole, FormVariance: ds.Fit.Class, Grade: ds.Fit.Grade}
		}
		for _, s := range ds.Modifiers {
			mod, err := xcaf.ParseDimensionModifier(s)
			if err != nil {
				return invalid("%s: %v", what, err)
			}
			obj.Modifiers = append(obj.Modifiers, mod)
		}
		first, err := b.faces(ds.On, what)
		if err != nil {
			return err
		}
		second, err := b.faces(ds.To, what)
		if err != nil {
			return err
		}
		if _, err := b.doc.AddDimension(obj, first, second); err != nil {
			return invalid("%s: %v", what, err)
		}
	}
	return nil
}

func (b *builder) tolerances(desc *Description) error {
	for i, ts := range desc.GeomTolerances {
		what := fmt.Sprintf("tolerance %d", i)
		typ, err := xcaf.ParseToleranceType(ts.Type)
		if err != nil {
			return invalid("%s: %v", what, err)
		}
		obj := xcaf.GeomToleranceObject{Type: typ, Value: ts.Value, ZoneModifierValue: ts.ZoneValue, MaxValue: ts.MaxValue}
		if ts.ValueType != "" {
			if obj.ValueType, err = xcaf.ParseToleranceValueType(ts.ValueType); err != nil {
				return invalid("%s: %v", what, err)
			}
		}
		if ts.Material != "" {
			if obj.MaterialModifier, err = xcaf.ParseMaterialModifier(ts.Material); err != nil {
				return invalid("%s: %v", what, err)
			}
		}
		if ts.Zone != "" {
			if obj.ZoneModifier, err = xcaf.ParseZoneModifier(ts.Zone); err != nil {
				return invalid("%s: %v", what, err)
			}
		}
		for _, s := range ts.Modifiers {
			mod, err := xcaf.ParseToleranceModifier(s)
			if err != nil {
				return invalid("%s: %v", what, err)
			}
			obj.Modifiers = append(obj.Modifiers, mod)
		}
		on, err := b.faces(ts.On, what)
		if err != nil {
			return err
		}
		datums, err := b.datumRefs(ts.Datums, what)
		if err != nil {
			return err
		}
		if _, err := b.doc.AddGeomTolerance(obj, on, datums...); err != nil {
			return invalid("%s: %v", what, err)
		}
	}
	return nil
}

func (b *builder) dimtols(desc *Description) error {
	for i, ds := range desc.DimTols {
		what := fmt.Sprintf("dimtol %d", i)
		on, err := b.faces(ds.On, what)
		if err != nil {
			return err
		}
		datums, err := b.datumRefs(ds.Datums, what)
		if err != nil {
			return err
		}
		dt := xcaf.DimTol{Kind: ds.Kind, Values: ds.Values, Name: ds.Name, Description: ds.Description}
		if _, err := b.doc.AddDimTol(dt, on, datums...); err != nil {
			return invalid("%s: %v", what, err)
		}
	}
	return nil
}

func (b *builder) style(l *xcaf.Label, ss StyleSpec) {
	for t, c := range ss.colors() {
		l.SetColor(t, c)
	}
	if ss.Hidden {
		l.SetVisible(false)
	}
	for _, name := range ss.LayerNames {
		b.doc.AddLayer(name).Add(l)
	}
}

func (ss StyleSpec) colors() map[xcaf.ColorType]xcaf.Color {
	out := make(map[xcaf.ColorType]xcaf.Color)
	for t, spec := range map[xcaf.ColorType]*ColorSpec{
		xcaf.ColorGen:  ss.Color,
		xcaf.ColorSurf: ss.Surface,
		xcaf.ColorCurv: ss.Curve,
	} {
		if spec != nil {
			out[t] = xcaf.Color(*spec)
		}
	}
	return out
}

func applyProps(l *xcaf.Label, ps PropsSpec, subject string) error {
	if ps.Area != nil {
		if *ps.Area < 0 {
			return invalid("%s: negative area", subject)
		}
		l.SetArea(*ps.Area)
	}
	if ps.Volume != nil {
		if *ps.Volume < 0 {
			return invalid("%s: negative volume", subject)
		}
		l.SetVolume(*ps.Volume)
	}
	if ps.Centroid != nil {
		p, err := point(ps.Centroid, "centroid")
		if err != nil {
			return invalid("%s: %v", subject, err)
		}
		l.SetCentroid(p)
	}
	return nil
}
