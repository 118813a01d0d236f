// Package gdt writes the dimensioning and tolerancing annotations of a
// document: datums and datum targets, dimensions, geometric tolerances with
// their datum systems, and their optional tessellated presentations.
//
// Every annotation is anchored to a shape aspect of a face or edge found by
// walking up from its representation item to the product definition shape.
// A failed walk skips that annotation only. The AP242 writer uses the rich
// annotation objects; the AP214 writer uses the legacy kind-coded ones.
//
// Records shared by one pass (the presentation style, the annotation planes
// and the draughting model listing them) live in a RunContext created by
// NewRun and flushed by Finish.
package gdt

import (
	"log/slog"

	"github.com/leapstack-labs/leapstep/internal/diag"
	"github.com/leapstack-labs/leapstep/internal/registry"
	"github.com/leapstack-labs/leapstep/internal/shapewrite"
	"github.com/leapstack-labs/leapstep/internal/styles"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// Config holds translator configuration.
type Config struct {
	Graph    *m.Graph
	Registry *registry.Registry
	// Shapes writes the points and placements of annotations and supplies
	// the default units.
	Shapes *shapewrite.Translator
	// Styles encodes the curve style of presentations.
	Styles *styles.Resolver
	Schema m.Schema
	Sink   *diag.Sink
	Logger *slog.Logger
}

// Translator writes annotations into one graph.
type Translator struct {
	g      *m.Graph
	reg    *registry.Registry
	shapes *shapewrite.Translator
	styles *styles.Resolver
	schema m.Schema
	sink   *diag.Sink
	logger *slog.Logger
}

// New creates a translator.
func New(cfg Config) *Translator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sink := cfg.Sink
	if sink == nil {
		sink = diag.New(logger)
	}
	reg := cfg.Registry
	if reg == nil {
		reg = registry.New()
	}
	shapes := cfg.Shapes
	if shapes == nil {
		shapes = shapewrite.New(shapewrite.Config{Graph: cfg.Graph, Registry: reg, Schema: cfg.Schema, Logger: logger})
	}
	st := cfg.Styles
	if st == nil {
		st = styles.New(styles.Config{Graph: cfg.Graph, Registry: reg, Sink: sink, Logger: logger})
	}
	return &Translator{
		g:      cfg.Graph,
		reg:    reg,
		shapes: shapes,
		styles: st,
		schema: cfg.Schema,
		sink:   sink,
		logger: logger,
	}
}

// datumKey identifies a legacy datum.
type datumKey struct {
	name, description, identification string
}

// targetKey identifies one datum target of a named datum.
type targetKey struct {
	name   string
	number int
}

// RunContext is the state of one annotation pass. It must not be shared
// between passes.
type RunContext struct {
	// context is the representation context of the first anchored shape aspect.
	context m.ID

	curveStyle m.ID
	model      m.ID
	planes     []m.ID

	datums  map[string]m.ID
	targets map[targetKey]struct{}
	legacy  map[datumKey]m.ID

	// Written counts the annotations written.
	Written int
}

// NewRun starts an annotation pass.
func (t *Translator) NewRun() *RunContext {
	return &RunContext{
		datums:  make(map[string]m.ID),
		targets: make(map[targetKey]struct{}),
		legacy:  make(map[datumKey]m.ID),
	}
}

// Scope reports whether an annotation attached to a shape label is written.
type Scope func(*xcaf.Label) bool

// Write writes the annotations of doc whose shapes are all in scope, with
// the writer matching the schema. A nil scope accepts every label.
func (t *Translator) Write(run *RunContext, doc *xcaf.Document, scope Scope) {
	if scope == nil {
		scope = func(*xcaf.Label) bool { return true }
	}
	inScope := func(l *xcaf.Label) bool {
		first, second := l.RefShapes()
		for _, s := range append(append([]*xcaf.Label(nil), first...), second...) {
			if !scope(s) {
				return false
			}
		}
		return len(first) > 0
	}
	if t.schema == m.AP242 {
		t.writeDatums(run, filter(doc.Datums(), inScope))
		t.writeDimensions(run, filter(doc.Dimensions(), inScope))
		t.writeTolerances(run, filter(doc.GeomTolerances(), inScope))
		return
	}
	t.writeLegacyDatums(run, filter(doc.Datums(), inScope))
	t.writeLegacy(run, filter(doc.DimTols(), inScope))
}

// Finish writes the draughting model listing every annotation plane of the
// pass. It reports false when the pass wrote no presentation.
func (t *Translator) Finish(run *RunContext) (m.ID, bool) {
	if len(run.planes) == 0 || run.model == 0 {
		return 0, false
	}
	if err := t.g.SetField(run.model, "items", m.RefsOf(run.planes...)); err != nil {
		t.logger.Warn("failed to list annotation planes", "error", err)
		return 0, false
	}
	if run.context != 0 {
		if err := t.g.SetField(run.model, "context_of_items", m.Ref(run.context)); err != nil {
			t.logger.Warn("failed to set draughting model context", "error", err)
		}
	}
	t.logger.Debug("wrote draughting model", "planes", len(run.planes))
	return run.model, true
}

func filter(labels []*xcaf.Label, keep func(*xcaf.Label) bool) []*xcaf.Label {
	var out []*xcaf.Label
	for _, l := range labels {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// unit returns the length or plane angle unit of a representation context,
// falling back to the units of the graph's geometric context.
func (t *Translator) unit(context m.ID, angle bool) m.ID {
	kind := m.LengthUnit
	if angle {
		kind = m.PlaneAngleUnit
	}
	if context != 0 {
		if u, ok := shapewrite.Unit(t.g, context, kind); ok {
			return u
		}
	}
	ctx := t.shapes.Contexts()
	if angle {
		return ctx.PlaneAngleUnit
	}
	return ctx.LengthUnit
}

// lengthMeasure creates a LENGTH_MEASURE_WITH_UNIT.
func (t *Translator) lengthMeasure(v float64, unit m.ID) m.ID {
	return t.g.Create(m.LengthMeasureWithUnit,
		m.F("value_component", m.Typed{Type: "LENGTH_MEASURE", V: m.Real(v)}),
		m.F("unit_component", m.Ref(unit)))
}

// measureItem creates a measure representation item: a named value with a
// unit, optionally qualified.
func (t *Translator) measureItem(name string, v float64, unit m.ID, measure string, angle bool, qualifiers []m.ID) m.ID {
	mwu := m.Part{Kind: "MEASURE_WITH_UNIT", Fields: []m.Field{
		m.F("value_component", m.Typed{Type: measure, V: m.Real(v)}),
		m.F("unit_component", m.Ref(unit)),
	}}
	ri := m.Part{Kind: "REPRESENTATION_ITEM", Fields: []m.Field{m.F("name", m.Str(name))}}
	mri := m.Part{Kind: "MEASURE_REPRESENTATION_ITEM"}
	qri := m.Part{Kind: "QUALIFIED_REPRESENTATION_ITEM", Fields: []m.Field{m.F("qualifiers", m.RefsOf(qualifiers...))}}

	var kind m.Kind
	var parts []m.Part
	switch {
	case angle && len(qualifiers) > 0:
		kind = m.ReprItemAndAngleMeasureQualified
		parts = []m.Part{mri, mwu, {Kind: "PLANE_ANGLE_MEASURE_WITH_UNIT"}, qri, ri}
	case angle:
		kind = m.ReprItemAndAngleMeasure
		parts = []m.Part{mri, mwu, {Kind: "PLANE_ANGLE_MEASURE_WITH_UNIT"}, ri}
	case len(qualifiers) > 0:
		kind = m.ReprItemAndLengthMeasureQualified
		parts = []m.Part{{Kind: "LENGTH_MEASURE_WITH_UNIT"}, mri, mwu, qri, ri}
	default:
		kind = m.ReprItemAndLengthMeasure
		parts = []m.Part{{Kind: "LENGTH_MEASURE_WITH_UNIT"}, mri, mwu, ri}
	}
	return t.g.NewComplex(kind, parts...)
}

// orientation writes a placement named "orientation".
func (t *Translator) orientation(a topo.Axis) m.ID {
	id := t.shapes.Placement(a)
	if err := t.g.SetField(id, "name", m.Str("orientation")); err != nil {
		t.logger.Warn("failed to name placement", "error", err)
	}
	return id
}

func refOrNull(id m.ID) m.Value {
	if id == 0 {
		return m.Null{}
	}
	return m.Ref(id)
}
