// Package shapewrite translates shapes into product and representation
// records: the product chain of every shape definition, its B-rep items,
// and for assemblies the occurrence structure linking parents to components.
//
// Definitions are memoized per topological definition, so a shape shared by
// several assemblies is emitted once and referenced by one occurrence per
// placement.
package shapewrite

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapstep/internal/registry"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
)

// ErrNullShape is returned when asked to translate a null shape.
var ErrNullShape = errors.New("null shape")

// Definition holds the records of one translated shape definition.
type Definition struct {
	Product     m.ID
	Formation   m.ID
	PD          m.ID
	PDS         m.ID
	SR          m.ID
	SDR         m.ID
	Origin      m.ID
	IsAssembly  bool
	Occurrences []Occurrence
}

// Occurrence holds the records placing a component inside an assembly.
type Occurrence struct {
	Shape topo.Shape
	NAUO  m.ID
	PDS   m.ID
	CDSR  m.ID
	Child *Definition
}

// Config holds translator configuration.
type Config struct {
	Graph    *m.Graph
	Registry *registry.Registry
	Schema   m.Schema
	// Unit is the length unit: mm (default), cm, m or um.
	Unit string
	// Tolerance is the distance accuracy written in the geometric context.
	Tolerance float64
	// AsAssembly translates every compound as an assembly, which is how the
	// placeholder structure of a multi-file export is written.
	AsAssembly bool
	Logger     *slog.Logger
}

// Translator writes shapes into one graph.
type Translator struct {
	g          *m.Graph
	reg        *registry.Registry
	schema     m.Schema
	unit       string
	tolerance  float64
	asAssembly bool
	logger     *slog.Logger

	ctx      *Contexts
	defs     map[*topo.TShape]*Definition
	products int
	nauos    int
}

// New creates a translator.
func New(cfg Config) *Translator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	unit := cfg.Unit
	if unit == "" {
		unit = "mm"
	}
	tol := cfg.Tolerance
	if tol <= 0 {
		tol = 1e-7
	}
	reg := cfg.Registry
	if reg == nil {
		reg = registry.New()
	}
	return &Translator{
		g:          cfg.Graph,
		reg:        reg,
		schema:     cfg.Schema,
		unit:       unit,
		tolerance:  tol,
		asAssembly: cfg.AsAssembly,
		logger:     logger,
		defs:       make(map[*topo.TShape]*Definition),
	}
}

// SetAsAssembly switches assembly mode for subsequent transfers.
func (t *Translator) SetAsAssembly(on bool) { t.asAssembly = on }

// Transfer translates a top-level shape and returns its definition. A shape
// whose definition was already translated returns the existing records.
func (t *Translator) Transfer(s topo.Shape) (*Definition, error) {
	if s.IsNull() {
		return nil, ErrNullShape
	}
	if !s.Location().IsIdentity() {
		// a located top-level shape is written through its definition
		s = s.Located(topo.Location{})
	}
	return t.definition(s)
}

// Definition returns the records of a translated shape definition.
func (t *Translator) Definition(s topo.Shape) (*Definition, bool) {
	if s.IsNull() {
		return nil, false
	}
	d, ok := t.defs[s.TShape()]
	return d, ok
}

func (t *Translator) isAssembly(s topo.Shape) bool {
	if s.Type() != topo.Compound {
		return false
	}
	return t.asAssembly || t.reg.IsAssembly(s)
}

func (t *Translator) definition(s topo.Shape) (*Definition, error) {
	if d, ok := t.defs[s.TShape()]; ok {
		return d, nil
	}
	ctx := t.Contexts()
	d := t.product(ctx)
	t.defs[s.TShape()] = d

	d.Origin = t.placement(topo.DefaultAxis)
	if t.isAssembly(s) {
		d.IsAssembly = true
		d.SR = t.g.Create(m.ShapeRepresentation,
			m.F("name", m.Str("")),
			m.F("items", m.RefsOf(d.Origin)),
			m.F("context_of_items", m.Ref(ctx.Geometric)))
		t.finish(s, d)
		for _, c := range s.Children() {
			occ, err := t.occurrence(d, c)
			if err != nil {
				return nil, fmt.Errorf("failed to translate component %s: %w", c, err)
			}
			d.Occurrences = append(d.Occurrences, occ)
		}
		t.logger.Debug("translated assembly", "sdr", d.SDR, "components", len(d.Occurrences))
		return d, nil
	}

	items, hasSolid := t.brep(s)
	kind := m.ShapeRepresentation
	if hasSolid {
		kind = m.AdvancedBrepShapeRepresentation
	}
	d.SR = t.g.Create(kind,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(append([]m.ID{d.Origin}, items...)...)),
		m.F("context_of_items", m.Ref(ctx.Geometric)))
	t.finish(s, d)
	t.logger.Debug("translated shape", "type", s.Type(), "sdr", d.SDR, "items", len(items))
	return d, nil
}

func (t *Translator) product(ctx *Contexts) *Definition {
	t.products++
	name := fmt.Sprintf("product %d", t.products)
	d := &Definition{}
	d.Product = t.g.Create(m.Product,
		m.F("id", m.Str(name)),
		m.F("name", m.Str(name)),
		m.F("description", m.Str("")),
		m.F("frame_of_reference", m.RefsOf(ctx.Product)))
	t.g.Create(m.ProductRelatedProductCategory,
		m.F("name", m.Str("part")),
		m.F("description", m.Null{}),
		m.F("products", m.RefsOf(d.Product)))
	d.Formation = t.g.Create(m.ProductDefinitionFormation,
		m.F("id", m.Str("")),
		m.F("description", m.Str("")),
		m.F("of_product", m.Ref(d.Product)))
	d.PD = t.g.Create(m.ProductDefinition,
		m.F("id", m.Str("design")),
		m.F("description", m.Str("")),
		m.F("formation", m.Ref(d.Formation)),
		m.F("frame_of_reference", m.Ref(ctx.Definition)))
	d.PDS = t.g.Create(m.ProductDefinitionShape,
		m.F("name", m.Str("")),
		m.F("description", m.Str("")),
		m.F("definition", m.Ref(d.PD)))
	return d
}

func (t *Translator) finish(s topo.Shape, d *Definition) {
	d.SDR = t.g.Create(m.ShapeDefinitionRepresentation,
		m.F("definition", m.Ref(d.PDS)),
		m.F("used_representation", m.Ref(d.SR)))
	t.reg.Bind(s, d.SDR)
	t.reg.Bind(s, d.SR)
}

// occurrence places the definition of c inside the assembly d.
func (t *Translator) occurrence(parent *Definition, c topo.Shape) (Occurrence, error) {
	child, err := t.definition(c.Located(topo.Location{}))
	if err != nil {
		return Occurrence{}, err
	}
	t.nauos++
	occ := Occurrence{Shape: c, Child: child}
	occ.NAUO = t.g.Create(m.NextAssemblyUsageOccurrence,
		m.F("id", m.Str(fmt.Sprintf("NAUO%d", t.nauos))),
		m.F("name", m.Str("")),
		m.F("description", m.Str("")),
		m.F("relating_product_definition", m.Ref(parent.PD)),
		m.F("related_product_definition", m.Ref(child.PD)),
		m.F("reference_designator", m.Null{}))
	occ.PDS = t.g.Create(m.ProductDefinitionShape,
		m.F("name", m.Str("Placement")),
		m.F("description", m.Str("Placement of an item")),
		m.F("definition", m.Ref(occ.NAUO)))

	target := t.placement(c.Location().Axis())
	if err := t.g.AppendRefs(parent.SR, "items", target); err != nil {
		return Occurrence{}, fmt.Errorf("failed to place component: %w", err)
	}
	idt := t.g.Create(m.ItemDefinedTransformation,
		m.F("name", m.Str("")),
		m.F("description", m.Str("")),
		m.F("transform_item_1", m.Ref(child.Origin)),
		m.F("transform_item_2", m.Ref(target)))
	rel := t.g.CreateComplex(m.ShapeRepresentationRelationshipWithTransformation,
		m.Part{Kind: "REPRESENTATION_RELATIONSHIP", Fields: []m.Field{
			m.F("name", m.Str("")),
			m.F("description", m.Str("")),
			m.F("rep_1", m.Ref(child.SR)),
			m.F("rep_2", m.Ref(parent.SR)),
		}},
		m.Part{Kind: "REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION", Fields: []m.Field{
			m.F("transformation_operator", m.Ref(idt)),
		}},
		m.Part{Kind: "SHAPE_REPRESENTATION_RELATIONSHIP"})
	occ.CDSR = t.g.Create(m.ContextDependentShapeRepresentation,
		m.F("representation_relation", m.Ref(rel)),
		m.F("represented_product_relation", m.Ref(occ.PDS)))
	t.reg.Bind(c, occ.CDSR)
	t.reg.Bind(c, occ.NAUO)
	return occ, nil
}
