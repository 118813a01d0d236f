package shapewrite

import (
	"fmt"
	"strings"

	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
)

// Contexts are the records shared by every product of one graph.
type Contexts struct {
	Application    m.ID
	Protocol       m.ID
	Product        m.ID
	Definition     m.ID
	Geometric      m.ID
	LengthUnit     m.ID
	PlaneAngleUnit m.ID
	SolidAngleUnit m.ID
}

var unitPrefixes = map[string]m.Value{
	"mm": m.Enum("MILLI"),
	"cm": m.Enum("CENTI"),
	"m":  m.Null{},
	"um": m.Enum("MICRO"),
}

// ValidUnit reports whether a length unit name is supported.
func ValidUnit(u string) bool {
	_, ok := unitPrefixes[strings.ToLower(u)]
	return ok
}

// Contexts returns the shared contexts, creating them on first use.
func (t *Translator) Contexts() *Contexts {
	if t.ctx != nil {
		return t.ctx
	}
	g := t.g
	c := &Contexts{}
	c.Application = g.Create(m.ApplicationContext, m.F("application", m.Str(t.schema.Application())))
	c.Protocol = g.Create(m.ApplicationProtocolDefinition,
		m.F("status", m.Str("international standard")),
		m.F("application_interpreted_model_schema_name", m.Str(t.schema.ModelName())),
		m.F("application_protocol_year", m.Int(t.schema.Year())),
		m.F("application", m.Ref(c.Application)))
	c.Product = g.Create(m.ProductContext,
		m.F("name", m.Str("")),
		m.F("frame_of_reference", m.Ref(c.Application)),
		m.F("discipline_type", m.Str("mechanical")))
	c.Definition = g.Create(m.ProductDefinitionContext,
		m.F("name", m.Str("part definition")),
		m.F("frame_of_reference", m.Ref(c.Application)),
		m.F("life_cycle_stage", m.Str("design")))

	prefix, ok := unitPrefixes[strings.ToLower(t.unit)]
	if !ok {
		prefix = unitPrefixes["mm"]
	}
	c.LengthUnit = g.CreateComplex(m.LengthUnit,
		m.Part{Kind: "LENGTH_UNIT"},
		m.Part{Kind: "NAMED_UNIT", Fields: []m.Field{m.F("dimensions", m.Derived{})}},
		m.Part{Kind: "SI_UNIT", Fields: []m.Field{m.F("prefix", prefix), m.F("name", m.Enum("METRE"))}})
	c.PlaneAngleUnit = g.CreateComplex(m.PlaneAngleUnit,
		m.Part{Kind: "NAMED_UNIT", Fields: []m.Field{m.F("dimensions", m.Derived{})}},
		m.Part{Kind: "PLANE_ANGLE_UNIT"},
		m.Part{Kind: "SI_UNIT", Fields: []m.Field{m.F("prefix", m.Null{}), m.F("name", m.Enum("RADIAN"))}})
	c.SolidAngleUnit = g.CreateComplex(m.SolidAngleUnit,
		m.Part{Kind: "NAMED_UNIT", Fields: []m.Field{m.F("dimensions", m.Derived{})}},
		m.Part{Kind: "SI_UNIT", Fields: []m.Field{m.F("prefix", m.Null{}), m.F("name", m.Enum("STERADIAN"))}},
		m.Part{Kind: "SOLID_ANGLE_UNIT"})
	uncertainty := g.Create(m.UncertaintyMeasureWithUnit,
		m.F("value_component", m.Typed{Type: "LENGTH_MEASURE", V: m.Real(t.tolerance)}),
		m.F("unit_component", m.Ref(c.LengthUnit)),
		m.F("name", m.Str("distance_accuracy_value")),
		m.F("description", m.Str("confusion accuracy")))
	c.Geometric = g.CreateComplex(m.GeometricContext,
		m.Part{Kind: "GEOMETRIC_REPRESENTATION_CONTEXT", Fields: []m.Field{m.F("coordinate_space_dimension", m.Int(3))}},
		m.Part{Kind: "GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT", Fields: []m.Field{m.F("uncertainty", m.RefsOf(uncertainty))}},
		m.Part{Kind: "GLOBAL_UNIT_ASSIGNED_CONTEXT", Fields: []m.Field{
			m.F("units", m.RefsOf(c.LengthUnit, c.PlaneAngleUnit, c.SolidAngleUnit)),
		}},
		m.Part{Kind: "REPRESENTATION_CONTEXT", Fields: []m.Field{
			m.F("context_identifier", m.Str(fmt.Sprintf("Context #%d", 1))),
			m.F("context_type", m.Str("3D Context with UNIT and UNCERTAINTY")),
		}})
	t.ctx = c
	return c
}

// Unit returns the first unit of the given kind assigned to a representation
// context.
func Unit(g *m.Graph, context m.ID, kind m.Kind) (m.ID, bool) {
	v, ok := g.Field(context, "units")
	if !ok {
		return 0, false
	}
	units, _ := v.(m.Refs)
	for _, u := range units {
		if g.IsKind(u, kind) {
			return u, true
		}
	}
	return 0, false
}
