package gdt

import (
	"fmt"
	"strings"

	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// limitsAndFitsSource is the standard limits-and-fits designations refer to.
const limitsAndFitsSource = "ISO 286-2:2010"

func (t *Translator) writeDimensions(run *RunContext, labels []*xcaf.Label) {
	for _, l := range labels {
		obj, ok := l.Dimension()
		if !ok {
			continue
		}
		if t.writeDimension(run, l, obj) {
			run.Written++
		}
	}
}

// dimensionKind returns the record kind of a dimension type. Common labels
// and bare presentations have none.
func dimensionKind(typ xcaf.DimensionType) (m.Kind, bool) {
	switch {
	case typ.IsLocation():
		return m.DimensionalLocation, true
	case typ == xcaf.DimLocationAngular:
		return m.AngularLocation, true
	case typ == xcaf.DimLocationWithPath:
		return m.DimensionalLocationWithPath, true
	case typ.IsSize():
		return m.DimensionalSize, true
	case typ == xcaf.DimSizeAngular:
		return m.AngularSize, true
	case typ == xcaf.DimSizeWithPath:
		return m.DimensionalSizeWithPath, true
	}
	return "", false
}

func (t *Translator) writeDimension(run *RunContext, l *xcaf.Label, obj *xcaf.DimensionObject) bool {
	kind, ok := dimensionKind(obj.Type)
	if !ok {
		t.sink.Invalid(l.Entry(), "dimension type %s is not written", obj.Type)
		return false
	}
	first, second := l.RefShapes()
	sa1, ok := t.composite(run, l, first)
	if !ok {
		return false
	}
	var sa2 aspect
	if len(second) > 0 {
		sa2, _ = t.composite(run, l, second)
	}

	name := m.Str(dimensionTypeNames[obj.Type])
	var fields []m.Field
	if m.IsSubtype(kind, m.DimensionalLocation) {
		fields = []m.Field{
			m.F("name", name),
			m.F("description", m.Null{}),
			m.F("relating_shape_aspect", m.Ref(sa1.id)),
			m.F("related_shape_aspect", refOrNull(sa2.id)),
		}
	} else {
		fields = []m.Field{
			m.F("applies_to", m.Ref(sa1.id)),
			m.F("name", name),
		}
	}
	switch kind {
	case m.AngularLocation, m.AngularSize:
		fields = append(fields, m.F("angle_selection", angleSelection(obj.Qualifier)))
	case m.DimensionalLocationWithPath, m.DimensionalSizeWithPath:
		var path m.ID
		if !obj.Path.IsNull() {
			if p, ok := t.shapeAspect(run, l, obj.Path); ok {
				path = p.id
			}
		}
		fields = append(fields, m.F("path", refOrNull(path)))
	}
	dim := t.g.Create(kind, fields...)

	angle := obj.Type.IsAngular()
	unit := t.unit(sa1.context, angle)
	sdr := t.g.Create(m.ShapeDimensionRepresentation,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(t.dimensionValues(obj, unit, angle)...)),
		m.F("context_of_items", refOrNull(sa1.context)))
	t.g.Create(m.DimensionalCharacteristicRepresentation,
		m.F("dimension", m.Ref(dim)),
		m.F("representation", m.Ref(sdr)))

	if pm := obj.PlusMinus; pm != nil {
		measure := strings.TrimPrefix(measureName(angle), "POSITIVE_")
		bound := func(v float64) m.ID {
			return t.g.Create(m.MeasureWithUnit,
				m.F("value_component", m.Typed{Type: measure, V: m.Real(v)}),
				m.F("unit_component", m.Ref(unit)))
		}
		tv := t.g.Create(m.ToleranceValue,
			m.F("lower_bound", m.Ref(bound(-pm.Lower))),
			m.F("upper_bound", m.Ref(bound(pm.Upper))))
		t.plusMinus(tv, dim)
	}
	if cot := obj.ClassOfTolerance; cot != nil {
		zone := "shaft"
		if cot.Hole {
			zone = "hole"
		}
		laf := t.g.Create(m.LimitsAndFits,
			m.F("form_variance", m.Str(cot.FormVariance)),
			m.F("zone_variance", m.Str(zone)),
			m.F("grade", m.Str(cot.Grade)),
			m.F("source", m.Str(limitsAndFitsSource)))
		t.plusMinus(laf, dim)
	}

	t.presentation(run, obj.Presentation, dim)
	return true
}

func (t *Translator) plusMinus(rng, dim m.ID) {
	t.g.Create(m.PlusMinusTolerance,
		m.F("range", m.Ref(rng)),
		m.F("toleranced_dimension", m.Ref(dim)))
}

func measureName(angle bool) string {
	if angle {
		return "POSITIVE_PLANE_ANGLE_MEASURE"
	}
	return "POSITIVE_LENGTH_MEASURE"
}

// dimensionValues writes the representation items of a dimension: the
// nominal value or its range, then modifiers, orientation and descriptions.
func (t *Translator) dimensionValues(obj *xcaf.DimensionObject, unit m.ID, angle bool) []m.ID {
	measure := measureName(angle)
	var items []m.ID
	if r := obj.Range; r != nil {
		items = append(items,
			t.measureItem("lower limit", r.Lower, unit, measure, angle, nil),
			t.measureItem("upper limit", r.Upper, unit, measure, angle, nil))
	} else {
		var qualifiers []m.ID
		if q, ok := qualifierNames[obj.Qualifier]; ok && !angle {
			qualifiers = append(qualifiers, t.g.New(m.TypeQualifier, m.F("name", m.Str(q))))
		}
		if obj.LeftDigits > 0 || obj.RightDigits > 0 {
			format := fmt.Sprintf("NR2 %d.%d", obj.LeftDigits, obj.RightDigits)
			qualifiers = append(qualifiers, t.g.New(m.ValueFormatTypeQualifier, m.F("format_type", m.Str(format))))
		}
		items = append(items, t.measureItem("nominal value", obj.Value, unit, measure, angle, qualifiers))
	}

	if len(obj.Modifiers) > 0 {
		var mods []m.ID
		for _, mod := range obj.Modifiers {
			mods = append(mods, t.g.New(m.DescriptiveRepresentationItem,
				m.F("name", m.Str("")),
				m.F("description", m.Str(dimensionModifierNames[mod]))))
		}
		items = append(items, t.g.New(m.CompoundRepresentationItem,
			m.F("name", m.Str("modifiers")),
			m.F("item_element", m.Typed{Type: "SET_REPRESENTATION_ITEM", V: m.RefsOf(mods...)})))
	}

	if obj.Type == xcaf.DimLocationOriented {
		items = append(items, t.g.Create(m.Axis2Placement3D,
			m.F("name", m.Str("orientation")),
			m.F("location", m.Ref(t.shapes.Point(obj.Origin))),
			m.F("axis", m.Ref(t.shapes.Direction(obj.Direction))),
			m.F("ref_direction", m.Null{})))
	}

	for _, d := range obj.Descriptions {
		items = append(items, t.g.New(m.DescriptiveRepresentationItem,
			m.F("name", m.Str(d.Name)),
			m.F("description", m.Str(d.Text))))
	}
	return items
}
