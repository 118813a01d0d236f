package gdt

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// Legacy dimension and tolerance kinds.
const (
	legacyToleranceMin = 20 // first tolerance kind; lower kinds are dimensions
	legacyPositionMax  = 23 // last kind of a modified position tolerance
	legacyTypedMax     = 31 // last kind with a datum system
)

// legacyModifiers are the material conditions of modified position
// tolerances, by kind. Kind 20 has none.
var legacyModifiers = map[int]m.Enum{
	21: "MAXIMUM_MATERIAL_CONDITION",
	22: "LEAST_MATERIAL_CONDITION",
	23: "REGARDLESS_OF_FEATURE_SIZE",
}

// legacyKinds are the tolerance kinds of codes 24 to 31.
var legacyKinds = []m.Kind{
	m.AngularityTolerance,
	m.CircularRunoutTolerance,
	m.CoaxialityTolerance,
	m.ConcentricityTolerance,
	m.ParallelismTolerance,
	m.PerpendicularityTolerance,
	m.SymmetryTolerance,
	m.TotalRunoutTolerance,
}

// writeLegacyDatums writes datums as a datum feature on the face and a
// datum on its surface.
func (t *Translator) writeLegacyDatums(run *RunContext, labels []*xcaf.Label) {
	for _, l := range labels {
		obj, ok := l.Datum()
		if !ok {
			continue
		}
		key := datumKey{name: obj.Name, description: obj.Description, identification: obj.Identification}
		if _, dup := run.legacy[key]; dup {
			continue
		}
		first, _ := l.RefShapes()
		a, ok := t.findAnchor(first[0].Shape(), l.Entry())
		if !ok {
			continue
		}
		if run.context == 0 {
			run.context = a.context
		}
		df := t.g.Create(m.DatumFeature,
			m.F("name", m.Str(obj.Name)),
			m.F("description", m.Str("")),
			m.F("of_shape", m.Ref(a.pds)),
			m.F("product_definitional", m.Bool(true)))
		t.legacyRepresentation(df, a.context, a.face)

		datum := t.g.Create(m.Datum,
			m.F("name", m.Str(obj.Name)),
			m.F("description", m.Str("")),
			m.F("of_shape", m.Ref(a.pds)),
			m.F("product_definitional", m.Bool(false)),
			m.F("identification", m.Str(obj.Identification)))
		surface, _ := t.g.RefField(a.face, "face_geometry")
		t.legacyRepresentation(datum, a.context, surface)

		t.g.Create(m.ShapeAspectRelationship,
			m.F("name", m.Str(obj.Name)),
			m.F("description", m.Null{}),
			m.F("relating_shape_aspect", m.Ref(df)),
			m.F("related_shape_aspect", m.Ref(datum)))
		run.legacy[key] = datum
		run.Written++
	}
}

// legacyRepresentation attaches a shape representation of one item to an
// aspect.
func (t *Translator) legacyRepresentation(aspect, context, item m.ID) {
	pd := t.g.Create(m.PropertyDefinition,
		m.F("name", m.Str("")),
		m.F("description", m.Null{}),
		m.F("definition", m.Ref(aspect)))
	sr := t.g.Create(m.ShapeRepresentation,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(item)),
		m.F("context_of_items", refOrNull(context)))
	t.g.Create(m.ShapeDefinitionRepresentation,
		m.F("definition", m.Ref(pd)),
		m.F("used_representation", m.Ref(sr)))
}

// writeLegacy writes kind-coded dimensions and tolerances.
func (t *Translator) writeLegacy(run *RunContext, labels []*xcaf.Label) {
	for _, l := range labels {
		dt, ok := l.DimTol()
		if !ok {
			continue
		}
		if len(dt.Values) == 0 {
			t.sink.Invalid(l.Entry(), "dimtol %q has no values", dt.Name)
			continue
		}
		first, _ := l.RefShapes()
		a, ok := t.findAnchor(first[0].Shape(), l.Entry())
		if !ok {
			continue
		}
		if run.context == 0 {
			run.context = a.context
		}
		sa := t.g.Create(m.ShapeAspect,
			m.F("name", m.Str(dt.Name)),
			m.F("description", m.Str("")),
			m.F("of_shape", m.Ref(a.pds)),
			m.F("product_definitional", m.Bool(true)))
		item := a.face
		if dt.Kind < legacyToleranceMin && a.edge != 0 {
			item = a.edge
		}
		t.legacyRepresentation(sa, a.context, item)

		unit := t.unit(a.context, false)
		if dt.Kind < legacyToleranceMin {
			t.legacyDimension(dt, sa, a.context, unit)
		} else {
			t.legacyTolerance(run, l, dt, sa, unit)
		}
		run.Written++
	}
}

func (t *Translator) legacyDimension(dt *xcaf.DimTol, sa, context, unit m.ID) {
	dim := t.g.Create(m.DimensionalSize,
		m.F("applies_to", m.Ref(sa)),
		m.F("name", m.Str(dt.Description)))
	if len(dt.Values) < 2 {
		return
	}
	lower := t.measureItem("lower limit", dt.Values[0], unit, "LENGTH_MEASURE", false, nil)
	upper := t.measureItem("upper limit", dt.Values[1], unit, "LENGTH_MEASURE", false, nil)
	vr := t.g.New(m.ValueRange,
		m.F("name", m.Str("")),
		m.F("item_element", m.Typed{Type: "SET_REPRESENTATION_ITEM", V: m.RefsOf(lower, upper)}))
	sdr := t.g.Create(m.ShapeDimensionRepresentation,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(vr)),
		m.F("context_of_items", refOrNull(context)))
	t.g.Create(m.DimensionalCharacteristicRepresentation,
		m.F("dimension", m.Ref(dim)),
		m.F("representation", m.Ref(sdr)))
}

func (t *Translator) legacyTolerance(run *RunContext, l *xcaf.Label, dt *xcaf.DimTol, sa, unit m.ID) {
	common := []m.Field{
		m.F("name", m.Str(dt.Name)),
		m.F("description", m.Str(dt.Description)),
		m.F("magnitude", m.Ref(t.lengthMeasure(dt.Values[0], unit))),
		m.F("toleranced_shape_aspect", m.Ref(sa)),
	}
	if dt.Kind > legacyTypedMax {
		t.g.Create(m.GeometricTolerance, common...)
		return
	}

	var refs []m.ID
	for j, dl := range l.RefDatums() {
		d, ok := dl.Datum()
		if !ok {
			continue
		}
		datum, ok := run.legacy[datumKey{name: d.Name, description: d.Description, identification: d.Identification}]
		if !ok {
			t.sink.Miss(l.Entry(), "datum %q of dimtol %q was not written", d.Name, dt.Name)
			continue
		}
		refs = append(refs, t.g.Create(m.DatumReference,
			m.F("precedence", m.Int(j+1)),
			m.F("referenced_datum", m.Ref(datum))))
	}

	if dt.Kind <= legacyPositionMax {
		modifier := m.Value(m.Null{})
		if e, ok := legacyModifiers[dt.Kind]; ok {
			modifier = e
		}
		t.g.CreateComplex(m.GeoTolWthDatRefAndModAndPos,
			m.Part{Kind: m.GeometricTolerance, Fields: common},
			m.Part{Kind: m.GeometricToleranceWithDatumReference, Fields: []m.Field{m.F("datum_system", m.RefsOf(refs...))}},
			m.Part{Kind: m.ModifiedGeometricTolerance, Fields: []m.Field{m.F("modifier", modifier)}},
			m.Part{Kind: m.PositionTolerance})
		return
	}
	t.g.Create(legacyKinds[dt.Kind-legacyPositionMax-1],
		append(common, m.F("datum_system", m.RefsOf(refs...)))...)
}
