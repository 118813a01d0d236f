package gdt

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// toleranceForm is what a geometric tolerance carries beyond its magnitude.
type toleranceForm struct {
	mod, max, ref bool
}

// combinedKinds maps tolerance forms to the complex kinds written for
// them. Forms without modifiers or datums use the kind of the tolerance
// type. A maximum value only counts with modifiers, so max never appears
// without mod.
var combinedKinds = map[toleranceForm]m.Kind{
	{mod: true, max: true, ref: true}:   m.GeoTolWthDatRefAndMaxAndMod,
	{mod: true, max: true, ref: false}:  m.GeoTolWthMaxAndMod,
	{mod: true, max: false, ref: true}:  m.GeoTolWthDatRefAndMod,
	{mod: true, max: false, ref: false}: m.GeoTolWthMod,
	{mod: false, max: false, ref: true}: m.GeoTolWthDatRef,
}

func (t *Translator) writeTolerances(run *RunContext, labels []*xcaf.Label) {
	for _, l := range labels {
		obj, ok := l.GeomTolerance()
		if !ok {
			continue
		}
		if t.writeTolerance(run, l, obj) {
			run.Written++
		}
	}
}

// toleranceModifiers lists the modifiers written for a tolerance, with its
// material requirement last. All-around and all-over are presentation only.
func toleranceModifiers(obj *xcaf.GeomToleranceObject) m.List {
	var mods m.List
	for _, mod := range obj.Modifiers {
		if mod == xcaf.TolModAllAround || mod == xcaf.TolModAllOver {
			continue
		}
		mods = append(mods, enumOf(mod.String()))
	}
	switch obj.MaterialModifier {
	case xcaf.MaterialMaximum:
		mods = append(mods, m.Enum("MAXIMUM_MATERIAL_REQUIREMENT"))
	case xcaf.MaterialLeast:
		mods = append(mods, m.Enum("LEAST_MATERIAL_REQUIREMENT"))
	}
	return mods
}

func (t *Translator) writeTolerance(run *RunContext, l *xcaf.Label, obj *xcaf.GeomToleranceObject) bool {
	typeKind, ok := toleranceKinds[obj.Type]
	if !ok {
		t.sink.Invalid(l.Entry(), "tolerance type %s is not written", obj.Type)
		return false
	}
	first, _ := l.RefShapes()
	sa, ok := t.composite(run, l, first)
	if !ok {
		return false
	}

	var system m.ID
	if len(l.RefDatums()) > 0 {
		system, _ = t.datumSystem(run, l, obj)
	}
	mods := toleranceModifiers(obj)
	form := toleranceForm{
		mod: len(mods) > 0,
		max: len(mods) > 0 && obj.MaxValue != 0,
		ref: system != 0,
	}

	unit := t.unit(sa.context, false)
	common := []m.Field{
		m.F("name", m.Str("")),
		m.F("description", m.Str("")),
		m.F("magnitude", m.Ref(t.lengthMeasure(obj.Value, unit))),
		m.F("toleranced_shape_aspect", m.Ref(sa.id)),
	}

	var tol m.ID
	if kind, ok := combinedKinds[form]; ok {
		parts := []m.Part{{Kind: m.GeometricTolerance, Fields: common}}
		if form.ref {
			parts = append(parts, m.Part{Kind: m.GeometricToleranceWithDatumReference,
				Fields: []m.Field{m.F("datum_system", m.RefsOf(system))}})
		}
		if form.max {
			parts = append(parts, m.Part{Kind: m.GeometricToleranceWithMaximumTolerance,
				Fields: []m.Field{m.F("maximum_upper_tolerance", m.Ref(t.lengthMeasure(obj.MaxValue, unit)))}})
		}
		if form.mod {
			parts = append(parts, m.Part{Kind: m.GeometricToleranceWithModifiers,
				Fields: []m.Field{m.F("modifiers", mods)}})
		}
		parts = append(parts, m.Part{Kind: typeKind})
		tol = t.g.CreateComplex(kind, parts...)
	} else {
		if m.IsSubtype(typeKind, m.GeometricToleranceWithDatumReference) {
			common = append(common, m.F("datum_system", m.Null{}))
		}
		tol = t.g.Create(typeKind, common...)
	}

	if obj.ValueType != xcaf.ValueNone || obj.ZoneModifier == xcaf.ZoneRunout {
		t.toleranceZone(obj, tol, sa)
	}
	t.presentation(run, obj.Presentation, tol)
	return true
}

// toleranceZone writes the zone of a tolerance and the definition its zone
// modifier calls for.
func (t *Translator) toleranceZone(obj *xcaf.GeomToleranceObject, tol m.ID, sa aspect) {
	formName, ok := zoneFormNames[obj.ValueType]
	if !ok {
		formName = "unknown"
	}
	form := t.g.Create(m.ToleranceZoneForm, m.F("name", m.Str(formName)))
	zone := t.g.Create(m.ToleranceZone,
		m.F("name", m.Str("")),
		m.F("description", m.Str("")),
		m.F("of_shape", m.Ref(sa.pds)),
		m.F("product_definitional", m.Bool(false)),
		m.F("defining_tolerance", m.RefsOf(tol)),
		m.F("form", m.Ref(form)))

	switch obj.ZoneModifier {
	case xcaf.ZoneRunout:
		angle := t.g.Create(m.PlaneAngleMeasureWithUnit,
			m.F("value_component", m.Typed{Type: "PLANE_ANGLE_MEASURE", V: m.Real(obj.ZoneModifierValue)}),
			m.F("unit_component", m.Ref(t.unit(sa.context, true))))
		orientation := t.g.Create(m.RunoutZoneOrientation, m.F("angle", m.Ref(angle)))
		t.g.Create(m.RunoutZoneDefinition,
			m.F("zone", m.Ref(zone)),
			m.F("boundaries", m.Null{}),
			m.F("orientation", m.Ref(orientation)))
	case xcaf.ZoneProjected:
		t.g.Create(m.ProjectedZoneDefinition,
			m.F("zone", m.Ref(zone)),
			m.F("boundaries", m.RefsOf(sa.id)),
			m.F("projection_end", m.Ref(sa.id)),
			m.F("projected_length", m.Ref(t.lengthMeasure(obj.ZoneModifierValue, t.unit(sa.context, false)))))
	case xcaf.ZoneNonUniform:
		t.g.Create(m.NonUniformZoneDefinition,
			m.F("zone", m.Ref(zone)),
			m.F("boundaries", m.RefsOf(sa.id)))
	}
}

// datumSystem writes the datum system a tolerance refers to: one
// compartment per datum precedence, each holding one datum or a common
// datum list of elements.
func (t *Translator) datumSystem(run *RunContext, l *xcaf.Label, obj *xcaf.GeomToleranceObject) (m.ID, bool) {
	byPosition := make(map[int][]*xcaf.DatumObject)
	last := 0
	for _, dl := range l.RefDatums() {
		d, ok := dl.Datum()
		if !ok {
			continue
		}
		byPosition[d.Position] = append(byPosition[d.Position], d)
		last = max(last, d.Position)
	}

	var ofShape m.ID
	var compartments []m.ID
	for pos := 1; pos <= last; pos++ {
		var found []m.ID
		var objs []*xcaf.DatumObject
		for _, d := range byPosition[pos] {
			datum, ok := run.datums[d.Name]
			if !ok {
				t.sink.Miss(l.Entry(), "datum %q referenced at precedence %d was not written", d.Name, pos)
				continue
			}
			found = append(found, datum)
			objs = append(objs, d)
		}
		if len(found) == 0 {
			continue
		}
		if ofShape == 0 {
			ofShape, _ = t.g.RefField(found[0], "of_shape")
		}
		unit := t.unit(run.context, false)

		var base, modifiers m.Value
		if len(found) == 1 {
			base = m.Ref(found[0])
			modifiers = t.datumRefModifiers(objs[0], unit)
		} else {
			var elements []m.ID
			for i, datum := range found {
				elements = append(elements, t.g.Create(m.DatumReferenceElement,
					m.F("name", m.Str("")),
					m.F("description", m.Str("")),
					m.F("of_shape", m.Ref(ofShape)),
					m.F("product_definitional", m.Bool(false)),
					m.F("base", m.Ref(datum)),
					m.F("modifiers", t.datumRefModifiers(objs[i], unit))))
			}
			base = m.RefsOf(elements...)
			modifiers = m.Null{}
		}
		compartments = append(compartments, t.g.Create(m.DatumReferenceCompartment,
			m.F("name", m.Str("")),
			m.F("description", m.Str("")),
			m.F("of_shape", m.Ref(ofShape)),
			m.F("product_definitional", m.Bool(false)),
			m.F("base", base),
			m.F("modifiers", modifiers)))
	}
	if len(compartments) == 0 {
		t.sink.Invalid(l.Entry(), "tolerance refers to datums without a valid precedence")
		return 0, false
	}

	system := t.g.Create(m.DatumSystem,
		m.F("name", m.Str("")),
		m.F("description", m.Str("")),
		m.F("of_shape", m.Ref(ofShape)),
		m.F("product_definitional", m.Bool(false)),
		m.F("constituents", m.RefsOf(compartments...)))

	if obj.Axis != nil {
		placement := t.orientation(*obj.Axis)
		if sdr, ok := t.g.FirstSharing(ofShape, m.ShapeDefinitionRepresentation); ok {
			sr, _ := t.g.RefField(sdr, "used_representation")
			t.g.Create(m.GeometricItemSpecificUsage,
				m.F("name", m.Str("")),
				m.F("description", m.Str("")),
				m.F("definition", m.Ref(system)),
				m.F("used_representation", m.Ref(sr)),
				m.F("identified_item", m.RefsOf(placement)))
		} else {
			t.sink.Miss(l.Entry(), "no shape representation for datum system axis")
		}
	}
	return system, true
}

// datumRefModifiers writes the modifiers of one datum reference: simple
// modifiers first, then the valued one.
func (t *Translator) datumRefModifiers(d *xcaf.DatumObject, unit m.ID) m.Value {
	var mods m.List
	for _, mod := range d.Modifiers {
		mods = append(mods, m.Typed{Type: "SIMPLE_DATUM_REFERENCE_MODIFIER", V: enumOf(mod.String())})
	}
	if typ, ok := datumValueModifiers[d.ValueModifier]; ok {
		mods = append(mods, m.Ref(t.g.Create(m.DatumReferenceModifierWithValue,
			m.F("modifier_type", typ),
			m.F("modifier_value", m.Ref(t.lengthMeasure(d.ModifierValue, unit))))))
	}
	if len(mods) == 0 {
		return m.Null{}
	}
	return mods
}
