package stepcaf

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// derivedUnits are the units built from the length unit of the graph,
// created on first use.
type derivedUnits struct {
	area, volume, density m.ID
}

func (w *Writer) derived(exponent float64) m.ID {
	el := w.g.Create(m.DerivedUnitElement,
		m.F("unit", m.Ref(w.shapes.Contexts().LengthUnit)),
		m.F("exponent", m.Real(exponent)))
	return w.g.Create(m.DerivedUnit, m.F("elements", m.RefsOf(el)))
}

func (w *Writer) areaUnit() m.ID {
	if w.units.area == 0 {
		w.units.area = w.derived(2)
	}
	return w.units.area
}

func (w *Writer) volumeUnit() m.ID {
	if w.units.volume == 0 {
		w.units.volume = w.derived(3)
	}
	return w.units.volume
}

// writeProps writes the validation properties of translated labels, their
// components and their sub-shapes.
func (w *Writer) writeProps(c *call, labels []*xcaf.Label) {
	for _, l := range labels {
		d, ok := w.definition(l)
		if !ok {
			continue
		}
		w.validationProps(l, d.PDS, c.mode == SingleShape || l.IsAssembly())

		for _, comp := range l.Components() {
			s, ok := w.located(comp)
			if !ok {
				continue
			}
			cdsr, ok := w.reg.FindTyped(w.g, s, m.ContextDependentShapeRepresentation)
			if !ok {
				if hasProps(comp) {
					w.sink.Miss(comp.Entry(), "no occurrence for component properties")
				}
				continue
			}
			pds, _ := w.g.RefField(cdsr, "represented_product_relation")
			w.validationProps(comp, pds, true)
		}

		for _, sub := range l.SubShapes() {
			if !hasProps(sub) {
				continue
			}
			sa := w.g.Create(m.ShapeAspect,
				m.F("name", m.Str(stepName(sub.Name()))),
				m.F("description", m.Str("")),
				m.F("of_shape", m.Ref(d.PDS)),
				m.F("product_definitional", m.Bool(false)))
			w.validationProps(sub, sa, true)
		}
	}
}

func hasProps(l *xcaf.Label) bool {
	_, area := l.Area()
	_, volume := l.Volume()
	_, centroid := l.Centroid()
	return area || volume || centroid
}

// validationProps attaches the area, volume and centroid of a label to a
// target. measures disables area and volume.
func (w *Writer) validationProps(l *xcaf.Label, target m.ID, measures bool) {
	if measures {
		if v, ok := l.Area(); ok {
			item := w.g.New(m.MeasureRepresentationItem,
				m.F("name", m.Str("surface area measure")),
				m.F("value_component", m.Typed{Type: "AREA_MEASURE", V: m.Real(v)}),
				m.F("unit_component", m.Ref(w.areaUnit())))
			w.validationProp(target, "area measure", "surface area", item)
		}
		if v, ok := l.Volume(); ok {
			item := w.g.New(m.MeasureRepresentationItem,
				m.F("name", m.Str("volume measure")),
				m.F("value_component", m.Typed{Type: "VOLUME_MEASURE", V: m.Real(v)}),
				m.F("unit_component", m.Ref(w.volumeUnit())))
			w.validationProp(target, "volume measure", "volume", item)
		}
	}
	if p, ok := l.Centroid(); ok {
		item := w.g.New(m.CartesianPoint,
			m.F("name", m.Str("centre point")),
			m.F("coordinates", m.Reals(p.Coords())))
		w.validationProp(target, "centre point", "centroid", item)
	}
}

func (w *Writer) validationProp(target m.ID, description, name string, item m.ID) {
	pd := w.g.Create(m.PropertyDefinition,
		m.F("name", m.Str("geometric validation property")),
		m.F("description", m.Str(description)),
		m.F("definition", m.Ref(target)))
	rep := w.g.Create(m.Representation,
		m.F("name", m.Str(name)),
		m.F("items", m.RefsOf(item)),
		m.F("context_of_items", m.Ref(w.shapes.Contexts().Geometric)))
	w.g.Create(m.PropertyDefinitionRepresentation,
		m.F("definition", m.Ref(pd)),
		m.F("used_representation", m.Ref(rep)))
}

// densityUnit returns the g/cm^3 unit of material densities.
func (w *Writer) densityUnit() m.ID {
	if w.units.density != 0 {
		return w.units.density
	}
	gram := w.g.CreateComplex(m.MassUnit,
		m.Part{Kind: "MASS_UNIT"},
		m.Part{Kind: "NAMED_UNIT", Fields: []m.Field{m.F("dimensions", m.Derived{})}},
		m.Part{Kind: "SI_UNIT", Fields: []m.Field{m.F("prefix", m.Null{}), m.F("name", m.Enum("GRAM"))}})
	centimetre := w.g.CreateComplex(m.LengthUnit,
		m.Part{Kind: "LENGTH_UNIT"},
		m.Part{Kind: "NAMED_UNIT", Fields: []m.Field{m.F("dimensions", m.Derived{})}},
		m.Part{Kind: "SI_UNIT", Fields: []m.Field{m.F("prefix", m.Enum("CENTI")), m.F("name", m.Enum("METRE"))}})
	mass := w.g.Create(m.DerivedUnitElement, m.F("unit", m.Ref(gram)), m.F("exponent", m.Real(1)))
	length := w.g.Create(m.DerivedUnitElement, m.F("unit", m.Ref(centimetre)), m.F("exponent", m.Real(-3)))
	w.units.density = w.g.CreateComplex(m.DensityUnit,
		m.Part{Kind: "DENSITY_UNIT"},
		m.Part{Kind: "DERIVED_UNIT", Fields: []m.Field{m.F("elements", m.RefsOf(mass, length))}})
	return w.units.density
}

// writeMaterials attaches the material of translated definitions to their
// product definitions. Material representations are shared by name.
func (w *Writer) writeMaterials(labels []*xcaf.Label) {
	for _, l := range labels {
		mat := l.Material()
		if mat == nil {
			continue
		}
		d, ok := w.definition(l)
		if !ok {
			w.sink.Miss(l.Entry(), "no product definition for material %q", mat.Name)
			continue
		}
		reps := w.material(mat)
		descriptions := []string{"material name", "density"}
		for i, rep := range reps {
			pd := w.g.Create(m.PropertyDefinition,
				m.F("name", m.Str("material property")),
				m.F("description", m.Str(descriptions[i])),
				m.F("definition", m.Ref(d.PD)))
			w.g.Create(m.PropertyDefinitionRepresentation,
				m.F("definition", m.Ref(pd)),
				m.F("used_representation", m.Ref(rep)))
		}
	}
}

// material returns the name representation of a material, followed by its
// density representation when it has one.
func (w *Writer) material(mat *xcaf.Material) []m.ID {
	if reps, ok := w.materials[mat.Name]; ok {
		return reps
	}
	ctx := w.shapes.Contexts().Geometric
	name := w.g.New(m.DescriptiveRepresentationItem,
		m.F("name", m.Str(mat.Name)),
		m.F("description", m.Str(mat.Description)))
	reps := []m.ID{w.g.Create(m.Representation,
		m.F("name", m.Str("material name")),
		m.F("items", m.RefsOf(name)),
		m.F("context_of_items", m.Ref(ctx)))}

	if mat.Density > 0 {
		densityName := mat.DensityName
		if densityName == "" {
			densityName = "density"
		}
		valueType := mat.DensityValueType
		if valueType == "" {
			valueType = "POSITIVE_RATIO_MEASURE"
		}
		item := w.g.New(m.MeasureRepresentationItem,
			m.F("name", m.Str(densityName)),
			m.F("value_component", m.Typed{Type: valueType, V: m.Real(mat.Density)}),
			m.F("unit_component", m.Ref(w.densityUnit())))
		reps = append(reps, w.g.Create(m.Representation,
			m.F("name", m.Str("density")),
			m.F("items", m.RefsOf(item)),
			m.F("context_of_items", m.Ref(ctx))))
	}
	w.materials[mat.Name] = reps
	w.logger.Debug("wrote material", "name", mat.Name, "representations", len(reps))
	return reps
}
