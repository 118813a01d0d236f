package gdt

import (
	"strconv"

	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// writeDatums writes datum features, datum targets and the datums they
// establish. A datum shared by several features or targets is written once.
func (t *Translator) writeDatums(run *RunContext, labels []*xcaf.Label) {
	for _, l := range labels {
		obj, ok := l.Datum()
		if !ok {
			continue
		}
		key := targetKey{name: obj.Name}
		if obj.IsTarget {
			key.number = obj.TargetNumber
		}
		if _, dup := run.targets[key]; dup {
			t.logger.Debug("duplicate datum skipped", "datum", obj.Name, "target", key.number)
			continue
		}
		run.targets[key] = struct{}{}
		if t.writeDatum(run, l, obj) {
			run.Written++
		}
	}
}

// simpleDatum reports whether a datum is written as a plain datum feature.
// Area targets without a target shape fall back to one.
func simpleDatum(obj *xcaf.DatumObject) bool {
	return !obj.IsTarget || (obj.TargetType == xcaf.TargetArea && obj.TargetShape.IsNull())
}

func (t *Translator) writeDatum(run *RunContext, l *xcaf.Label, obj *xcaf.DatumObject) bool {
	first, _ := l.RefShapes()
	simple := simpleDatum(obj)

	var sa aspect
	var ok bool
	if simple && len(first) > 1 {
		sa, ok = t.shapeAspects(run, l, first, m.DatumFeature, "")
	} else {
		sa, ok = t.composite(run, l, first)
	}
	if !ok {
		return false
	}

	feature := sa.id
	targetID := ""
	switch {
	case simple:
		if len(first) == 1 {
			if err := t.g.Upgrade(sa.id, m.DatumFeature,
				m.F("name", m.Str("")),
				m.F("description", m.Str(""))); err != nil {
				t.sink.Invalid(l.Entry(), "datum feature: %v", err)
				return false
			}
		}
	case obj.TargetType == xcaf.TargetArea:
		targetID = strconv.Itoa(obj.TargetNumber)
		area, ok := t.shapeAspect(run, l, obj.TargetShape)
		if !ok {
			return false
		}
		if err := t.g.Upgrade(area.id, m.DatumTarget,
			m.F("name", m.Str("")),
			m.F("description", m.Str("area")),
			m.F("target_id", m.Str(targetID))); err != nil {
			t.sink.Invalid(l.Entry(), "area datum target: %v", err)
			return false
		}
		feature = t.relateTarget(area.id, sa.id)
	default:
		targetID = strconv.Itoa(obj.TargetNumber)
		feature = t.relateTarget(t.placedTarget(obj, sa, targetID), sa.id)
	}

	datum, found := run.datums[obj.Name]
	if !found {
		datum = t.g.Create(m.Datum,
			m.F("name", m.Str("")),
			m.F("description", m.Str("")),
			m.F("of_shape", m.Ref(sa.pds)),
			m.F("product_definitional", m.Bool(true)),
			m.F("identification", m.Str(obj.Name)))
		run.datums[obj.Name] = datum
	}
	t.g.Create(m.ShapeAspectRelationship,
		m.F("name", m.Str("")),
		m.F("description", m.Null{}),
		m.F("relating_shape_aspect", m.Ref(feature)),
		m.F("related_shape_aspect", m.Ref(datum)))

	name := "Datum Feature Symbol " + obj.Name + targetID
	pd := t.g.Create(m.PropertyDefinition,
		m.F("name", m.Str(name)),
		m.F("description", m.Null{}),
		m.F("definition", m.Ref(feature)))
	items, _ := t.g.Field(sa.gisu, "identified_item")
	sr := t.g.Create(m.ShapeRepresentation,
		m.F("name", m.Str(name)),
		m.F("items", items),
		m.F("context_of_items", refOrNull(sa.context)))
	t.g.Create(m.ShapeDefinitionRepresentation,
		m.F("definition", m.Ref(pd)),
		m.F("used_representation", m.Ref(sr)))

	t.presentation(run, obj.Presentation, feature)
	return true
}

// relateTarget relates a datum target to the feature it lies on and
// returns the target.
func (t *Translator) relateTarget(target, feature m.ID) m.ID {
	t.g.Create(m.FeatureForDatumTargetRelationship,
		m.F("name", m.Str("")),
		m.F("description", m.Null{}),
		m.F("relating_shape_aspect", m.Ref(target)),
		m.F("related_shape_aspect", m.Ref(feature)))
	return target
}

// placedTarget writes a point, line, rectangle or circle datum target with
// the parameters of its auxiliary geometry.
func (t *Translator) placedTarget(obj *xcaf.DatumObject, sa aspect, targetID string) m.ID {
	pdtf := t.g.Create(m.PlacedDatumTargetFeature,
		m.F("name", m.Str("")),
		m.F("description", m.Str(obj.TargetType.String())),
		m.F("of_shape", m.Ref(sa.pds)),
		m.F("product_definitional", m.Bool(true)),
		m.F("target_id", m.Str(targetID)))
	pd := t.g.Create(m.PropertyDefinition,
		m.F("name", m.Str("")),
		m.F("description", m.Null{}),
		m.F("definition", m.Ref(pdtf)))

	unit := t.unit(sa.context, false)
	param := func(name string, v float64) m.ID {
		return t.measureItem(name, v, unit, "POSITIVE_LENGTH_MEASURE", false, nil)
	}
	var items []m.ID
	switch obj.TargetType {
	case xcaf.TargetLine:
		items = append(items, param("target length", obj.TargetLength))
	case xcaf.TargetRectangle:
		items = append(items, param("target length", obj.TargetLength), param("target width", obj.TargetWidth))
	case xcaf.TargetCircle:
		items = append(items, param("target diameter", obj.TargetLength))
	}
	items = append(items, t.orientation(obj.TargetAxis))

	srwp := t.g.Create(m.ShapeRepresentationWithParameters,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(items...)),
		m.F("context_of_items", refOrNull(sa.context)))
	t.g.Create(m.ShapeDefinitionRepresentation,
		m.F("definition", m.Ref(pd)),
		m.F("used_representation", m.Ref(srwp)))
	return pdtf
}
