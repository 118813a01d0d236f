package stepcaf

import (
	"strings"

	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// passes decorates the labels of one call. Geometry-bound passes only see
// the labels translated into the main graph; extern leaves are decorated
// in their own files.
func (w *Writer) passes(doc *xcaf.Document, c *call) {
	if len(c.extern) > 0 {
		w.writeExternRefs(c)
	}
	local := make([]*xcaf.Label, 0, len(c.labels))
	for _, l := range c.labels {
		if c.local(l) {
			local = append(local, l)
		}
	}

	if w.modes.Color && c.mode == SingleShape {
		w.styles.WriteLabels(local)
	}
	if w.modes.Name {
		w.writeNames(c.labels)
	}
	if w.modes.DimTol && c.mode == SingleShape {
		run := w.gdt.NewRun()
		w.gdt.Write(run, doc, c.covers)
		w.gdt.Finish(run)
		if run.Written > 0 {
			w.logger.Debug("wrote annotations", "count", run.Written)
		}
	}
	if w.modes.Material {
		w.writeMaterials(local)
	}
	if w.modes.Props {
		w.writeProps(c, local)
	}
	if w.modes.Layer && c.mode == SingleShape {
		w.writeLayers(doc, c)
	}
	if w.modes.SHUO && c.mode == SingleShape {
		w.writeSHUOs(local)
	}
	if w.modes.SubShapeNames && c.mode == SingleShape {
		w.writeSubShapeNames(local)
	}
}

// stepName turns a label name into a product name: trimmed, inner spaces
// replaced by underscores, folded to ASCII.
func stepName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return m.ASCII(strings.ReplaceAll(s, " ", "_"))
}

// writeNames names the products of translated definitions and the
// occurrences of their components.
func (w *Writer) writeNames(labels []*xcaf.Label) {
	for _, l := range labels {
		d, ok := w.definition(l)
		if !ok {
			w.sink.Miss(l.Entry(), "no product for named label")
			continue
		}
		if name := stepName(l.Name()); name != "" {
			w.setString(d.Product, "id", name)
			w.setString(d.Product, "name", name)
			if l.IsComponent() && len(d.Occurrences) == 1 {
				w.setString(d.Occurrences[0].NAUO, "name", name)
			}
		}
		if !l.IsAssembly() {
			continue
		}
		for _, comp := range l.Components() {
			name := stepName(comp.Name())
			if name == "" {
				continue
			}
			nauo, ok := w.nauo(comp)
			if !ok {
				w.sink.Miss(comp.Entry(), "no occurrence for named component")
				continue
			}
			w.setString(nauo, "name", name)
		}
	}
}

func (w *Writer) setString(id m.ID, field, v string) {
	if err := w.g.SetField(id, field, m.Str(v)); err != nil {
		w.logger.Warn("failed to set name", "record", id, "field", field, "error", err)
	}
}

// writeSubShapeNames names the representation items of named sub-shapes.
func (w *Writer) writeSubShapeNames(labels []*xcaf.Label) {
	for _, l := range labels {
		for _, sub := range l.SubShapes() {
			name := stepName(sub.Name())
			if name == "" {
				continue
			}
			items := w.reg.FindEntities(w.g, sub.Shape())
			if len(items) == 0 {
				w.sink.Miss(sub.Entry(), "no representation item for named sub-shape")
				continue
			}
			for _, it := range items {
				w.setString(it, "name", name)
			}
		}
	}
}
