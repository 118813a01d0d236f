package stepcaf

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// writeLayers assigns the representation items of layer members translated
// by this call to their layers. A layer written by an earlier call grows.
func (w *Writer) writeLayers(doc *xcaf.Document, c *call) {
	for _, ly := range doc.Layers() {
		var items []m.ID
		for _, l := range ly.Labels() {
			if l.IsAssembly() || l.IsReference() || !c.covers(l) {
				continue
			}
			s, ok := w.reg.Shape(l)
			if !ok {
				s = l.Shape()
			}
			found := w.reg.FindEntities(w.g, s)
			if len(found) == 0 {
				w.sink.Miss(l.Entry(), "no representation item for layer %q", ly.Name)
				continue
			}
			items = append(items, found...)
		}
		if len(items) == 0 {
			continue
		}

		if pla, ok := w.layers[ly]; ok {
			if err := w.g.AppendRefs(pla, "assigned_items", items...); err != nil {
				w.logger.Warn("failed to extend layer", "layer", ly.Name, "error", err)
			}
		} else {
			description := "visible"
			if !ly.Visible {
				description = "invisible"
			}
			w.layers[ly] = w.g.Create(m.PresentationLayerAssignment,
				m.F("name", m.Str(ly.Name)),
				m.F("description", m.Str(description)),
				m.F("assigned_items", m.RefsOf(items...)))
			if !ly.Visible {
				w.styles.Invisibility(w.layers[ly])
			}
		}
		w.logger.Debug("assigned layer", "layer", ly.Name, "items", len(items))
	}
}
