package stepcaf

import (
	"fmt"

	"github.com/leapstack-labs/leapstep/internal/styles"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// writeSHUOs writes the styled higher usage chains of the components of
// translated assemblies.
func (w *Writer) writeSHUOs(labels []*xcaf.Label) {
	for _, l := range labels {
		if !l.IsAssembly() {
			continue
		}
		for _, comp := range l.Components() {
			for _, node := range comp.SHUOs() {
				if node.IsMain() {
					w.writeSHUO(node)
				}
			}
		}
	}
}

// chain follows the first next usage of each link down to the deepest
// occurrence.
func chain(main *xcaf.SHUO) []*xcaf.SHUO {
	links := []*xcaf.SHUO{main}
	for cur := main; len(cur.NextUsage()) > 0; {
		cur = cur.NextUsage()[0]
		links = append(links, cur)
	}
	return links
}

// writeSHUO writes one chain: a higher usage occurrence per level, each
// refining the previous one, and the style of the deepest occurrence.
func (w *Writer) writeSHUO(main *xcaf.SHUO) bool {
	links := chain(main)
	var style xcaf.Style
	for _, link := range links {
		if s := link.Style(); !s.IsEmpty() {
			style = s
			break
		}
	}
	subject := main.Component().Entry()
	if style.IsEmpty() || len(links) < 2 {
		w.logger.Debug("higher usage without override skipped", "component", subject)
		return false
	}

	nauos := make([]m.ID, len(links))
	for i, link := range links {
		id, ok := w.nauo(link.Component())
		if !ok {
			w.sink.Miss(link.Component().Entry(), "no occurrence for higher usage link")
			return false
		}
		nauos[i] = id
	}
	relating, ok := w.g.RefField(nauos[0], "relating_product_definition")
	if !ok {
		w.sink.Miss(subject, "no product definition above higher usage chain")
		return false
	}

	upper := nauos[0]
	for _, next := range nauos[1:] {
		related, ok := w.g.RefField(next, "related_product_definition")
		if !ok {
			w.sink.Miss(subject, "no product definition below higher usage chain")
			return false
		}
		w.shuos++
		upper = w.g.Create(m.SpecifiedHigherUsageOccurrence,
			m.F("id", m.Str(fmt.Sprintf("SHUO%d", w.shuos))),
			m.F("name", m.Str("")),
			m.F("description", m.Null{}),
			m.F("relating_product_definition", m.Ref(relating)),
			m.F("related_product_definition", m.Ref(related)),
			m.F("reference_designator", m.Null{}),
			m.F("upper_usage", m.Ref(upper)),
			m.F("next_usage", m.Ref(next)))
	}
	pds := w.g.Create(m.ProductDefinitionShape,
		m.F("name", m.Str("SHUO")),
		m.F("description", m.Str("higher usage occurrence")),
		m.F("definition", m.Ref(upper)))

	deepest := links[len(links)-1].Component()
	ref, ok := deepest.ReferredShape()
	if !ok {
		w.sink.Invalid(deepest.Entry(), "higher usage component refers to nothing")
		return false
	}
	return w.styles.WriteOccurrence(styles.Resolve(style, styles.Effective{}), pds, deepest.Shape(), ref.Shape())
}
