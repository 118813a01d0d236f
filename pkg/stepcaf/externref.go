package stepcaf

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
)

// writeExternRefs refers the placeholder of every leaf written to an extern
// file by this call to that file.
func (w *Writer) writeExternRefs(c *call) {
	for _, l := range c.labels {
		f, ok := c.extern[l]
		if !ok {
			continue
		}
		d, ok := w.definition(l)
		if !ok {
			w.sink.Miss(l.Entry(), "no placeholder product for extern file %s", f.Name)
			continue
		}
		w.externRef(f.Name, d.PD)
	}
}

func (w *Writer) externRef(name string, pd m.ID) {
	kind := w.g.Create(m.DocumentType, m.F("product_data_type", m.Str("")))
	file := w.g.Create(m.DocumentFile,
		m.F("id", m.Str(name)),
		m.F("name", m.Str("")),
		m.F("description", m.Null{}),
		m.F("kind", m.Ref(kind)),
		m.F("source", m.Str("")),
		m.F("representation_types", m.Derived{}))
	w.g.Create(m.DocumentRepresentationType,
		m.F("name", m.Str("digital")),
		m.F("represented_document", m.Ref(file)))
	adr := w.g.Create(m.AppliedDocumentReference,
		m.F("assigned_document", m.Ref(file)),
		m.F("source", m.Str("")),
		m.F("items", m.RefsOf(pd)))
	role := w.g.Create(m.ObjectRole,
		m.F("name", m.Str("mandatory")),
		m.F("description", m.Null{}))
	w.g.Create(m.RoleAssociation,
		m.F("role", m.Ref(role)),
		m.F("item_with_role", m.Ref(adr)))

	def := w.g.Create(m.PropertyDefinition,
		m.F("name", m.Str("external definition")),
		m.F("description", m.Str("")),
		m.F("definition", m.Ref(file)))
	format := w.g.New(m.DescriptiveRepresentationItem,
		m.F("name", m.Str("file format")),
		m.F("description", m.Str(w.cfg.Schema.FileFormat())))
	rep := w.g.Create(m.Representation,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(format)),
		m.F("context_of_items", m.Ref(w.shapes.Contexts().Geometric)))
	w.g.Create(m.PropertyDefinitionRepresentation,
		m.F("definition", m.Ref(def)),
		m.F("used_representation", m.Ref(rep)))
}
