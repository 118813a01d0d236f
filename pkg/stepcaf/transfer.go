package stepcaf

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapstep/internal/dag"
	"github.com/leapstack-labs/leapstep/internal/extern"
	"github.com/leapstack-labs/leapstep/internal/shapewrite"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// call is the set of labels translated by one transfer. Passes only visit
// these.
type call struct {
	mode   Mode
	labels []*xcaf.Label
	set    map[*xcaf.Label]bool
	extern map[*xcaf.Label]*extern.File
}

func newCall(mode Mode) *call {
	return &call{
		mode:   mode,
		set:    make(map[*xcaf.Label]bool),
		extern: make(map[*xcaf.Label]*extern.File),
	}
}

func (c *call) add(l *xcaf.Label) {
	if c.set[l] {
		return
	}
	c.set[l] = true
	c.labels = append(c.labels, l)
}

// local reports whether l was translated into the main graph by this call.
func (c *call) local(l *xcaf.Label) bool {
	return c.set[l] && c.extern[l] == nil
}

// covers reports whether l or one of its ancestors was translated into the
// main graph by this call.
func (c *call) covers(l *xcaf.Label) bool {
	for x := l; x != nil; x = x.Father() {
		if c.set[x] {
			return c.extern[x] == nil
		}
	}
	return false
}

// Transfer translates the free shapes of doc.
func (w *Writer) Transfer(doc *xcaf.Document, mode Mode, prefix string) error {
	if doc == nil {
		return ErrNoDocument
	}
	return w.TransferLabels(doc.FreeShapes(), mode, prefix)
}

// TransferLabels translates labels and runs the enabled passes over what
// was translated. Labels already transferred by this writer are skipped.
// In MultiFile mode, extern file names are prefixed with prefix.
func (w *Writer) TransferLabels(labels []*xcaf.Label, mode Mode, prefix string) error {
	if len(labels) == 0 {
		return ErrNoRoots
	}
	doc := labels[0].Document()
	if doc == nil {
		return ErrNoDocument
	}
	cyclic := cyclicRoots(doc)

	c := newCall(mode)
	handled := 0
	for _, l := range labels {
		switch {
		case w.reg.IsBound(l):
			w.logger.Debug("label already transferred", "label", l.Entry())
			handled++
			continue
		case l.Shape().IsNull():
			w.sink.Invalid(l.Entry(), "label has no shape")
			continue
		case cyclic(l):
			w.sink.Invalid(l.Entry(), "assembly structure refers to itself")
			continue
		}

		var err error
		if mode == MultiFile {
			err = w.transferMulti(c, l, prefix)
		} else {
			err = w.transferSingle(c, l)
		}
		if err != nil {
			w.sink.Invalid(l.Entry(), "failed to translate label: %v", err)
			continue
		}
		handled++
	}
	if handled == 0 {
		return ErrNothingTransferred
	}

	w.passes(doc, c)
	w.logger.Info("transferred labels",
		"roots", len(labels),
		"labels", len(c.labels),
		"extern_files", len(c.extern),
		"mode", mode.String())
	return nil
}

// cyclicRoots returns a predicate reporting roots whose structure reaches
// an assembly cycle.
func cyclicRoots(doc *xcaf.Document) func(*xcaf.Label) bool {
	g := dag.FromDocument(doc)
	cyclic := g.Cyclic()
	if len(cyclic) == 0 {
		return func(*xcaf.Label) bool { return false }
	}
	return func(l *xcaf.Label) bool {
		if ref, ok := l.ReferredShape(); ok {
			l = ref
		}
		if cyclic[l.Entry()] {
			return true
		}
		for _, id := range g.Upstream(l.Entry()) {
			if cyclic[id] {
				return true
			}
		}
		return false
	}
}

// transferSingle translates a root and the definitions it uses into the
// main graph. A component root is wrapped in an assembly of one, so its
// placement survives.
func (w *Writer) transferSingle(c *call, l *xcaf.Label) error {
	s := l.Shape()
	switch {
	case l.IsComponent():
		ref, ok := l.ReferredShape()
		if !ok {
			return fmt.Errorf("component %s refers to nothing", l)
		}
		w.bindDefinition(c, ref)
		s = topo.MakeCompound(s)
		w.reg.RegisterAssembly(s)
	case l.IsAssembly():
		w.bindComponents(c, l)
		w.reg.RegisterAssembly(s)
	}
	w.reg.BindLabel(l, s)
	c.add(l)
	if _, err := w.shapes.Transfer(s); err != nil {
		return fmt.Errorf("failed to translate shape: %w", err)
	}
	return nil
}

// bindDefinition binds a definition reached through a component, and the
// definitions it uses in turn.
func (w *Writer) bindDefinition(c *call, l *xcaf.Label) {
	if w.reg.IsBound(l) {
		return
	}
	if l.IsAssembly() {
		w.bindComponents(c, l)
		w.reg.RegisterAssembly(l.Shape())
	}
	w.reg.BindLabel(l, l.Shape())
	c.add(l)
}

func (w *Writer) bindComponents(c *call, asm *xcaf.Label) {
	for _, comp := range asm.Components() {
		if ref, ok := comp.ReferredShape(); ok {
			w.bindDefinition(c, ref)
		}
	}
}

// transferMulti translates the structure of a root as assemblies of
// placeholders. Every leaf goes into an extern file.
func (w *Writer) transferMulti(c *call, l *xcaf.Label, prefix string) error {
	def := l
	if ref, ok := l.ReferredShape(); ok {
		def = ref
	}
	s, err := w.placeholder(c, def, prefix)
	if err != nil {
		return err
	}
	if l.IsComponent() {
		s = topo.MakeCompound(s.Moved(l.Location()))
		w.reg.BindLabel(l, s)
		c.add(l)
	}

	w.shapes.SetAsAssembly(true)
	defer w.shapes.SetAsAssembly(false)
	if _, err := w.shapes.Transfer(s); err != nil {
		return fmt.Errorf("failed to translate placeholder structure: %w", err)
	}
	return nil
}

// placeholder returns the placeholder shape of a definition: an empty
// compound for a leaf written to an extern file, a compound of placed
// placeholders for an assembly.
func (w *Writer) placeholder(c *call, l *xcaf.Label, prefix string) (topo.Shape, error) {
	if s, ok := w.reg.Shape(l); ok {
		return s, nil
	}
	s := topo.MakeCompound()
	if !l.IsAssembly() {
		c.extern[l] = w.externFile(l, prefix)
		w.reg.BindLabel(l, s)
		c.add(l)
		return s, nil
	}
	for _, comp := range l.Components() {
		ref, ok := comp.ReferredShape()
		if !ok {
			continue
		}
		sub, err := w.placeholder(c, ref, prefix)
		if err != nil {
			return topo.Shape{}, err
		}
		if err := topo.Add(s, sub.Moved(comp.Location())); err != nil {
			return topo.Shape{}, fmt.Errorf("failed to place %s: %w", comp, err)
		}
	}
	w.reg.BindLabel(l, s)
	c.add(l)
	return s, nil
}

// externFile translates a leaf into a graph of its own and records it.
func (w *Writer) externFile(l *xcaf.Label, prefix string) *extern.File {
	name := w.ext.AllocateName(fileBase(l), prefix)
	sub := w.child()
	err := sub.TransferLabels([]*xcaf.Label{l}, SingleShape, "")
	if err != nil {
		w.sink.Invalid(l.Entry(), "failed to translate extern file %s: %v", name, err)
	}
	w.logger.Debug("translated extern file", "label", l.Entry(), "file", name, "records", sub.g.Len())
	return w.ext.Record(l, name, sub.g, err == nil)
}

func fileBase(l *xcaf.Label) string {
	if name := strings.TrimSpace(l.Name()); name != "" {
		return name
	}
	return "part"
}

// definition returns the records of the shape bound to a label.
func (w *Writer) definition(l *xcaf.Label) (*shapewrite.Definition, bool) {
	s, ok := w.reg.Shape(l)
	if !ok {
		return nil, false
	}
	return w.shapes.Definition(s)
}

// located returns the shape bound to a component occurrence in the main
// graph.
func (w *Writer) located(comp *xcaf.Label) (topo.Shape, bool) {
	ref, ok := comp.ReferredShape()
	if !ok {
		return topo.Shape{}, false
	}
	s, ok := w.reg.Shape(ref)
	if !ok {
		return topo.Shape{}, false
	}
	return s.Moved(comp.Location()), true
}

// nauo returns the occurrence record of a component.
func (w *Writer) nauo(comp *xcaf.Label) (m.ID, bool) {
	if id, ok := w.reg.Lookup(comp, comp.Location()); ok {
		return id, true
	}
	s, ok := w.located(comp)
	if !ok {
		return 0, false
	}
	id, ok := w.reg.FindTyped(w.g, s, m.NextAssemblyUsageOccurrence)
	if !ok {
		return 0, false
	}
	id, _ = w.reg.Register(comp, comp.Location(), id)
	return id, true
}
