package styles

import (
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// labelRun is the state of writing the styles of one label.
type labelRun struct {
	settings map[topo.Shape]xcaf.Style
	seen     map[topo.Shape]struct{}
	top      topo.Shape
	styles   []m.ID
	psas     []m.ID
}

// WriteLabels writes the styles of labels. Assemblies are not styled
// themselves; their components are.
func (r *Resolver) WriteLabels(labels []*xcaf.Label) {
	for _, l := range labels {
		r.WriteLabel(l)
	}
}

// WriteLabel writes the styles set on a label and its sub-shapes.
func (r *Resolver) WriteLabel(l *xcaf.Label) {
	if l.IsAssembly() {
		r.WriteLabels(l.Components())
		return
	}
	s := l.Shape()
	if s.IsNull() {
		return
	}
	isComponent := l.IsComponent()
	top := s
	if isComponent {
		ref, ok := l.ReferredShape()
		if !ok {
			return
		}
		top = ref.Shape()
	}

	settings, visible := collect(l)
	if len(settings) == 0 {
		return
	}
	context, ok := r.FindContext(top)
	if !ok {
		r.sink.Miss(l.Entry(), "no representation context for styled shape")
		return
	}

	run := &labelRun{settings: settings, seen: make(map[topo.Shape]struct{}), top: top}
	r.apply(run, s, 0, nil, isComponent)
	if len(run.styles) == 0 {
		return
	}

	if !isComponent {
		r.CreateMDGPR(context, top, run.styles...)
	} else {
		cdsr, ok := r.reg.FindTyped(r.g, s, m.ContextDependentShapeRepresentation)
		if !ok {
			r.sink.Miss(l.Entry(), "no occurrence representation for styled component")
			return
		}
		if _, err := r.CreateNAUOSRD(context, cdsr, 0, run.psas...); err != nil {
			r.logger.Warn("failed to create occurrence representation", "label", l.Entry(), "error", err)
			return
		}
		if err := r.appendStyles(context, top, run.styles); err != nil {
			r.logger.Warn("failed to add occurrence styles", "label", l.Entry(), "error", err)
			return
		}
	}
	if !visible {
		r.Invisibility(run.styles...)
	}
	r.logger.Debug("wrote styles", "label", l.Entry(), "styles", len(run.styles), "visible", visible)
}

// collect returns the styles set on a label and its sub-shapes, keyed by
// shape. Only the label itself carries visibility; a hidden label keeps
// its colourless sub-shapes too.
func collect(l *xcaf.Label) (map[topo.Shape]xcaf.Style, bool) {
	settings := make(map[topo.Shape]xcaf.Style)
	visible := l.IsVisible()
	for _, lab := range append([]*xcaf.Label{l}, l.SubShapes()...) {
		st := lab.Style()
		st.Hidden = lab == l && !visible
		if !st.HasColor() && visible {
			continue
		}
		settings[lab.Shape()] = st
	}
	return settings, visible
}

// apply styles s and its sub-shapes down to edges. A shape with its own
// style whose representation items are found takes a styled item per item
// and stops passing its style down; compounds other than component roots
// only pass it down.
func (r *Resolver) apply(run *labelRun, s topo.Shape, override m.ID, inherit *Effective, isComponent bool) {
	if _, ok := run.seen[s]; ok {
		return
	}
	run.seen[s] = struct{}{}

	var style Effective
	if inherit != nil {
		style = *inherit
	}
	if own, ok := run.settings[s]; ok {
		style = Resolve(own, style)
	}
	var surf, curv m.ID
	if style.Surf != nil {
		surf = r.EncodeColor(*style.Surf)
	}
	if style.Curv != nil {
		curv = r.EncodeColor(*style.Curv)
	}
	hasOwn := surf != 0 || curv != 0 || style.Hidden

	target := override
	if hasOwn && (s.Type() != topo.Compound || isComponent) {
		items := r.reg.FindEntities(r.g, s)
		if len(items) == 0 {
			r.sink.Miss(s.String(), "no representation item for styled shape")
		}
		if isComponent && len(items) > 0 {
			if si, ok := r.StyledItem(run.top); ok {
				override = si
			}
		}
		for _, item := range items {
			var psa m.ID
			if !style.Hidden || surf != 0 || curv != 0 {
				psa = r.MakeColorPSA(surf, curv, isComponent)
			} else {
				surf = r.EncodeColor(xcaf.White)
				psa = r.MakeColorPSA(surf, curv, isComponent)
				if isComponent {
					r.defaultInstanceColor(override, psa)
				}
			}
			target = r.AddStyle(item, psa, override)
			run.styles = append(run.styles, target)
			run.psas = append(run.psas, psa)
			hasOwn = false
		}
	}

	if s.Type() == topo.Edge || isComponent {
		return
	}
	var pass *Effective
	if hasOwn {
		pass = &style
	}
	for _, c := range s.Children() {
		r.apply(run, c, target, pass, false)
	}
}

// WriteOccurrence styles one occurrence designated by a higher usage
// chain. sh is the located shape of the deepest component and pds the
// definition shape of the chain. It reports whether a styled item was written.
func (r *Resolver) WriteOccurrence(style Effective, pds m.ID, sh, top topo.Shape) bool {
	var surf, curv m.ID
	if style.Surf != nil {
		surf = r.EncodeColor(*style.Surf)
	}
	if style.Curv != nil {
		curv = r.EncodeColor(*style.Curv)
	}
	defaulted := false
	if surf == 0 && curv == 0 && style.Hidden {
		surf = r.EncodeColor(xcaf.White)
		defaulted = true
	}
	psa := r.MakeColorPSA(surf, curv, true)

	cdsr, ok := r.reg.FindTyped(r.g, sh, m.ContextDependentShapeRepresentation)
	if !ok {
		r.sink.Miss(sh.String(), "no occurrence representation for higher usage style")
		return false
	}
	context, ok := r.FindContext(sh)
	if !ok {
		context, ok = r.FindContext(top)
	}
	if !ok {
		r.sink.Miss(sh.String(), "no representation context for higher usage style")
		return false
	}
	items := r.reg.FindEntities(r.g, sh)
	if len(items) == 0 {
		r.sink.Miss(sh.String(), "no representation item for higher usage style")
		return false
	}

	override, _ := r.StyledItem(top)
	si := r.AddStyle(items[0], psa, override)
	if _, err := r.CreateNAUOSRD(context, cdsr, pds, psa); err != nil {
		r.logger.Warn("failed to create occurrence representation", "shape", sh, "error", err)
		return false
	}
	if err := r.appendStyles(context, top, []m.ID{si}); err != nil {
		r.logger.Warn("failed to add higher usage style", "shape", sh, "error", err)
		return false
	}
	if style.Hidden {
		if defaulted {
			r.defaultInstanceColor(override, psa)
		}
		r.Invisibility(si)
	}
	return true
}
