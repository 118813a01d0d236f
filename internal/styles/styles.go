// Package styles writes the colours and visibility of document labels as
// presentation records: colours, presentation style assignments, styled
// items, the presentation representation of each top-level shape and the
// invisibility records of hidden labels.
//
// A label's own style overrides the style inherited from its parent shape.
// Compounds only pass their style down; leaf representation items receive
// the styled items. Component occurrences are styled in the context of
// their occurrence, overriding the style of the shared definition.
package styles

import (
	"log/slog"
	"slices"

	"github.com/leapstack-labs/leapstep/internal/diag"
	"github.com/leapstack-labs/leapstep/internal/registry"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// Effective is a resolved style: the colours and visibility that apply to
// a shape once inheritance is taken into account.
type Effective struct {
	Surf, Curv *xcaf.Color
	Hidden     bool
}

// HasColor reports whether a colour applies.
func (e Effective) HasColor() bool { return e.Surf != nil || e.Curv != nil }

// Resolve applies the own style of a node on top of the style inherited
// from its ancestors. A generic colour sets both surface and curve colours;
// specific colours take precedence over it. A hidden ancestor hides the node.
func Resolve(own xcaf.Style, inherited Effective) Effective {
	eff := inherited
	if own.Gen != nil {
		eff.Surf, eff.Curv = own.Gen, own.Gen
	}
	if own.Surf != nil {
		eff.Surf = own.Surf
	}
	if own.Curv != nil {
		eff.Curv = own.Curv
	}
	eff.Hidden = inherited.Hidden || own.Hidden
	return eff
}

// Config holds resolver configuration.
type Config struct {
	Graph    *m.Graph
	Registry *registry.Registry
	Sink     *diag.Sink
	Logger   *slog.Logger
}

// Resolver writes styles into one graph. Colours and presentation
// representations are shared across all labels written by it.
type Resolver struct {
	g      *m.Graph
	reg    *registry.Registry
	sink   *diag.Sink
	logger *slog.Logger

	colors map[xcaf.Color]m.ID
	font   m.ID
	mdgpr  map[topo.Shape]m.ID
}

// New creates a resolver.
func New(cfg Config) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sink := cfg.Sink
	if sink == nil {
		sink = diag.New(logger)
	}
	return &Resolver{
		g:      cfg.Graph,
		reg:    cfg.Registry,
		sink:   sink,
		logger: logger,
		colors: make(map[xcaf.Color]m.ID),
		mdgpr:  make(map[topo.Shape]m.ID),
	}
}

// predefined colours are written by name.
var predefined = map[xcaf.Color]string{
	xcaf.Red:           "red",
	xcaf.Green:         "green",
	xcaf.Blue:          "blue",
	{R: 1, G: 1, B: 0}: "yellow",
	{R: 1, G: 0, B: 1}: "magenta",
	{R: 0, G: 1, B: 1}: "cyan",
	xcaf.Black:         "black",
	xcaf.White:         "white",
}

// EncodeColor returns the colour record for c, creating it on first use.
func (r *Resolver) EncodeColor(c xcaf.Color) m.ID {
	if id, ok := r.colors[c]; ok {
		return id
	}
	var id m.ID
	if name, ok := predefined[c]; ok {
		id = r.g.New(m.DraughtingPreDefinedColour, m.F("name", m.Str(name)))
	} else {
		id = r.g.New(m.ColourRGB,
			m.F("name", m.Str("")),
			m.F("red", m.Real(c.R)),
			m.F("green", m.Real(c.G)),
			m.F("blue", m.Real(c.B)))
	}
	r.colors[c] = id
	return id
}

// MakeColorPSA builds a presentation style assignment for a surface colour
// and a curve colour, either of which may be zero. Styles of component
// occurrences are assignments by context; their context is set by
// CreateNAUOSRD.
func (r *Resolver) MakeColorPSA(surf, curv m.ID, byContext bool) m.ID {
	var styles []m.ID
	if surf != 0 {
		fasc := r.g.New(m.FillAreaStyleColour, m.F("name", m.Str("")), m.F("fill_colour", m.Ref(surf)))
		fas := r.g.New(m.FillAreaStyle, m.F("name", m.Str("")), m.F("fill_styles", m.RefsOf(fasc)))
		ssfa := r.g.New(m.SurfaceStyleFillArea, m.F("fill_area", m.Ref(fas)))
		sss := r.g.New(m.SurfaceSideStyle, m.F("name", m.Str("")), m.F("styles", m.RefsOf(ssfa)))
		styles = append(styles, r.g.New(m.SurfaceStyleUsage,
			m.F("side", m.Enum("BOTH")),
			m.F("style", m.Ref(sss))))
	}
	if curv != 0 {
		if r.font == 0 {
			r.font = r.g.New(m.DraughtingPreDefinedCurveFont, m.F("name", m.Str("continuous")))
		}
		styles = append(styles, r.g.New(m.CurveStyle,
			m.F("name", m.Str("")),
			m.F("curve_font", m.Ref(r.font)),
			m.F("curve_width", m.Typed{Type: "POSITIVE_LENGTH_MEASURE", V: m.Real(0.1)}),
			m.F("curve_colour", m.Ref(curv))))
	}
	if byContext {
		return r.g.New(m.PresentationStyleByContext,
			m.F("styles", m.RefsOf(styles...)),
			m.F("style_context", m.Null{}))
	}
	return r.g.New(m.PresentationStyleAssignment, m.F("styles", m.RefsOf(styles...)))
}

// AddStyle creates the styled item assigning psa to item. A non-zero
// override makes it an over-riding styled item of that style.
func (r *Resolver) AddStyle(item, psa, override m.ID) m.ID {
	if override == 0 {
		return r.g.New(m.StyledItem,
			m.F("name", m.Str("color")),
			m.F("styles", m.RefsOf(psa)),
			m.F("item", m.Ref(item)))
	}
	return r.g.New(m.OverRidingStyledItem,
		m.F("name", m.Str("overriding color")),
		m.F("styles", m.RefsOf(psa)),
		m.F("item", m.Ref(item)),
		m.F("over_ridden_style", m.Ref(override)))
}

// FindContext returns the representation context of the shape
// representation a shape was translated into.
func (r *Resolver) FindContext(s topo.Shape) (m.ID, bool) {
	sdr, ok := r.reg.FindTyped(r.g, s, m.ShapeDefinitionRepresentation)
	if !ok {
		return 0, false
	}
	sr, ok := r.g.RefField(sdr, "used_representation")
	if !ok {
		return 0, false
	}
	return r.g.RefField(sr, "context_of_items")
}

// CreateMDGPR creates the presentation representation listing styles and
// records it as the presentation of a top-level shape.
func (r *Resolver) CreateMDGPR(context m.ID, top topo.Shape, styles ...m.ID) m.ID {
	if _, ok := r.mdgpr[top]; ok {
		r.logger.Debug("top-level shape already has a presentation", "shape", top)
	}
	id := r.g.Create(m.MechanicalDesignGeometricPresentationRepresentation,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(styles...)),
		m.F("context_of_items", m.Ref(context)))
	r.mdgpr[top] = id
	return id
}

// MDGPR returns the presentation representation of a top-level shape.
func (r *Resolver) MDGPR(top topo.Shape) (m.ID, bool) {
	id, ok := r.mdgpr[top]
	return id, ok
}

// appendStyles adds styles to the presentation of a top-level shape,
// creating it when the shape has none yet.
func (r *Resolver) appendStyles(context m.ID, top topo.Shape, styles []m.ID) error {
	id, ok := r.mdgpr[top]
	if !ok {
		r.CreateMDGPR(context, top, styles...)
		return nil
	}
	return r.g.AppendRefs(id, "items", styles...)
}

// CreateNAUOSRD creates the shape representation of an occurrence and sets
// it as the context of the by-context styles in psas. The representation is
// attached to pds, or to the occurrence's own definition shape when pds is zero.
func (r *Resolver) CreateNAUOSRD(context, cdsr, pds m.ID, psas ...m.ID) (m.ID, error) {
	var items []m.ID
	if rel, ok := r.g.RefField(cdsr, "representation_relation"); ok {
		if rep1, ok := r.g.RefField(rel, "rep_1"); ok {
			if v, ok := r.g.Field(rep1, "items"); ok {
				if refs, ok := v.(m.Refs); ok && len(refs) > 0 {
					items = append(items, refs[0])
				}
			}
		}
	}
	sr := r.g.Create(m.ShapeRepresentation,
		m.F("name", m.Str("")),
		m.F("items", m.RefsOf(items...)),
		m.F("context_of_items", m.Ref(context)))
	if pds == 0 {
		pds, _ = r.g.RefField(cdsr, "represented_product_relation")
	}
	for _, psa := range psas {
		if r.g.Kind(psa) != m.PresentationStyleByContext {
			continue
		}
		if err := r.g.SetField(psa, "style_context", m.Ref(sr)); err != nil {
			return 0, err
		}
	}
	return r.g.Create(m.ShapeDefinitionRepresentation,
		m.F("definition", m.Ref(pds)),
		m.F("used_representation", m.Ref(sr))), nil
}

// StyledItem returns the styled item of the shared definition of a
// top-level shape: an item of its presentation that styles one of the
// shape's own representation items with a context-free assignment.
func (r *Resolver) StyledItem(top topo.Shape) (m.ID, bool) {
	id, ok := r.mdgpr[top]
	if !ok {
		return 0, false
	}
	v, _ := r.g.Field(id, "items")
	items, _ := v.(m.Refs)
	own := r.reg.FindEntities(r.g, top)
	for _, si := range items {
		if !r.g.IsKind(si, m.StyledItem) {
			continue
		}
		if len(own) > 0 {
			item, _ := r.g.RefField(si, "item")
			if !slices.Contains(own, item) {
				continue
			}
		}
		for _, psa := range r.psas(si) {
			if !r.g.IsKind(psa, m.PresentationStyleByContext) {
				return si, true
			}
		}
	}
	return 0, false
}

func (r *Resolver) psas(si m.ID) []m.ID {
	v, _ := r.g.Field(si, "styles")
	refs, _ := v.(m.Refs)
	return refs
}

// defaultInstanceColor copies the styles of the definition's styled item
// into the assignment of an invisible occurrence that has no colour.
func (r *Resolver) defaultInstanceColor(override, psa m.ID) bool {
	if override == 0 {
		return false
	}
	for _, father := range r.psas(override) {
		if r.g.IsKind(father, m.PresentationStyleByContext) {
			return false
		}
		v, _ := r.g.Field(father, "styles")
		styles, _ := v.(m.Refs)
		if len(styles) == 0 {
			continue
		}
		if err := r.g.SetField(psa, "styles", m.RefsOf(styles...)); err != nil {
			r.logger.Warn("failed to copy instance colour", "error", err)
			return false
		}
		return true
	}
	return false
}

// Invisibility creates the record hiding items. Every item must already be
// a member of the graph.
func (r *Resolver) Invisibility(items ...m.ID) (m.ID, bool) {
	for _, it := range items {
		if !r.g.Contains(it) {
			r.sink.Miss(it.String(), "invisible item is not in the model")
			return 0, false
		}
	}
	if len(items) == 0 {
		return 0, false
	}
	return r.g.Create(m.Invisibility, m.F("invisible_items", m.RefsOf(items...))), true
}
