// Package stepcaf writes the product structure of a document as STEP
// exchange files, together with the names, colours, layers, validation
// properties, materials, higher usage occurrences and GD&T attached to its
// labels.
//
// A Writer accumulates one main graph across Transfer calls. Labels already
// transferred are skipped, so a call only decorates what it translated
// itself. In MultiFile mode every leaf shape goes into its own graph and
// the main graph holds an assembly of placeholders referring to those
// files. Write flushes the main file and every extern file.
//
// Missing links and malformed annotations never fail a transfer: the
// smallest affected unit is skipped and reported through Diagnostics.
package stepcaf

import (
	"errors"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapstep/internal/diag"
	"github.com/leapstack-labs/leapstep/internal/extern"
	"github.com/leapstack-labs/leapstep/internal/gdt"
	"github.com/leapstack-labs/leapstep/internal/registry"
	"github.com/leapstack-labs/leapstep/internal/shapewrite"
	"github.com/leapstack-labs/leapstep/internal/styles"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
)

// Schema selects the application protocol written.
type Schema = m.Schema

// Supported schemas.
const (
	AP214 = m.AP214
	AP203 = m.AP203
	AP242 = m.AP242
)

// ParseSchema parses a short schema name such as "ap242".
func ParseSchema(s string) (Schema, error) { return m.ParseSchema(s) }

// Mode selects how shapes are distributed over files.
type Mode int

const (
	// SingleShape writes everything into the main file.
	SingleShape Mode = iota
	// MultiFile writes every leaf shape into its own file.
	MultiFile
)

// String returns the string representation of the mode.
func (md Mode) String() string {
	switch md {
	case SingleShape:
		return "single-shape"
	case MultiFile:
		return "multi-file"
	default:
		return "unknown"
	}
}

// Sentinel errors.
var (
	ErrNoRoots            = errors.New("no root labels to transfer")
	ErrNoDocument         = errors.New("no document")
	ErrNothingTransferred = errors.New("nothing was transferred")
)

// Modes toggles the passes run after the structure of a call is translated.
type Modes struct {
	Color         bool
	Name          bool
	Layer         bool
	Props         bool
	SHUO          bool
	DimTol        bool
	Material      bool
	SubShapeNames bool
}

// DefaultModes enables every pass except sub-shape names.
func DefaultModes() Modes {
	return Modes{
		Color:    true,
		Name:     true,
		Layer:    true,
		Props:    true,
		SHUO:     true,
		DimTol:   true,
		Material: true,
	}
}

// Config holds writer configuration.
type Config struct {
	Schema Schema
	// Modes defaults to DefaultModes.
	Modes *Modes
	// Mode and Prefix are used by Perform.
	Mode   Mode
	Prefix string
	// Unit is the length unit: mm (default), cm, m or um.
	Unit      string
	Tolerance float64
	// Parallelism bounds the extern files written at once.
	Parallelism int
	// Extension of extern files, ".stp" by default.
	Extension    string
	Author       string
	Organization string
	// Now stamps file headers; time.Now when nil.
	Now    func() time.Time
	Logger *slog.Logger
}

// Writer translates documents into one main graph.
type Writer struct {
	cfg    Config
	modes  Modes
	logger *slog.Logger
	sink   *diag.Sink

	g      *m.Graph
	reg    *registry.Registry
	shapes *shapewrite.Translator
	styles *styles.Resolver
	gdt    *gdt.Translator
	ext    *extern.Manager

	layers    map[*xcaf.Layer]m.ID
	materials map[string][]m.ID
	units     derivedUnits
	shuos     int
}

// New creates a writer.
func New(cfg Config) *Writer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return newWriter(cfg, diag.New(logger))
}

func newWriter(cfg Config, sink *diag.Sink) *Writer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg.Logger = logger
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 4
	}
	modes := DefaultModes()
	if cfg.Modes != nil {
		modes = *cfg.Modes
	}

	g := m.NewGraph()
	reg := registry.New()
	shapes := shapewrite.New(shapewrite.Config{
		Graph:     g,
		Registry:  reg,
		Schema:    cfg.Schema,
		Unit:      cfg.Unit,
		Tolerance: cfg.Tolerance,
		Logger:    logger,
	})
	st := styles.New(styles.Config{Graph: g, Registry: reg, Sink: sink, Logger: logger})
	return &Writer{
		cfg:    cfg,
		modes:  modes,
		logger: logger,
		sink:   sink,
		g:      g,
		reg:    reg,
		shapes: shapes,
		styles: st,
		gdt: gdt.New(gdt.Config{
			Graph:    g,
			Registry: reg,
			Shapes:   shapes,
			Styles:   st,
			Schema:   cfg.Schema,
			Sink:     sink,
			Logger:   logger,
		}),
		ext:       extern.New(cfg.Extension, sink),
		layers:    make(map[*xcaf.Layer]m.ID),
		materials: make(map[string][]m.ID),
	}
}

// child creates the writer of one extern file. It shares the diagnostics
// of w.
func (w *Writer) child() *Writer {
	cfg := w.cfg
	modes := w.modes
	cfg.Modes = &modes
	return newWriter(cfg, w.sink)
}

// SetColorMode toggles the colour and visibility pass.
func (w *Writer) SetColorMode(on bool) { w.modes.Color = on }

// SetNameMode toggles the product and occurrence name pass.
func (w *Writer) SetNameMode(on bool) { w.modes.Name = on }

// SetLayerMode toggles the layer pass.
func (w *Writer) SetLayerMode(on bool) { w.modes.Layer = on }

// SetPropsMode toggles the validation property pass.
func (w *Writer) SetPropsMode(on bool) { w.modes.Props = on }

// SetSHUOMode toggles the higher usage occurrence pass.
func (w *Writer) SetSHUOMode(on bool) { w.modes.SHUO = on }

// SetDimTolMode toggles the GD&T pass.
func (w *Writer) SetDimTolMode(on bool) { w.modes.DimTol = on }

// SetMaterialMode toggles the material pass.
func (w *Writer) SetMaterialMode(on bool) { w.modes.Material = on }

// SetSubShapeNamesMode toggles naming representation items after sub-shape labels.
func (w *Writer) SetSubShapeNamesMode(on bool) { w.modes.SubShapeNames = on }

// Modes returns the current pass toggles.
func (w *Writer) Modes() Modes { return w.modes }

// Schema returns the schema written.
func (w *Writer) Schema() Schema { return w.cfg.Schema }

// Graph returns the main graph.
func (w *Writer) Graph() *m.Graph { return w.g }

// ExternFiles returns the extern files recorded by MultiFile transfers.
func (w *Writer) ExternFiles() []*extern.File { return w.ext.Files() }

// ExternFile returns the extern file written for a leaf label.
func (w *Writer) ExternFile(l *xcaf.Label) (*extern.File, bool) { return w.ext.ByLabel(l) }

// Diagnostics returns every finding reported so far, extern files included.
func (w *Writer) Diagnostics() []diag.Diagnostic { return w.sink.All() }
