package docload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bolted = `
materials:
  - {name: Steel, description: S235, density: 7.85}
layers:
  - {name: hidden, visible: false}
shapes:
  - name: Bolt
    box: [2, 2, 10]
    color: red
    material: Steel
    layers: [hidden, fasteners]
    area: 88
    centroid: [1, 1, 5]
    faces:
      - {index: 0, name: head, surface_color: "#00ff00"}
  - name: Plate
    boxes: [[10, 10, 1], [5, 5, 2]]
assemblies:
  - name: Root
    components:
      - {ref: Sub, name: upper, at: [0, 0, 5]}
      - {ref: Plate}
  - name: Sub
    components:
      - {ref: Bolt, name: left, at: [-3, 0, 0], color: [0, 0, 1]}
      - {ref: Bolt, name: right, axis: {origin: [3, 0, 0], dir: [0, 0, -1]}, hidden: true}
shuos:
  - {path: [Root/upper, Sub/right], color: yellow}
datums:
  - {name: A, on: [{shape: Bolt, face: 1}]}
tolerances:
  - {type: flatness, value: 0.05, on: [{shape: Bolt, face: 1}]}
  - {type: perpendicularity, value: 0.1, on: [{shape: Bolt, face: 2}], datums: [A]}
dimensions:
  - {type: size_diameter, value: 2, plus_minus: [-0.1, 0.1], on: [{shape: Bolt, face: 2}]}
dimtols:
  - {kind: 24, values: [0.2], name: ang, on: [{shape: Plate, face: 0}], datums: [A]}
`

func load(t *testing.T, src string) *xcaf.Document {
	t.Helper()
	doc, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func byName(t *testing.T, doc *xcaf.Document, name string) *xcaf.Label {
	t.Helper()
	for _, l := range doc.Shapes() {
		if l.Name() == name {
			return l
		}
	}
	t.Fatalf("no shape %q", name)
	return nil
}

func TestLoad_Structure(t *testing.T) {
	doc := load(t, bolted)

	require.Len(t, doc.Shapes(), 4)
	free := doc.FreeShapes()
	require.Len(t, free, 1)
	assert.Equal(t, "Root", free[0].Name())

	root := byName(t, doc, "Root")
	sub := byName(t, doc, "Sub")
	comps := root.Components()
	require.Len(t, comps, 2)
	assert.Equal(t, "upper", comps[0].Name())
	ref, ok := comps[0].ReferredShape()
	require.True(t, ok)
	assert.Same(t, sub, ref, "components may refer to assemblies listed later")
	assert.Equal(t, topo.Translation(0, 0, 5), comps[0].Location())

	right := sub.Components()[1]
	assert.False(t, right.IsVisible())
	assert.Equal(t, topo.Point{X: 3}, right.Location().Apply(topo.Point{}))
	c, ok := sub.Components()[0].Color(xcaf.ColorGen)
	require.True(t, ok)
	assert.Equal(t, xcaf.Blue, c)

	plate := byName(t, doc, "Plate")
	assert.Equal(t, topo.Compound, plate.Shape().Type())
}

func TestLoad_Attributes(t *testing.T) {
	doc := load(t, bolted)
	bolt := byName(t, doc, "Bolt")

	c, ok := bolt.Color(xcaf.ColorGen)
	require.True(t, ok)
	assert.Equal(t, xcaf.Red, c)
	require.NotNil(t, bolt.Material())
	assert.Equal(t, "Steel", bolt.Material().Name)
	assert.InDelta(t, 7.85, bolt.Material().Density, 1e-9)
	area, ok := bolt.Area()
	require.True(t, ok)
	assert.InDelta(t, 88, area, 1e-9)
	_, ok = bolt.Volume()
	assert.False(t, ok)
	centroid, ok := bolt.Centroid()
	require.True(t, ok)
	assert.Equal(t, topo.Point{X: 1, Y: 1, Z: 5}, centroid)

	hidden, ok := doc.Layer("hidden")
	require.True(t, ok)
	assert.False(t, hidden.Visible)
	fasteners, ok := doc.Layer("fasteners")
	require.True(t, ok, "layers named by shapes are created")
	assert.True(t, fasteners.Visible)
	assert.Equal(t, []*xcaf.Label{bolt}, fasteners.Labels())

	subs := bolt.SubShapes()
	require.NotEmpty(t, subs)
	assert.Equal(t, "head", subs[0].Name())
	green, ok := subs[0].Color(xcaf.ColorSurf)
	require.True(t, ok)
	assert.Equal(t, xcaf.Green, green)
}

func TestLoad_SHUO(t *testing.T) {
	doc := load(t, bolted)
	upper := byName(t, doc, "Root").Components()[0]

	shuos := upper.SHUOs()
	require.Len(t, shuos, 1)
	main := shuos[0]
	assert.True(t, main.IsMain())
	c, ok := main.Style().Color(xcaf.ColorGen)
	require.True(t, ok)
	assert.Equal(t, xcaf.Color{R: 1, G: 1}, c)
	require.Len(t, main.NextUsage(), 1)
	assert.Equal(t, "right", main.NextUsage()[0].Component().Name())
}

func TestLoad_GDT(t *testing.T) {
	doc := load(t, bolted)

	require.Len(t, doc.Datums(), 1)
	datum, ok := doc.Datums()[0].Datum()
	require.True(t, ok)
	assert.Equal(t, "A", datum.Name)

	tols := doc.GeomTolerances()
	require.Len(t, tols, 2)
	perp, ok := tols[1].GeomTolerance()
	require.True(t, ok)
	assert.Equal(t, xcaf.TolPerpendicularity, perp.Type)
	assert.Len(t, tols[1].RefDatums(), 1)

	dims := doc.Dimensions()
	require.Len(t, dims, 1)
	dim, ok := dims[0].Dimension()
	require.True(t, ok)
	assert.Equal(t, xcaf.DimSizeDiameter, dim.Type)
	require.NotNil(t, dim.PlusMinus)
	assert.InDelta(t, -0.1, dim.PlusMinus.Lower, 1e-9)

	require.Len(t, doc.DimTols(), 1)
	dt, ok := doc.DimTols()[0].DimTol()
	require.True(t, ok)
	assert.Equal(t, 24, dt.Kind)

	// faces shared by annotations map to one sub-shape label
	bolt := byName(t, doc, "Bolt")
	assert.Len(t, bolt.SubShapes(), 3)
}

func TestLoad_Datums(t *testing.T) {
	doc := load(t, `
shapes:
  - {name: Block, box: [4, 4, 4]}
datums:
  - name: A
    description: primary
    identification: "1"
    modifiers: [basic, contacting_feature]
    on: [{shape: Block, face: 0}]
  - {name: B, on: [{shape: Block, face: 1}, {shape: Block, face: 2}]}
tolerances:
  - {type: parallelism, value: 0.02, on: [{shape: Block, face: 3}], datums: [A, B]}
`)

	datums := doc.Datums()
	require.Len(t, datums, 2)
	a, ok := datums[0].Datum()
	require.True(t, ok)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "primary", a.Description)
	assert.Equal(t, "1", a.Identification)
	assert.Equal(t, []xcaf.DatumModifier{xcaf.DatumModBasic, xcaf.DatumModContactingFeature}, a.Modifiers)
	first, _ := datums[0].RefShapes()
	assert.Len(t, first, 1)
	first, _ = datums[1].RefShapes()
	assert.Len(t, first, 2)

	tols := doc.GeomTolerances()
	require.Len(t, tols, 1)
	assert.Equal(t, []*xcaf.Label{datums[0], datums[1]}, tols[0].RefDatums())

	_, err := Load(strings.NewReader(`
shapes:
  - {name: Block, box: [1, 1, 1]}
datums:
  - {name: A, on: [{shape: Block, face: 0}]}
  - {name: A, on: [{shape: Block, face: 1}]}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate datum "A"`)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", "shapes:\n  - {name: A, box: [1, 1, 1], colour: red}\n", "colour"},
		{"duplicate shape", "shapes:\n  - {name: A, box: [1, 1, 1]}\n  - {name: A, box: [1, 1, 1]}\n", "duplicate shape name"},
		{"bad box", "shapes:\n  - {name: A, box: [1, 1]}\n", "box needs 3 dimensions"},
		{"negative box", "shapes:\n  - {name: A, box: [1, -1, 1]}\n", "must be positive"},
		{"unknown ref", "assemblies:\n  - {name: R, components: [{ref: Nope}]}\n", "unknown shape"},
		{"self reference", "assemblies:\n  - {name: R, components: [{ref: R}]}\n", "cannot contain itself"},
		{"unknown material", "shapes:\n  - {name: A, box: [1, 1, 1], material: Gold}\n", "unknown material"},
		{"bad colour", "shapes:\n  - {name: A, box: [1, 1, 1], color: mauve}\n", "unknown colour"},
		{"colour range", "shapes:\n  - {name: A, box: [1, 1, 1], color: [2, 0, 0]}\n", "outside [0, 1]"},
		{"face range", "shapes:\n  - {name: A, box: [1, 1, 1], faces: [{index: 6}]}\n", "out of range"},
		{"tolerance type", "shapes:\n  - {name: A, box: [1, 1, 1]}\ntolerances:\n  - {type: wobble, on: [{shape: A, face: 0}]}\n", "wobble"},
		{"unknown datum", "shapes:\n  - {name: A, box: [1, 1, 1]}\ntolerances:\n  - {type: flatness, on: [{shape: A, face: 0}], datums: [Z]}\n", "unknown datum"},
		{"at and axis", "shapes:\n  - {name: A, box: [1, 1, 1]}\nassemblies:\n  - {name: R, components: [{ref: A, at: [0, 0, 0], axis: {}}]}\n", "exclusive"},
		{"shuo path", "shapes:\n  - {name: A, box: [1, 1, 1]}\nassemblies:\n  - {name: R, components: [{ref: A}]}\nshuos:\n  - {path: [R/0, R/0], color: red}\n", "not part of"},
		{"shuo occurrence", "shuos:\n  - {path: [R/0, S/1]}\n", "unknown assembly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	doc := load(t, "")
	assert.Empty(t, doc.Shapes())
}

func TestLoad_CycleIsKept(t *testing.T) {
	doc := load(t, `
assemblies:
  - {name: A, components: [{ref: B}]}
  - {name: B, components: [{ref: A}]}
`)
	// cycles are rejected by the writer, not the loader
	assert.Len(t, doc.Shapes(), 2)
	assert.Empty(t, doc.FreeShapes())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(bolted), 0o644))
	doc, err := LoadFile(good)
	require.NoError(t, err)
	assert.Len(t, doc.Shapes(), 4)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("shapes:\n  - {name: A, box: [1]}\n"), 0o644))
	_, err = LoadFile(bad)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bad, pe.File)
	assert.True(t, strings.HasPrefix(err.Error(), bad+": "))

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want xcaf.Color
	}{
		{"red", xcaf.Red},
		{" Blue ", xcaf.Blue},
		{"#ff0000", xcaf.Red},
		{"#000000", xcaf.Black},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := parseColor("#12345")
	assert.Error(t, err)
	_, err = parseColor("#gggggg")
	assert.Error(t, err)
}
