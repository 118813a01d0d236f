package stepcaf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/leapstep/internal/diag"
	"github.com/leapstack-labs/leapstep/internal/extern"
	"github.com/leapstack-labs/leapstep/internal/testutil"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, schema Schema) *Writer {
	t.Helper()
	return New(Config{
		Schema: schema,
		Logger: testutil.NewTestLogger(t),
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
}

func str(t *testing.T, g *m.Graph, id m.ID, field string) string {
	t.Helper()
	v, ok := g.Field(id, field)
	require.True(t, ok, "%s of %s", field, g.Kind(id))
	s, ok := v.(m.Str)
	require.True(t, ok, "%s of %s is %T", field, g.Kind(id), v)
	return string(s)
}

func exact(g *m.Graph, kind m.Kind) []m.ID {
	var out []m.ID
	for _, id := range g.ByKind(kind) {
		if g.Kind(id) == kind {
			out = append(out, id)
		}
	}
	return out
}

func countDiagnostics(w *Writer, kind diag.Kind) int {
	n := 0
	for _, d := range w.Diagnostics() {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func TestTransfer_ColouredLeaf(t *testing.T) {
	doc := xcaf.New()
	bolt := doc.AddShape("Bolt1", topo.MakeBox(2, 2, 10))
	bolt.SetColor(xcaf.ColorSurf, xcaf.Red)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	g := w.Graph()
	require.NoError(t, g.Validate())
	assert.Len(t, g.ByKind(m.ShapeRepresentation), 1)
	products := g.ByKind(m.Product)
	require.Len(t, products, 1)
	assert.Equal(t, "Bolt1", str(t, g, products[0], "name"))
	assert.Equal(t, "Bolt1", str(t, g, products[0], "id"))

	styled := g.ByKind(m.StyledItem)
	require.Len(t, styled, 1)
	colours := g.ByKind(m.DraughtingPreDefinedColour)
	require.Len(t, colours, 1)
	assert.Equal(t, "red", str(t, g, colours[0], "name"))

	assert.Empty(t, g.ByKind(m.Invisibility))
	assert.Empty(t, w.ExternFiles())
	assert.Empty(t, w.Diagnostics())
}

func TestTransfer_OneOfTwoInstancesColoured(t *testing.T) {
	doc := xcaf.New()
	leaf := doc.AddShape("Leaf", topo.MakeBox(1, 1, 1))
	root := doc.NewAssembly("Root")
	red, err := doc.AddComponent(root, leaf, topo.Translation(-5, 0, 0))
	require.NoError(t, err)
	_, err = doc.AddComponent(root, leaf, topo.Translation(5, 0, 0))
	require.NoError(t, err)
	red.SetColor(xcaf.ColorSurf, xcaf.Red)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	g := w.Graph()
	require.NoError(t, g.Validate())
	assert.Len(t, g.ByKind(m.ManifoldSolidBrep), 1)
	assert.Len(t, g.ByKind(m.NextAssemblyUsageOccurrence), 2)
	assert.Len(t, g.ByKind(m.StyledItem), 1)
}

func TestTransfer_SharedSubAssembly(t *testing.T) {
	doc := xcaf.New()
	leaf := doc.AddShape("Leaf", topo.MakeBox(1, 1, 1))
	sub := doc.NewAssembly("Sub")
	_, err := doc.AddComponent(sub, leaf, topo.Location{})
	require.NoError(t, err)
	a := doc.NewAssembly("A")
	b := doc.NewAssembly("B")
	for _, asm := range []*xcaf.Label{a, b} {
		_, err := doc.AddComponent(asm, sub, topo.Translation(0, 0, 3))
		require.NoError(t, err)
	}
	w := newTestWriter(t, AP214)

	require.NoError(t, w.TransferLabels([]*xcaf.Label{a, b}, SingleShape, ""))

	g := w.Graph()
	assert.Len(t, g.ByKind(m.ManifoldSolidBrep), 1)
	assert.Len(t, g.ByKind(m.ShapeDefinitionRepresentation), 4)
	subDef, ok := w.definition(sub)
	require.True(t, ok)
	var users int
	for _, nauo := range g.ByKind(m.NextAssemblyUsageOccurrence) {
		if related, _ := g.RefField(nauo, "related_product_definition"); related == subDef.PD {
			users++
		}
	}
	assert.Equal(t, 2, users)
}

func TestTransfer_Idempotent(t *testing.T) {
	doc := xcaf.New()
	doc.AddShape("Bolt", topo.MakeBox(1, 1, 1)).SetColor(xcaf.ColorSurf, xcaf.Blue)
	w := newTestWriter(t, AP214)
	require.NoError(t, w.Transfer(doc, SingleShape, ""))
	before := w.Graph().Len()

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	assert.Equal(t, before, w.Graph().Len())
	assert.Len(t, w.Graph().ByKind(m.StyledItem), 1)
}

func TestTransfer_Errors(t *testing.T) {
	w := newTestWriter(t, AP214)
	assert.ErrorIs(t, w.Transfer(nil, SingleShape, ""), ErrNoDocument)
	assert.ErrorIs(t, w.TransferLabels(nil, SingleShape, ""), ErrNoRoots)
	assert.ErrorIs(t, w.Write(context.Background(), filepath.Join(t.TempDir(), "empty.stp")), ErrNothingTransferred)

	doc := xcaf.New()
	empty := doc.AddShape("Empty", topo.Shape{})
	assert.ErrorIs(t, w.TransferLabels([]*xcaf.Label{empty}, SingleShape, ""), ErrNothingTransferred)
	assert.Equal(t, 1, countDiagnostics(w, diag.InvalidInput))
}

func TestTransfer_RejectsCycles(t *testing.T) {
	doc := xcaf.New()
	a := doc.NewAssembly("A")
	b := doc.NewAssembly("B")
	leaf := doc.AddShape("Leaf", topo.MakeBox(1, 1, 1))
	_, err := doc.AddComponent(a, b, topo.Location{})
	require.NoError(t, err)
	_, err = doc.AddComponent(b, a, topo.Location{})
	require.NoError(t, err)
	w := newTestWriter(t, AP214)

	err = w.TransferLabels([]*xcaf.Label{a, leaf}, SingleShape, "")

	require.NoError(t, err)
	assert.Equal(t, 1, countDiagnostics(w, diag.InvalidInput))
	assert.Len(t, w.Graph().ByKind(m.Product), 1, "only the leaf is translated")
}

func TestTransfer_ComponentRoot(t *testing.T) {
	doc := xcaf.New()
	leaf := doc.AddShape("Leaf", topo.MakeBox(1, 1, 1))
	root := doc.NewAssembly("Root")
	comp, err := doc.AddComponent(root, leaf, topo.Translation(7, 0, 0))
	require.NoError(t, err)
	comp.SetName("Leaf at seven")
	w := newTestWriter(t, AP214)

	require.NoError(t, w.TransferLabels([]*xcaf.Label{comp}, SingleShape, ""))

	g := w.Graph()
	require.NoError(t, g.Validate())
	nauos := g.ByKind(m.NextAssemblyUsageOccurrence)
	require.Len(t, nauos, 1, "a component root is wrapped in an assembly of one")
	assert.Equal(t, "Leaf_at_seven", str(t, g, nauos[0], "name"))
	assert.Len(t, g.ByKind(m.Product), 2)
	assert.True(t, w.reg.IsBound(comp))
	assert.True(t, w.reg.IsBound(leaf))
}

func TestStepName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Bolt1", "Bolt1"},
		{"  hex nut  ", "hex_nut"},
		{"Schraube Ø8", "Schraube_?8"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stepName(tt.in))
		})
	}
}

func TestTransfer_ComponentNames(t *testing.T) {
	doc := xcaf.New()
	leaf := doc.AddShape("Leaf", topo.MakeBox(1, 1, 1))
	root := doc.NewAssembly("Root")
	left, err := doc.AddComponent(root, leaf, topo.Translation(-1, 0, 0))
	require.NoError(t, err)
	left.SetName("left wheel")
	_, err = doc.AddComponent(root, leaf, topo.Translation(1, 0, 0))
	require.NoError(t, err)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	g := w.Graph()
	nauo, ok := w.nauo(left)
	require.True(t, ok)
	assert.Equal(t, "left_wheel", str(t, g, nauo, "name"))
	var names []string
	for _, p := range g.ByKind(m.Product) {
		names = append(names, str(t, g, p, "name"))
	}
	assert.ElementsMatch(t, []string{"Leaf", "Root"}, names)
}

func TestTransfer_NamesOff(t *testing.T) {
	doc := xcaf.New()
	doc.AddShape("Bolt1", topo.MakeBox(1, 1, 1))
	w := newTestWriter(t, AP214)
	w.SetNameMode(false)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	products := w.Graph().ByKind(m.Product)
	require.Len(t, products, 1)
	assert.Equal(t, "product 1", str(t, w.Graph(), products[0], "name"))
}

func TestTransfer_Layers(t *testing.T) {
	doc := xcaf.New()
	bolt := doc.AddShape("Bolt", topo.MakeBox(1, 1, 1))
	nut := doc.AddShape("Nut", topo.MakeBox(1, 1, 1))
	hidden := doc.AddLayer("hidden")
	hidden.Visible = false
	hidden.Add(bolt)
	shown := doc.AddLayer("shown")
	shown.Add(nut)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.TransferLabels([]*xcaf.Label{bolt}, SingleShape, ""))
	require.NoError(t, w.TransferLabels([]*xcaf.Label{nut}, SingleShape, ""))

	g := w.Graph()
	require.NoError(t, g.Validate())
	plas := g.ByKind(m.PresentationLayerAssignment)
	require.Len(t, plas, 2)
	assert.Equal(t, "hidden", str(t, g, plas[0], "name"))
	assert.Equal(t, "invisible", str(t, g, plas[0], "description"))
	assert.Equal(t, "visible", str(t, g, plas[1], "description"))

	invisible := g.ByKind(m.Invisibility)
	require.Len(t, invisible, 1)
	items, _ := g.Field(invisible[0], "invisible_items")
	assert.Equal(t, m.RefsOf(plas[0]), items)
}

func TestTransfer_Materials(t *testing.T) {
	doc := xcaf.New()
	steel := doc.AddMaterial(xcaf.Material{Name: "Steel", Description: "S235", Density: 7.85})
	for _, name := range []string{"Bolt", "Nut"} {
		doc.AddShape(name, topo.MakeBox(1, 1, 1)).SetMaterial(steel)
	}
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	g := w.Graph()
	require.NoError(t, g.Validate())
	var material, density int
	for _, rep := range exact(g, m.Representation) {
		switch str(t, g, rep, "name") {
		case "material name":
			material++
		case "density":
			density++
		}
	}
	assert.Equal(t, 1, material, "material representations are shared")
	assert.Equal(t, 1, density)

	var props int
	for _, pd := range exact(g, m.PropertyDefinition) {
		if str(t, g, pd, "name") == "material property" {
			props++
		}
	}
	assert.Equal(t, 4, props)
	assert.Len(t, g.ByKind(m.DensityUnit), 1)
}

func TestTransfer_ValidationProps(t *testing.T) {
	doc := xcaf.New()
	box := topo.MakeBox(1, 2, 3)
	bolt := doc.AddShape("Bolt", box)
	bolt.SetArea(22)
	bolt.SetVolume(6)
	bolt.SetCentroid(topo.Point{X: 0.5, Y: 1, Z: 1.5})
	face, err := doc.AddSubShape(bolt, topo.Explore(box, topo.Face)[0], "bottom")
	require.NoError(t, err)
	face.SetArea(2)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	g := w.Graph()
	require.NoError(t, g.Validate())
	var descriptions []string
	for _, pd := range exact(g, m.PropertyDefinition) {
		if str(t, g, pd, "name") == "geometric validation property" {
			descriptions = append(descriptions, str(t, g, pd, "description"))
		}
	}
	assert.ElementsMatch(t, []string{"area measure", "volume measure", "centre point", "area measure"}, descriptions)
	aspects := exact(g, m.ShapeAspect)
	require.Len(t, aspects, 1)
	assert.Equal(t, "bottom", str(t, g, aspects[0], "name"))
	assert.Len(t, g.ByKind(m.DerivedUnit), 2, "area and volume units")
}

func TestTransfer_SubShapeNames(t *testing.T) {
	doc := xcaf.New()
	box := topo.MakeBox(1, 1, 1)
	block := doc.AddShape("Block", box)
	faces := topo.Explore(box, topo.Face)
	_, err := doc.AddSubShape(block, faces[0], "top face")
	require.NoError(t, err)
	_, err = doc.AddSubShape(block, faces[1], "")
	require.NoError(t, err)

	w := newTestWriter(t, AP214)
	w.SetPropsMode(false)
	w.SetSubShapeNamesMode(true)
	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	g := w.Graph()
	var named []string
	for _, id := range g.ByKind(m.AdvancedFace) {
		if s := str(t, g, id, "name"); s != "" {
			named = append(named, s)
		}
	}
	assert.Equal(t, []string{"top_face"}, named)

	off := newTestWriter(t, AP214)
	require.NoError(t, off.Transfer(doc, SingleShape, ""))
	for _, id := range off.Graph().ByKind(m.AdvancedFace) {
		assert.Empty(t, str(t, off.Graph(), id, "name"))
	}
}

func TestTransfer_SHUO(t *testing.T) {
	doc := xcaf.New()
	leaf := doc.AddShape("Leaf", topo.MakeBox(1, 1, 1))
	sub := doc.NewAssembly("Sub")
	inSub, err := doc.AddComponent(sub, leaf, topo.Location{})
	require.NoError(t, err)
	root := doc.NewAssembly("Root")
	first, err := doc.AddComponent(root, sub, topo.Translation(-3, 0, 0))
	require.NoError(t, err)
	_, err = doc.AddComponent(root, sub, topo.Translation(3, 0, 0))
	require.NoError(t, err)
	main, err := doc.SetSHUO(first, inSub)
	require.NoError(t, err)
	main.SetColor(xcaf.ColorSurf, xcaf.Green)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	g := w.Graph()
	require.NoError(t, g.Validate())
	shuos := g.ByKind(m.SpecifiedHigherUsageOccurrence)
	require.Len(t, shuos, 1)
	upperNAUO, ok := w.nauo(first)
	require.True(t, ok)
	nextNAUO, ok := w.nauo(inSub)
	require.True(t, ok)
	upper, _ := g.RefField(shuos[0], "upper_usage")
	next, _ := g.RefField(shuos[0], "next_usage")
	assert.Equal(t, upperNAUO, upper)
	assert.Equal(t, nextNAUO, next)

	pds, ok := g.FirstSharing(shuos[0], m.ProductDefinitionShape)
	require.True(t, ok)
	assert.Equal(t, "SHUO", str(t, g, pds, "name"))
	assert.Len(t, g.ByKind(m.StyledItem), 1)
}

func TestTransfer_SHUOWithoutOverride(t *testing.T) {
	doc := xcaf.New()
	leaf := doc.AddShape("Leaf", topo.MakeBox(1, 1, 1))
	sub := doc.NewAssembly("Sub")
	inSub, err := doc.AddComponent(sub, leaf, topo.Location{})
	require.NoError(t, err)
	root := doc.NewAssembly("Root")
	first, err := doc.AddComponent(root, sub, topo.Location{})
	require.NoError(t, err)
	_, err = doc.SetSHUO(first, inSub)
	require.NoError(t, err)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, SingleShape, ""))

	assert.Empty(t, w.Graph().ByKind(m.SpecifiedHigherUsageOccurrence))
}

func TestTransfer_DimTol(t *testing.T) {
	doc := xcaf.New()
	box := topo.MakeBox(10, 10, 10)
	block := doc.AddShape("Block", box)
	face, err := doc.AddSubShape(block, topo.Explore(box, topo.Face)[0], "")
	require.NoError(t, err)
	_, err = doc.AddDatum(xcaf.DatumObject{Name: "A"}, face)
	require.NoError(t, err)
	other := doc.AddShape("Other", topo.MakeBox(1, 1, 1))

	t.Run("in scope", func(t *testing.T) {
		w := newTestWriter(t, AP242)
		require.NoError(t, w.TransferLabels([]*xcaf.Label{block}, SingleShape, ""))
		assert.Len(t, exact(w.Graph(), m.Datum), 1)
		require.NoError(t, w.Graph().Validate())
	})
	t.Run("out of scope", func(t *testing.T) {
		w := newTestWriter(t, AP242)
		require.NoError(t, w.TransferLabels([]*xcaf.Label{other}, SingleShape, ""))
		assert.Empty(t, exact(w.Graph(), m.Datum))
	})
	t.Run("disabled", func(t *testing.T) {
		w := newTestWriter(t, AP242)
		w.SetDimTolMode(false)
		require.NoError(t, w.TransferLabels([]*xcaf.Label{block}, SingleShape, ""))
		assert.Empty(t, exact(w.Graph(), m.Datum))
	})
}

// multiDoc builds Root -> {Part, Part, Sub -> {Part'}} where every leaf is
// named "Part".
func multiDoc(t *testing.T) (*xcaf.Document, *xcaf.Label) {
	t.Helper()
	doc := xcaf.New()
	a := doc.AddShape("Part", topo.MakeBox(1, 1, 1))
	b := doc.AddShape("Part", topo.MakeBox(2, 2, 2))
	c := doc.AddShape("Part", topo.MakeBox(3, 3, 3))
	a.SetColor(xcaf.ColorSurf, xcaf.Red)
	sub := doc.NewAssembly("Sub")
	_, err := doc.AddComponent(sub, c, topo.Location{})
	require.NoError(t, err)
	root := doc.NewAssembly("Root")
	for i, ref := range []*xcaf.Label{a, b, sub, a} {
		_, err := doc.AddComponent(root, ref, topo.Translation(float64(i), 0, 0))
		require.NoError(t, err)
	}
	return doc, root
}

func TestTransfer_MultiFile(t *testing.T) {
	doc, root := multiDoc(t)
	w := newTestWriter(t, AP214)

	require.NoError(t, w.Transfer(doc, MultiFile, "p_"))

	files := w.ExternFiles()
	require.Len(t, files, 3)
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
		assert.True(t, f.Transferred)
		assert.Len(t, f.Graph.ByKind(m.ManifoldSolidBrep), 1)
	}
	assert.Equal(t, []string{"p_Part.stp", "p_Part_1.stp", "p_Part_2.stp"}, names)
	assert.Len(t, files[0].Graph.ByKind(m.StyledItem), 1, "leaf styles go to the extern file")

	g := w.Graph()
	require.NoError(t, g.Validate())
	assert.Empty(t, g.ByKind(m.ManifoldSolidBrep))
	assert.Len(t, g.ByKind(m.DocumentFile), 3)
	assert.Len(t, g.ByKind(m.NextAssemblyUsageOccurrence), 5)
	assert.Equal(t, 2, countDiagnostics(w, diag.NamingConflict))

	leaf, ok := root.Components()[0].ReferredShape()
	require.True(t, ok)
	f, ok := w.ExternFile(leaf)
	require.True(t, ok)
	assert.Equal(t, "p_Part.stp", f.Name)
}

func TestWrite_MultiFile(t *testing.T) {
	doc, _ := multiDoc(t)
	w := newTestWriter(t, AP214)
	require.NoError(t, w.Transfer(doc, MultiFile, ""))
	dir := t.TempDir()
	path := filepath.Join(dir, "main.stp")

	require.NoError(t, w.Write(context.Background(), path))

	main, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(main)
	assert.True(t, strings.HasPrefix(text, "ISO-10303-21;"))
	assert.Contains(t, text, "FILE_NAME('main.stp','2026-01-02T03:04:05'")
	assert.Contains(t, text, "AUTOMOTIVE_DESIGN")
	assert.Contains(t, text, "DOCUMENT_FILE('Part.stp'")
	for _, f := range w.ExternFiles() {
		assert.Equal(t, extern.Written, f.Status)
		_, err := os.Stat(filepath.Join(dir, f.Name))
		assert.NoError(t, err, f.Name)
	}
}

func TestWrite_MultiFileLeafNamedLikeMainFile(t *testing.T) {
	doc := xcaf.New()
	leaf := doc.AddShape("main", topo.MakeBox(1, 1, 1))
	root := doc.NewAssembly("Root")
	_, err := doc.AddComponent(root, leaf, topo.Location{})
	require.NoError(t, err)
	w := newTestWriter(t, AP214)
	require.NoError(t, w.Transfer(doc, MultiFile, ""))
	dir := t.TempDir()
	path := filepath.Join(dir, "main.stp")

	require.NoError(t, w.Write(context.Background(), path))

	f, ok := w.ExternFile(leaf)
	require.True(t, ok)
	assert.Equal(t, "main_1.stp", f.Name)
	assert.Equal(t, extern.Written, f.Status)
	assert.Equal(t, 1, countDiagnostics(w, diag.NamingConflict))

	main, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(main), "DOCUMENT_FILE('main_1.stp'")
	assert.NotContains(t, string(main), "DOCUMENT_FILE('main.stp'")
	assert.NotContains(t, string(main), "MANIFOLD_SOLID_BREP")
	part, err := os.ReadFile(filepath.Join(dir, "main_1.stp"))
	require.NoError(t, err)
	assert.Contains(t, string(part), "MANIFOLD_SOLID_BREP")
}

func TestWrite_Failure(t *testing.T) {
	doc, _ := multiDoc(t)
	w := newTestWriter(t, AP214)
	require.NoError(t, w.Transfer(doc, MultiFile, ""))
	dir := t.TempDir()
	// a directory in the way of one extern file
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Part_1.stp"), 0o755))

	err := w.Write(context.Background(), filepath.Join(dir, "main.stp"))

	require.ErrorIs(t, err, extern.ErrWriteFailed)
	f, ok := findFile(w, "Part_1.stp")
	require.True(t, ok)
	assert.Equal(t, extern.Failed, f.Status)
	assert.Equal(t, 1, countDiagnostics(w, diag.IOFailure))
	_, statErr := os.Stat(filepath.Join(dir, "main.stp"))
	assert.NoError(t, statErr, "the main file is written anyway")
}

func findFile(w *Writer, name string) (*extern.File, bool) {
	for _, f := range w.ExternFiles() {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

func TestPerform(t *testing.T) {
	doc := xcaf.New()
	doc.AddShape("Bolt1", topo.MakeBox(1, 1, 1))
	w := New(Config{Schema: AP242, Logger: testutil.NewTestLogger(t)})
	path := filepath.Join(t.TempDir(), "out", "bolt.step")

	require.NoError(t, w.Perform(context.Background(), doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PRODUCT('Bolt1','Bolt1'")
	assert.Contains(t, string(data), AP242.Identifier())

	err = w.Perform(context.Background(), doc, path)
	assert.NoError(t, err, "a second perform rewrites the same graph")
}
