package shapewrite

import (
	"testing"

	"github.com/leapstack-labs/leapstep/internal/registry"
	m "github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T) (*Translator, *m.Graph, *registry.Registry) {
	t.Helper()
	g := m.NewGraph()
	reg := registry.New()
	return New(Config{Graph: g, Registry: reg, Schema: m.AP214}), g, reg
}

func TestTransfer_Box(t *testing.T) {
	tr, g, reg := newTranslator(t)
	box := topo.MakeBox(10, 20, 30)

	d, err := tr.Transfer(box)
	require.NoError(t, err)

	assert.Len(t, g.ByKind(m.ManifoldSolidBrep), 1)
	assert.Len(t, g.ByKind(m.ClosedShell), 1)
	assert.Len(t, g.ByKind(m.AdvancedFace), 6)
	assert.Len(t, g.ByKind(m.EdgeCurve), 12, "edges shared by faces are written once")
	assert.Len(t, g.ByKind(m.VertexPoint), 8)
	assert.Equal(t, m.AdvancedBrepShapeRepresentation, g.Kind(d.SR))

	sdr, ok := reg.FindTyped(g, box, m.ShapeDefinitionRepresentation)
	require.True(t, ok)
	assert.Equal(t, d.SDR, sdr)
	assert.Len(t, reg.FindEntities(g, box), 1, "the solid is the only item of the box")

	again, err := tr.Transfer(box)
	require.NoError(t, err)
	assert.Same(t, d, again)
	assert.Len(t, g.ByKind(m.ShapeDefinitionRepresentation), 1)
	require.NoError(t, g.Validate())
}

func TestTransfer_NullShape(t *testing.T) {
	tr, _, _ := newTranslator(t)
	_, err := tr.Transfer(topo.Shape{})
	assert.ErrorIs(t, err, ErrNullShape)
}

func TestTransfer_SharedComponent(t *testing.T) {
	tr, g, reg := newTranslator(t)
	leaf := topo.MakeBox(1, 1, 1)
	left := leaf.Moved(topo.Translation(-5, 0, 0))
	right := leaf.Moved(topo.Translation(5, 0, 0))
	asm := topo.MakeCompound(left, right)
	reg.RegisterAssembly(asm)

	d, err := tr.Transfer(asm)
	require.NoError(t, err)
	require.True(t, d.IsAssembly)
	require.Len(t, d.Occurrences, 2)

	assert.Len(t, g.ByKind(m.ManifoldSolidBrep), 1, "one leaf definition")
	assert.Len(t, g.ByKind(m.ShapeDefinitionRepresentation), 2)
	assert.Len(t, g.ByKind(m.NextAssemblyUsageOccurrence), 2)
	assert.Same(t, d.Occurrences[0].Child, d.Occurrences[1].Child)

	for _, occ := range d.Occurrences {
		relating, _ := g.RefField(occ.NAUO, "relating_product_definition")
		related, _ := g.RefField(occ.NAUO, "related_product_definition")
		assert.Equal(t, d.PD, relating)
		assert.Equal(t, occ.Child.PD, related)
	}

	cdsr, ok := reg.FindTyped(g, right, m.ContextDependentShapeRepresentation)
	require.True(t, ok)
	assert.Equal(t, d.Occurrences[1].CDSR, cdsr)

	items, _ := g.Field(d.SR, "items")
	assert.Len(t, items, 3, "origin plus one placement per component")
	require.NoError(t, g.Validate())
}

func TestTransfer_AsAssemblyPlaceholders(t *testing.T) {
	g := m.NewGraph()
	tr := New(Config{Graph: g, Schema: m.AP214, AsAssembly: true})
	part := topo.MakeCompound()
	asm := topo.MakeCompound(part.Moved(topo.Translation(0, 0, 1)))

	d, err := tr.Transfer(asm)
	require.NoError(t, err)
	require.Len(t, d.Occurrences, 1)
	assert.True(t, d.Occurrences[0].Child.IsAssembly)
	assert.Empty(t, g.ByKind(m.ManifoldSolidBrep))
	assert.Len(t, g.ByKind(m.Product), 2)
}

func TestTransfer_FaceWalksUpToProduct(t *testing.T) {
	tr, g, reg := newTranslator(t)
	box := topo.MakeBox(1, 1, 1)
	d, err := tr.Transfer(box)
	require.NoError(t, err)

	face := topo.Explore(box, topo.Face)[0]
	af, ok := reg.FindTyped(g, face, m.AdvancedFace)
	require.True(t, ok)

	path, ok := g.Walk(af,
		m.Up(m.ConnectedFaceSet),
		m.Up(m.RepresentationItem),
		m.Up(m.ShapeRepresentation),
		m.Up(m.ShapeDefinitionRepresentation),
		m.Via("definition", m.ProductDefinitionShape))
	require.True(t, ok)
	assert.Equal(t, d.PDS, path[len(path)-1])
}

func TestContexts(t *testing.T) {
	g := m.NewGraph()
	tr := New(Config{Graph: g, Schema: m.AP242, Unit: "cm"})
	c := tr.Contexts()
	assert.Same(t, c, tr.Contexts())

	u, ok := Unit(g, c.Geometric, m.LengthUnit)
	require.True(t, ok)
	assert.Equal(t, c.LengthUnit, u)
	prefix, _ := g.Field(u, "prefix")
	assert.Equal(t, m.Enum("CENTI"), prefix)

	_, ok = Unit(g, c.Geometric, m.MassUnit)
	assert.False(t, ok)

	app, _ := g.Field(c.Application, "application")
	assert.Equal(t, m.Str("managed model based 3d engineering"), app)
}

func TestPlaneAxis(t *testing.T) {
	square := []topo.Point{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	a := planeAxis(square)
	assert.Equal(t, topo.Point{Z: 1}, a.Dir)
	assert.Equal(t, topo.Point{X: 1}, a.XDir)

	assert.Equal(t, topo.DefaultAxis, planeAxis(square[:2]))
}

func TestOrient(t *testing.T) {
	a := topo.MakeVertex(topo.Point{})
	b := topo.MakeVertex(topo.Point{X: 1})
	c := topo.MakeVertex(topo.Point{Y: 1})
	// second edge is stored reversed
	edges := []topo.Shape{topo.MakeEdge(a, b), topo.MakeEdge(c, b), topo.MakeEdge(c, a)}
	assert.Equal(t, []bool{true, false, true}, orient(edges))
}
