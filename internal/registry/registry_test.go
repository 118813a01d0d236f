package registry

import (
	"testing"

	"github.com/leapstack-labs/leapstep/pkg/stepmodel"
	"github.com/leapstack-labs/leapstep/pkg/topo"
	"github.com/leapstack-labs/leapstep/pkg/xcaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(g *stepmodel.Graph, kind stepmodel.Kind) stepmodel.ID {
	return g.Create(kind, stepmodel.F("name", stepmodel.Str("")))
}

func TestRegistry_BindLabel(t *testing.T) {
	doc := xcaf.New()
	box := doc.AddShape("box", topo.MakeBox(1, 1, 1))
	r := New()

	assert.False(t, r.IsBound(box), "expected fresh label to be unbound")

	placeholder := topo.MakeCompound()
	r.BindLabel(box, placeholder)
	r.BindLabel(box, box.Shape())

	got, ok := r.Shape(box)
	require.True(t, ok)
	assert.Equal(t, placeholder, got, "first binding wins")
	assert.Equal(t, []*xcaf.Label{box}, r.Labels())
}

func TestRegistry_FindTyped(t *testing.T) {
	g := stepmodel.NewGraph()
	r := New()
	s := topo.MakeBox(1, 2, 3)

	sdr := g.Create(stepmodel.ShapeDefinitionRepresentation)
	sr := item(g, stepmodel.AdvancedBrepShapeRepresentation)
	msb := item(g, stepmodel.ManifoldSolidBrep)
	r.Bind(s, sdr)
	r.Bind(s, sr)
	r.Bind(s, msb)
	r.Bind(s, msb)

	assert.Equal(t, []stepmodel.ID{sdr, sr, msb}, r.Find(s))

	got, ok := r.FindTyped(g, s, stepmodel.ShapeRepresentation)
	require.True(t, ok, "subtypes match")
	assert.Equal(t, sr, got)

	_, ok = r.FindTyped(g, s, stepmodel.ContextDependentShapeRepresentation)
	assert.False(t, ok)
}

func TestRegistry_FindEntities(t *testing.T) {
	g := stepmodel.NewGraph()
	r := New()

	a := topo.MakeBox(1, 1, 1)
	b := topo.MakeBox(2, 2, 2)
	comp := topo.MakeCompound(a, b)
	ia := item(g, stepmodel.ManifoldSolidBrep)
	ib := item(g, stepmodel.ManifoldSolidBrep)
	r.Bind(a, g.Create(stepmodel.ShapeDefinitionRepresentation))
	r.Bind(a, ia)
	r.Bind(b, ib)

	tests := []struct {
		name  string
		shape topo.Shape
		want  []stepmodel.ID
	}{
		{"exact", a, []stepmodel.ID{ia}},
		{"identity placement fallback", b.Moved(topo.Translation(5, 0, 0)), []stepmodel.ID{ib}},
		{"compound children", comp, []stepmodel.ID{ia, ib}},
		{"unknown", topo.MakeBox(3, 3, 3), nil},
		{"null", topo.Shape{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.FindEntities(g, tt.shape))
		})
	}
}

func TestRegistry_Assemblies(t *testing.T) {
	r := New()
	asm := topo.MakeCompound()
	r.RegisterAssembly(asm)

	assert.True(t, r.IsAssembly(asm))
	assert.True(t, r.IsAssembly(asm.Moved(topo.Translation(1, 0, 0))), "placement does not matter")
	assert.False(t, r.IsAssembly(topo.MakeCompound()))
	assert.False(t, r.IsAssembly(topo.Shape{}))
}

func TestRegistry_Register(t *testing.T) {
	doc := xcaf.New()
	wheel := doc.AddShape("wheel", topo.MakeBox(1, 1, 1))
	r := New()
	left := topo.Translation(-1, 0, 0)
	right := topo.Translation(1, 0, 0)

	id, ok := r.Register(wheel, left, 10)
	assert.True(t, ok)
	assert.Equal(t, stepmodel.ID(10), id)

	id, ok = r.Register(wheel, left, 11)
	assert.False(t, ok, "existing binding is not overwritten")
	assert.Equal(t, stepmodel.ID(10), id)

	_, ok = r.Register(wheel, right, 12)
	assert.True(t, ok, "another placement is another instance")

	got, ok := r.Lookup(wheel, right)
	require.True(t, ok)
	assert.Equal(t, stepmodel.ID(12), got)

	_, ok = r.Lookup(wheel, topo.Location{})
	assert.False(t, ok)
}
