package xcaf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapstep/pkg/topo"
)

func buildWheelAxle(t *testing.T) (*Document, *Label, *Label, []*Label) {
	t.Helper()
	d := New()
	wheel := d.AddShape("wheel", topo.MakeBox(10, 10, 2))
	axle := d.NewAssembly("axle")
	var comps []*Label
	for _, x := range []float64{-50, 50} {
		c, err := d.AddComponent(axle, wheel, topo.Translation(x, 0, 0))
		require.NoError(t, err)
		comps = append(comps, c)
	}
	return d, wheel, axle, comps
}

func TestDocument_Structure(t *testing.T) {
	d, wheel, axle, comps := buildWheelAxle(t)

	assert.Equal(t, []*Label{wheel, axle}, d.Shapes())
	assert.Equal(t, []*Label{axle}, d.FreeShapes())
	assert.True(t, wheel.IsTopLevel())
	assert.True(t, axle.IsAssembly())
	assert.False(t, axle.IsCompound())
	assert.Equal(t, comps, axle.Components())

	ref, ok := comps[1].ReferredShape()
	require.True(t, ok)
	assert.Same(t, wheel, ref)
	assert.True(t, comps[1].Shape().IsPartner(wheel.Shape()))
	assert.NotEqual(t, comps[0].Shape(), comps[1].Shape())
	assert.Equal(t, 2, axle.Shape().NbChildren())
	assert.Equal(t, "0:1:2:2", comps[1].Entry())
}

func TestDocument_FindShapeIgnoresLocation(t *testing.T) {
	d, wheel, _, comps := buildWheelAxle(t)

	found, ok := d.FindShape(comps[0].Shape())
	require.True(t, ok)
	assert.Same(t, wheel, found)

	_, ok = d.FindShape(topo.MakeBox(1, 1, 1))
	assert.False(t, ok)
}

func TestDocument_AddComponentErrors(t *testing.T) {
	d, wheel, axle, comps := buildWheelAxle(t)

	_, err := d.AddComponent(wheel, axle, topo.Location{})
	assert.Error(t, err)
	_, err = d.AddComponent(axle, comps[0], topo.Location{})
	assert.ErrorIs(t, err, ErrNotShape)
	_, err = d.AddComponent(axle, axle, topo.Location{})
	assert.Error(t, err)
}

func TestDocument_SubShapes(t *testing.T) {
	d, wheel, _, _ := buildWheelAxle(t)
	face := topo.Explore(wheel.Shape(), topo.Face)[0]

	sub, err := d.AddSubShape(wheel, face, "top")
	require.NoError(t, err)
	again, err := d.AddSubShape(wheel, face, "other")
	require.NoError(t, err)
	assert.Same(t, sub, again)
	assert.True(t, sub.IsSubShape())
	assert.Equal(t, []*Label{sub}, wheel.SubShapes())

	_, err = d.AddSubShape(wheel, topo.MakeBox(1, 1, 1), "")
	assert.Error(t, err)
}

func TestStyle_ColorPrecedence(t *testing.T) {
	var s Style
	_, ok := s.Color(ColorSurf)
	assert.False(t, ok)
	assert.True(t, s.IsEmpty())

	s.SetColor(ColorGen, Red)
	c, ok := s.Color(ColorGen)
	require.True(t, ok)
	assert.Equal(t, Red, c)
	assert.True(t, s.HasColor())
}

func TestLayer_AddIsIdempotent(t *testing.T) {
	d, wheel, _, _ := buildWheelAxle(t)
	ly := d.AddLayer("paint")
	ly.Add(wheel)
	ly.Add(wheel)

	assert.Same(t, ly, d.AddLayer("paint"))
	assert.Equal(t, []*Label{wheel}, ly.Labels())
	assert.Equal(t, []*Layer{ly}, wheel.Layers())
}

func TestSetSHUO(t *testing.T) {
	d, _, axle, wheels := buildWheelAxle(t)
	car := d.NewAssembly("car")
	front, err := d.AddComponent(car, axle, topo.Translation(0, 100, 0))
	require.NoError(t, err)

	main, err := d.SetSHUO(front, wheels[0])
	require.NoError(t, err)
	main.SetColor(ColorSurf, Blue)

	assert.True(t, main.IsMain())
	require.Len(t, main.NextUsage(), 1)
	next := main.NextUsage()[0]
	assert.Same(t, wheels[0], next.Component())
	assert.Equal(t, []*SHUO{main}, next.UpperUsage())
	assert.Equal(t, []*SHUO{main}, front.SHUOs())

	_, err = d.SetSHUO(wheels[0], front)
	assert.Error(t, err)
	_, err = d.SetSHUO(front)
	assert.Error(t, err)
}

func TestAnnotations(t *testing.T) {
	d, wheel, _, _ := buildWheelAxle(t)
	face := topo.Explore(wheel.Shape(), topo.Face)[0]
	sub, err := d.AddSubShape(wheel, face, "")
	require.NoError(t, err)

	datum, err := d.AddDatum(DatumObject{Name: "A", Position: 1}, sub)
	require.NoError(t, err)
	dim, err := d.AddDimension(DimensionObject{Type: DimSizeDiameter, Value: 10}, []*Label{sub}, nil)
	require.NoError(t, err)
	tol, err := d.AddGeomTolerance(GeomToleranceObject{Type: TolFlatness, Value: 0.1}, []*Label{sub}, datum)
	require.NoError(t, err)

	assert.Equal(t, []*Label{datum}, d.Datums())
	assert.Equal(t, []*Label{dim}, d.Dimensions())
	assert.Equal(t, []*Label{tol}, d.GeomTolerances())
	assert.Empty(t, d.DimTols())
	assert.Equal(t, "Datum 1", datum.Name())
	assert.Equal(t, []*Label{datum}, tol.RefDatums())

	_, err = d.AddGeomTolerance(GeomToleranceObject{}, []*Label{sub}, dim)
	assert.Error(t, err)
	_, err = d.AddDatum(DatumObject{Name: "B"})
	assert.Error(t, err)
}

func TestEnumParsing(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"size_diameter", DimSizeDiameter.String()},
		{" Location_Angular ", DimLocationAngular.String()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDimensionType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ParseToleranceType("wobble")
	assert.Error(t, err)
	assert.True(t, DimLocationOriented.IsLocation())
	assert.True(t, DimSizeThickness.IsSize())
	assert.True(t, DimSizeAngular.IsAngular())
}
