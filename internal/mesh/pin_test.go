package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	salt     = Material{ID: 1, Name: "salt", Density: 2.3275, Temperature: 900}
	graphite = Material{ID: 2, Name: "graphite", Density: 1.86, Temperature: 900}
)

func TestBuildRectPin_NoSubdivision(t *testing.T) {
	pin, err := BuildRectPin([]float64{1.0}, []float64{2.0}, []float64{1.0},
		[]Material{graphite}, math.Inf(1), math.Inf(1))
	require.NoError(t, err)

	assert.Equal(t, []float64{1.0}, pin.XThicknesses)
	assert.Equal(t, []float64{2.0}, pin.YThicknesses)
	assert.InDelta(t, 1.0, pin.PitchX(), 1e-12)
	assert.InDelta(t, 2.0, pin.PitchY(), 1e-12)
	assert.InDelta(t, 1.0, pin.Height(), 1e-12)
	require.Len(t, pin.Cells, 1)
	assert.Equal(t, graphite, pin.Cells[0][0])
}

func TestBuildRectPin_SubdividesToTarget(t *testing.T) {
	pin, err := BuildRectPin([]float64{2.0}, []float64{1.0}, []float64{1.0},
		[]Material{salt}, 0.6, math.Inf(1))
	require.NoError(t, err)

	// ceil(2.0/0.6) = 4 equal cells of 0.5
	require.Len(t, pin.XThicknesses, 4)
	for _, w := range pin.XThicknesses {
		assert.InDelta(t, 0.5, w, 1e-12)
	}
	require.Len(t, pin.Cells, 1)
	require.Len(t, pin.Cells[0], 4)
	assert.InDelta(t, 2.0, pin.PitchX(), 1e-12)
}

func TestBuildRectPin_MaterialGridTopDown(t *testing.T) {
	a := Material{ID: 10, Name: "a"}
	b := Material{ID: 11, Name: "b"}
	c := Material{ID: 12, Name: "c"}
	d := Material{ID: 13, Name: "d"}

	// Two bands each axis, materials given top row first.
	pin, err := BuildRectPin([]float64{0.5, 1.0}, []float64{0.25, 0.75},
		[]float64{1.0}, []Material{a, b, c, d}, math.Inf(1), math.Inf(1))
	require.NoError(t, err)

	require.Len(t, pin.Cells, 2)
	assert.Equal(t, []Material{a, b}, pin.Cells[0])
	assert.Equal(t, []Material{c, d}, pin.Cells[1])
	// y thicknesses stay bottom-to-top, so the top row spans 0.75.
	assert.Equal(t, []float64{0.25, 0.75}, pin.YThicknesses)
}

func TestBuildRectPin_Validation(t *testing.T) {
	_, err := BuildRectPin([]float64{1.0}, []float64{1.0}, []float64{1.0},
		[]Material{salt, graphite}, math.Inf(1), math.Inf(1))
	assert.Error(t, err, "material count must match grid")

	_, err = BuildRectPin([]float64{-1.0}, []float64{1.0}, []float64{1.0},
		[]Material{salt}, math.Inf(1), math.Inf(1))
	assert.Error(t, err, "negative thickness must be rejected")

	_, err = BuildRectPin([]float64{1.0}, []float64{1.0}, []float64{1.0},
		[]Material{salt}, 0, math.Inf(1))
	assert.Error(t, err, "zero target must be rejected")
}

func TestBuildRadialPin_Rings(t *testing.T) {
	bounds := Bounds{XMin: -1.0, XMax: 1.0, YMin: -1.0, YMax: 1.0}
	pin, err := BuildRadialPin(bounds, []float64{0.5, 0.3}, []float64{1.0},
		[]Material{salt, graphite, graphite}, math.Inf(1), math.Inf(1))
	require.NoError(t, err)

	require.Len(t, pin.Zones, 2)
	assert.InDelta(t, 0.5, pin.Zones[0].Radius, 1e-12)
	assert.InDelta(t, 0.8, pin.Zones[1].Radius, 1e-12)
	assert.Equal(t, salt, pin.Zones[0].Material)
	assert.Equal(t, graphite, pin.Zones[1].Material)
	assert.Equal(t, graphite, pin.Outer)
	assert.Equal(t, 1, pin.Zones[0].AzimuthalDivisions)
	assert.InDelta(t, 2.0, pin.PitchX(), 1e-12)
	assert.InDelta(t, 2.0, pin.PitchY(), 1e-12)
}

func TestBuildRadialPin_RadialSubdivision(t *testing.T) {
	bounds := Bounds{XMin: 0, XMax: 1.0, YMin: 0, YMax: 1.0}
	pin, err := BuildRadialPin(bounds, []float64{0.9}, []float64{1.0},
		[]Material{salt, graphite}, 0.4, math.Inf(1))
	require.NoError(t, err)

	// ceil(0.9/0.4) = 3 rings of 0.3 each, all the coarse ring's material.
	require.Len(t, pin.Zones, 3)
	assert.InDelta(t, 0.3, pin.Zones[0].Radius, 1e-12)
	assert.InDelta(t, 0.6, pin.Zones[1].Radius, 1e-12)
	assert.InDelta(t, 0.9, pin.Zones[2].Radius, 1e-12)
	for _, zone := range pin.Zones {
		assert.Equal(t, salt, zone.Material)
	}
}

func TestBuildRadialPin_AzimuthalDivisions(t *testing.T) {
	bounds := Bounds{XMin: -1.0, XMax: 1.0, YMin: -1.0, YMax: 1.0}
	pin, err := BuildRadialPin(bounds, []float64{1.0}, []float64{1.0},
		[]Material{salt, graphite}, math.Inf(1), 0.5)
	require.NoError(t, err)

	// Arc length at midradius 0.5 is pi; ceil(pi/0.5) = 7.
	require.Len(t, pin.Zones, 1)
	assert.Equal(t, 7, pin.Zones[0].AzimuthalDivisions)
}

func TestBuildRadialPin_Validation(t *testing.T) {
	bounds := Bounds{XMin: 0, XMax: 1.0, YMin: 0, YMax: 1.0}

	_, err := BuildRadialPin(bounds, []float64{0.5}, []float64{1.0},
		[]Material{salt}, math.Inf(1), math.Inf(1))
	assert.Error(t, err, "needs one material per ring plus outer")

	_, err = BuildRadialPin(Bounds{XMin: 1, XMax: 0, YMin: 0, YMax: 1},
		[]float64{0.5}, []float64{1.0}, []Material{salt, graphite}, math.Inf(1), math.Inf(1))
	assert.Error(t, err, "inverted bounds must be rejected")
}

func TestPinKeysDistinguishGeometry(t *testing.T) {
	a, err := BuildRectPin([]float64{1.0}, []float64{1.0}, []float64{1.0},
		[]Material{salt}, math.Inf(1), math.Inf(1))
	require.NoError(t, err)
	b, err := BuildRectPin([]float64{1.0}, []float64{1.0}, []float64{1.0},
		[]Material{salt}, math.Inf(1), math.Inf(1))
	require.NoError(t, err)
	c, err := BuildRectPin([]float64{1.5}, []float64{1.0}, []float64{1.0},
		[]Material{salt}, math.Inf(1), math.Inf(1))
	require.NoError(t, err)

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
