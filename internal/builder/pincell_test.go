package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/material"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

func testPinCell(t *testing.T) *element.PinCell {
	t.Helper()
	inor := material.Material{Name: "INOR-8", Density: 8.7745, Temperature: 900, Category: "structure"}
	p, err := element.NewCylindricalPinCell("pin", []float64{0.5, 0.6},
		[]material.Material{saltMaterial(), inor, graphiteMaterial()})
	require.NoError(t, err)
	return p
}

func TestBuildPinCell(t *testing.T) {
	core, err := New(nil).Build(testPinCell(t), Specs{Height: 2})
	require.NoError(t, err)

	module := singleModule(t, core)
	pin, ok := module.PinMap[0][0].(*mesh.RadialPin)
	require.True(t, ok)

	require.Len(t, pin.Zones, 2)
	assert.InDelta(t, 0.5, pin.Zones[0].Radius, 1e-12)
	assert.InDelta(t, 0.6, pin.Zones[1].Radius, 1e-12)
	assert.Equal(t, "Graphite", pin.Outer.Name)
	assert.InDelta(t, 1.2, pin.PitchX(), 1e-12, "box circumscribes the outer zone")
	assert.InDelta(t, 2.0, pin.Height(), 1e-12)
}

func TestBuildPinCellQuadrants(t *testing.T) {
	core, err := New(nil).Build(testPinCell(t), Specs{DivideIntoQuadrants: true})
	require.NoError(t, err)

	lattice := core.AssemblyMap[0][0].Lattices[0]
	require.Len(t, lattice.ModuleMap, 2)
	require.Len(t, lattice.ModuleMap[0], 2)
	assert.InDelta(t, 1.2, lattice.PitchX(), 1e-12)

	nw := lattice.ModuleMap[0][0].PinMap[0][0].(*mesh.RadialPin)
	assert.InDelta(t, -0.6, nw.Bounds.XMin, 1e-12)
	assert.InDelta(t, 0.0, nw.Bounds.XMax, 1e-12)
	assert.InDelta(t, 0.0, nw.Bounds.YMin, 1e-12)
	assert.InDelta(t, 0.6, nw.Bounds.YMax, 1e-12)
}

func TestBuildPinCellNonCylindrical(t *testing.T) {
	zone := element.Zone{Shape: testStadium(t), Material: saltMaterial()}
	p, err := element.NewPinCell("stadium_pin", []element.Zone{zone}, graphiteMaterial(), 0, 0)
	require.NoError(t, err)

	_, err = New(nil).Build(p, Specs{})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeUnsupportedCombination))
}

func TestBuildInfiniteMedium(t *testing.T) {
	medium := element.NewInfiniteMedium("medium", graphiteMaterial())

	core, err := New(nil).Build(medium, Specs{})
	require.NoError(t, err)
	module := singleModule(t, core)
	assert.InDelta(t, 1.0, module.PitchX(), 1e-12)

	pin, ok := module.PinMap[0][0].(*mesh.RectPin)
	require.True(t, ok)
	assert.Equal(t, "Graphite", pin.Cells[0][0].Name)

	divided, err := New(nil).Build(medium, Specs{DivideIntoQuadrants: true})
	require.NoError(t, err)
	lattice := divided.AssemblyMap[0][0].Lattices[0]
	require.Len(t, lattice.ModuleMap, 2)
	assert.InDelta(t, 1.0, lattice.PitchX(), 1e-12)
}
