package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

func saltMaterial() material.Material {
	return material.Material{Name: "Fuel Salt", Density: 2.3275, Temperature: 900, Category: "fuel"}
}

func graphiteMaterial() material.Material {
	return material.Material{Name: "Graphite", Density: 1.86, Temperature: 900, Category: "moderator"}
}

func testStadium(t *testing.T) geom.Stadium {
	t.Helper()
	s, err := geom.NewStadium(0.508, 2.032)
	require.NoError(t, err)
	return s
}

func testCircle(t *testing.T, r float64) geom.Circle {
	t.Helper()
	c, err := geom.NewCircle(r)
	require.NoError(t, err)
	return c
}

func stadiumFuelChannel(t *testing.T) element.Channel {
	t.Helper()
	ch, err := element.NewFuelChannel("fuel_channel", testStadium(t), saltMaterial())
	require.NoError(t, err)
	return ch
}

func controlChannel(t *testing.T, r float64) element.Channel {
	t.Helper()
	ch, err := element.NewControlChannel("control_channel", testCircle(t, r), saltMaterial())
	require.NoError(t, err)
	return ch
}

// stadiumBlock is the classic block: pitch 5.08 cm with identical stadium
// fuel channels on all four faces.
func stadiumBlock(t *testing.T) *element.Block {
	t.Helper()
	fuel := stadiumFuelChannel(t)
	b, err := element.NewBlock("block", 5.08, graphiteMaterial(), nil, map[element.Face]element.Channel{
		element.North: fuel, element.South: fuel, element.East: fuel, element.West: fuel,
	})
	require.NoError(t, err)
	return b
}

// controlBlock has a single control channel and no fuel channels.
func controlBlock(t *testing.T) *element.Block {
	t.Helper()
	control := controlChannel(t, 3.01625)
	b, err := element.NewBlock("control_block", 5.08, graphiteMaterial(), nil, map[element.Face]element.Channel{
		element.North: control,
	})
	require.NoError(t, err)
	return b
}

// singleModule unwraps a core built from one module.
func singleModule(t *testing.T, core *mesh.Core) *mesh.Module {
	t.Helper()
	require.Len(t, core.AssemblyMap, 1)
	require.Len(t, core.AssemblyMap[0], 1)
	assembly := core.AssemblyMap[0][0]
	require.NotNil(t, assembly)
	require.Len(t, assembly.Lattices, 1)
	lattice := assembly.Lattices[0]
	require.Len(t, lattice.ModuleMap, 1)
	require.Len(t, lattice.ModuleMap[0], 1)
	return lattice.ModuleMap[0][0]
}
