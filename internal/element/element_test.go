package element

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
)

func saltMaterial() material.Material {
	return material.Material{Name: "Fuel Salt", Density: 2.3275, Temperature: 900, Category: "fuel"}
}

func graphiteMaterial() material.Material {
	return material.Material{Name: "Graphite", Density: 1.86, Temperature: 900, Category: "moderator"}
}

func inorMaterial() material.Material {
	return material.Material{Name: "INOR-8", Density: 8.7745, Temperature: 900, Category: "structure"}
}

func poisonMaterial() material.Material {
	return material.Material{Name: "Control Rod Poison", Density: 5.873, Temperature: 900, Category: "absorber"}
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

func testFuelChannel(t *testing.T) Channel {
	t.Helper()
	ch, err := NewFuelChannel("fuel_channel", testStadium(t), saltMaterial())
	require.NoError(t, err)
	return ch
}

func testControlChannel(t *testing.T, r float64) Channel {
	t.Helper()
	ch, err := NewControlChannel("control_channel", testCircle(t, r), saltMaterial())
	require.NoError(t, err)
	return ch
}

// testBlock is the classic stadium-channel block: pitch 5.08 cm with
// identical fuel channels on all four faces.
func testBlock(t *testing.T) *Block {
	t.Helper()
	fuel := testFuelChannel(t)
	b, err := NewBlock("block", 5.08, graphiteMaterial(), nil, map[Face]Channel{
		North: fuel, South: fuel, East: fuel, West: fuel,
	})
	require.NoError(t, err)
	return b
}
