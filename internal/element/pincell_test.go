package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
)

func TestNewPinCellValidation(t *testing.T) {
	salt := saltMaterial()
	graphite := graphiteMaterial()

	_, err := NewPinCell("empty", nil, graphite, 0, 0)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	_, err = NewPinCell("nil-shape", []Zone{{Material: salt}}, graphite, 0, 0)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	// Zones must stay strictly nested; touching boundaries intersect.
	_, err = NewPinCell("touching", []Zone{
		{Shape: testCircle(t, 1.0), Material: salt},
		{Shape: testCircle(t, 1.0), Material: graphite},
	}, graphite, 0, 0)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))
	assert.Contains(t, err.Error(), "intersect")

	// A rectangle's inner radius is its half width, so a circle of the same
	// nominal size pokes through its corners.
	rect, err := geom.NewSquare(2.0)
	require.NoError(t, err)
	_, err = NewPinCell("poking", []Zone{
		{Shape: testCircle(t, 1.0), Material: salt},
		{Shape: rect, Material: graphite},
	}, graphite, 0, 0)
	require.Error(t, err)
}

func TestNewCylindricalPinCell(t *testing.T) {
	salt := saltMaterial()
	inor := inorMaterial()
	graphite := graphiteMaterial()

	p, err := NewCylindricalPinCell("pin", []float64{0.5, 1.0},
		[]material.Material{salt, inor, graphite})
	require.NoError(t, err)
	assert.True(t, p.IsCylindrical())
	assert.Equal(t, graphite, p.OuterMaterial(), "last material surrounds the cylinders")
	require.Len(t, p.Zones(), 2)
	assert.Equal(t, salt, p.Zones()[0].Material)
	assert.Equal(t, 1.0, p.Zones()[1].Shape.OuterRadius())

	_, err = NewCylindricalPinCell("short", []float64{0.5}, []material.Material{salt})
	require.Error(t, err, "one more material than radii is required")
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	_, err = NewCylindricalPinCell("none", nil, []material.Material{salt})
	require.Error(t, err)

	_, err = NewCylindricalPinCell("descending", []float64{1.0, 0.5},
		[]material.Material{salt, inor, graphite})
	require.Error(t, err, "radii must ascend")
}

func TestPinCellIsCylindrical(t *testing.T) {
	rect, err := geom.NewSquare(2.0)
	require.NoError(t, err)
	p, err := NewPinCell("square", []Zone{{Shape: rect, Material: saltMaterial()}},
		graphiteMaterial(), 0, 0)
	require.NoError(t, err)
	assert.False(t, p.IsCylindrical())
}

func TestPinCellUniverse(t *testing.T) {
	p, err := NewCylindricalPinCell("pin", []float64{0.5, 1.0},
		[]material.Material{saltMaterial(), inorMaterial(), graphiteMaterial()})
	require.NoError(t, err)
	u := p.Universe()

	assert.Equal(t, "Fuel Salt", u.MaterialAt(0, 0))
	assert.Equal(t, "INOR-8", u.MaterialAt(0.7, 0), "annulus between the radii")
	assert.Equal(t, "Graphite", u.MaterialAt(1.5, 0), "beyond the outermost zone")
}

func TestPinCellUniverseOffsetAndRotation(t *testing.T) {
	rect, err := geom.NewRectangle(2.0, 1.0)
	require.NoError(t, err)

	p, err := NewPinCell("rotated", []Zone{
		{Shape: rect, Material: saltMaterial(), Rotation: 90},
	}, graphiteMaterial(), 1.0, 0)
	require.NoError(t, err)
	u := p.Universe()

	assert.Equal(t, "Fuel Salt", u.MaterialAt(1.0, 0.8), "rotation turns the long axis to y")
	assert.Equal(t, "Graphite", u.MaterialAt(1.8, 0), "unrotated long axis is now outside")
	assert.Equal(t, "Graphite", u.MaterialAt(0, 0.8), "zone follows the pin origin")
}

func TestPinCellKeyIgnoresName(t *testing.T) {
	materials := []material.Material{saltMaterial(), graphiteMaterial()}

	a, err := NewCylindricalPinCell("a", []float64{0.5}, materials)
	require.NoError(t, err)
	b, err := NewCylindricalPinCell("b", []float64{0.5}, materials)
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key())

	c, err := NewCylindricalPinCell("c", []float64{0.6}, materials)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), c.Key())
}
