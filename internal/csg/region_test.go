package csg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/PrismCut/internal/material"
)

func TestZCylinderContainment(t *testing.T) {
	inside := ZCylinder{R: 1.0}.Inside()

	assert.True(t, inside.Contains(0, 0))
	assert.True(t, inside.Contains(1.0, 0), "boundary counts as inside")
	assert.False(t, inside.Contains(1.01, 0))

	outside := ZCylinder{R: 1.0}.Outside()
	assert.False(t, outside.Contains(0, 0))
	assert.True(t, outside.Contains(2, 0))
}

func TestRectPrismContainment(t *testing.T) {
	r := RectPrism{W: 2.0, H: 1.0}.Inside()

	assert.True(t, r.Contains(0.99, 0.49))
	assert.False(t, r.Contains(1.01, 0))
	assert.False(t, r.Contains(0, 0.51))

	offset := RectPrism{CX: 5, CY: 5, W: 2, H: 2}.Inside()
	assert.True(t, offset.Contains(5, 5))
	assert.False(t, offset.Contains(0, 0))
}

func TestBooleanOperators(t *testing.T) {
	left := ZCylinder{X0: -0.5, R: 1.0}.Inside()
	right := ZCylinder{X0: 0.5, R: 1.0}.Inside()

	both := Intersect(left, right)
	assert.True(t, both.Contains(0, 0))
	assert.False(t, both.Contains(-1.2, 0), "only in left")

	either := Union(left, right)
	assert.True(t, either.Contains(-1.2, 0))
	assert.True(t, either.Contains(1.2, 0))
	assert.False(t, either.Contains(0, 1.5))

	neither := Complement(either)
	assert.True(t, neither.Contains(0, 1.5))
	assert.False(t, neither.Contains(0, 0))
}

func TestTranslateRotate(t *testing.T) {
	circle := ZCylinder{R: 0.5}.Inside()

	moved := Translate(circle, 2, 0)
	assert.True(t, moved.Contains(2, 0))
	assert.False(t, moved.Contains(0, 0))

	// Rotating the translated circle 90 degrees CCW puts it on +Y.
	turned := RotateZ(moved, 90)
	assert.True(t, turned.Contains(0, 2))
	assert.False(t, turned.Contains(2, 0))

	// A stadium-like union along X rotated to vertical.
	stadium := Union(
		ZCylinder{X0: -1, R: 0.5}.Inside(),
		ZCylinder{X0: 1, R: 0.5}.Inside(),
		RectPrism{W: 2, H: 1}.Inside(),
	)
	vertical := RotateZ(stadium, 90)
	assert.True(t, vertical.Contains(0, 1.4))
	assert.True(t, vertical.Contains(0, -1.4))
	assert.False(t, vertical.Contains(1.4, 0))
}

func TestUniverseFindCell(t *testing.T) {
	salt := material.Material{Name: "Fuel Salt", Density: 2.3275, Temperature: 900}
	graphite := material.Material{Name: "Graphite", Density: 1.86, Temperature: 900}

	channel := ZCylinder{R: 0.5}.Inside()
	block := RectPrism{W: 4, H: 4}.Inside()

	u := Universe{
		Name: "test_block",
		Cells: []Cell{
			{Name: "channel", Material: salt, Region: channel},
			{Name: "prism", Material: graphite, Region: Intersect(block, Complement(channel))},
		},
	}

	assert.Equal(t, "Fuel Salt", u.MaterialAt(0, 0))
	assert.Equal(t, "Graphite", u.MaterialAt(1.5, 1.5))
	assert.Equal(t, "", u.MaterialAt(10, 10))

	cell := u.FindCell(0.2, 0.2)
	assert.NotNil(t, cell)
	assert.Equal(t, "channel", cell.Name)
}
