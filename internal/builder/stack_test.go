package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/material"
)

func TestBuildStack(t *testing.T) {
	blk := stadiumBlock(t)
	bottom, err := element.NewSegment(blk, 10)
	require.NoError(t, err)
	top, err := element.NewSegment(blk, 5)
	require.NoError(t, err)
	stack, err := element.NewStack("stack", []element.Segment{bottom, top}, 0)
	require.NoError(t, err)

	b := New(nil)
	core, err := b.Build(stack, Specs{TargetAxialThickness: 4})
	require.NoError(t, err)

	require.Len(t, core.AssemblyMap, 1)
	require.Len(t, core.AssemblyMap[0], 1)
	assembly := core.AssemblyMap[0][0]

	// 10 cm at a 4 cm target splits into two 5 cm slabs; 5 cm stays whole.
	require.Len(t, assembly.Lattices, 3)
	assert.InDelta(t, 5.0, assembly.Lattices[0].Height(), 1e-9)
	assert.InDelta(t, 15.0, assembly.Height(), 1e-9)
	assert.InDelta(t, 5.08, assembly.PitchX(), 1e-9)

	// Both segments hold the same block, so the underlying decomposition ran
	// once.
	assert.Equal(t, 1, b.cache.Len()-1, "one cached block build besides the stack itself")
}

func TestBuildStringer(t *testing.T) {
	blk := stadiumBlock(t)
	stringer, err := element.NewStringer("stringer", blk, 170.0)
	require.NoError(t, err)

	core, err := New(nil).Build(stringer, Specs{})
	require.NoError(t, err)

	assembly := core.AssemblyMap[0][0]
	require.Len(t, assembly.Lattices, 1)
	assert.InDelta(t, 170.0, assembly.Height(), 1e-9)
	assert.InDelta(t, 5.08, assembly.PitchX(), 1e-9)
}

func TestBuildControlRodChannel(t *testing.T) {
	inor := material.Material{Name: "INOR-8", Density: 8.7745, Temperature: 900, Category: "structure"}
	poison := material.Material{Name: "Poison", Density: 5.873, Temperature: 900, Category: "absorber"}

	thimble, err := element.NewThimble(2.0, 0.25, 100, inor, saltMaterial())
	require.NoError(t, err)
	rod, err := element.NewControlRod([]float64{0.5, 1.0}, []material.Material{poison, inor}, 0.5)
	require.NoError(t, err)
	channel, err := element.NewControlRodChannel("crc", thimble, rod, 150, saltMaterial())
	require.NoError(t, err)

	core, err := New(nil).Build(channel, Specs{})
	require.NoError(t, err)

	assembly := core.AssemblyMap[0][0]
	// Empty channel, empty thimble, and inserted rod sections.
	require.Len(t, assembly.Lattices, 3)
	assert.InDelta(t, 50.0, assembly.Lattices[0].Height(), 1e-9, "channel below the thimble tip")
	assert.InDelta(t, 150.0, assembly.Height(), 1e-9)
	assert.InDelta(t, 4.0, assembly.PitchX(), 1e-9, "pitch spans the thimble diameter")
}
