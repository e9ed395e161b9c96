package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/hexmap"
)

func testLattice(t *testing.T, blk *element.Block) *element.RectLattice {
	t.Helper()
	l, err := element.NewRectLattice("lattice", blk.Pitch(), saltMaterial(), [][]element.Element{
		{blk, blk},
		{blk, nil},
	})
	require.NoError(t, err)
	return l
}

func TestBuildRectLattice(t *testing.T) {
	b := New(nil)
	blk := stadiumBlock(t)

	core, err := b.Build(testLattice(t, blk), Specs{})
	require.NoError(t, err)

	require.Len(t, core.AssemblyMap, 2)
	require.Len(t, core.AssemblyMap[0], 2)
	assert.Nil(t, core.AssemblyMap[1][1], "empty lattice cells stay empty")

	// Repeated entries share the one built assembly.
	assert.Same(t, core.AssemblyMap[0][0], core.AssemblyMap[0][1])
	assert.Same(t, core.AssemblyMap[0][0], core.AssemblyMap[1][0])
}

func TestBuildRectLatticeParallelMatchesSerial(t *testing.T) {
	blockA := stadiumBlock(t)
	blockB := controlBlock(t)
	l, err := element.NewRectLattice("lattice", 5.08, saltMaterial(), [][]element.Element{
		{blockA, blockB},
		{blockB, blockA},
	})
	require.NoError(t, err)

	serial, err := New(nil).Build(l, Specs{})
	require.NoError(t, err)
	parallel, err := New(nil).Build(l, Specs{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, serial.Key(), parallel.Key(), "worker count does not change the built mesh")
}

func TestBuildRectLatticePitchConflict(t *testing.T) {
	blk := stadiumBlock(t)
	l, err := element.NewRectLattice("lattice", 6.0, saltMaterial(), [][]element.Element{{blk}})
	require.NoError(t, err)

	_, err = New(nil).Build(l, Specs{})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeGeometricConstraint))
	assert.Contains(t, err.Error(), "x-pitch")
}

func TestBuildLatticeMemoization(t *testing.T) {
	b := New(nil)
	blk := stadiumBlock(t)

	// Priming with the bare block makes the lattice build hit the cache for
	// every occurrence.
	_, err := b.Build(blk, Specs{})
	require.NoError(t, err)
	require.Equal(t, 0, b.CacheStats().Hits)

	_, err = b.Build(testLattice(t, blk), Specs{})
	require.NoError(t, err)
	stats := b.CacheStats()
	assert.Equal(t, 1, stats.Hits, "three occurrences of the block cost one cached decomposition")
	assert.Equal(t, 2, stats.Misses, "one miss for the block, one for the lattice")

	// The whole lattice is memoized too.
	core1, err := b.Build(testLattice(t, blk), Specs{})
	require.NoError(t, err)
	core2, err := b.Build(testLattice(t, blk), Specs{})
	require.NoError(t, err)
	assert.Same(t, core1, core2)
}

func TestBuildHexLatticeUnsupported(t *testing.T) {
	blk := stadiumBlock(t)
	rings := [][]element.Element{
		{blk, blk, blk, blk, blk, blk},
		{blk},
	}
	l, err := element.NewHexLattice("hex", 5.08, saltMaterial(), hexmap.OrientationY, rings)
	require.NoError(t, err)

	_, err = New(nil).Build(l, Specs{})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeUnsupportedCombination))
}
