package hexmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

func TestParseOrientation(t *testing.T) {
	for input, want := range map[string]Orientation{
		"x": OrientationX, "X": OrientationX,
		"y": OrientationY, "Y": OrientationY,
		" y ": OrientationY,
	} {
		got, err := ParseOrientation(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseOrientation("z")
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))
}

func TestRingSizes(t *testing.T) {
	assert.Equal(t, []int{12, 6, 1}, RingSizes(3))
	assert.Equal(t, []int{18, 12, 6, 1}, RingSizes(4))
	assert.Equal(t, []int{1}, RingSizes(1))
}

func TestOffsetToRingPointyTop(t *testing.T) {
	layout := [][]int{
		{1},
		{12, 2},
		{11, 13, 3},
		{18, 14},
		{10, 19, 4},
		{17, 15},
		{9, 16, 5},
		{8, 6},
		{7},
	}

	rings, err := OffsetToRing(layout, OrientationY)
	require.NoError(t, err)

	require.Len(t, rings, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, rings[0],
		"outer ring runs clockwise from the top point")
	assert.Equal(t, []int{13, 14, 15, 16, 17, 18}, rings[1])
	assert.Equal(t, []int{19}, rings[2])

	for i, ring := range rings {
		assert.Len(t, ring, RingSizes(3)[i], "ring %d", i)
	}
}

func TestOffsetToRingFlatTop(t *testing.T) {
	layout := [][]int{
		{9, 10, 11},
		{8, 17, 18, 12},
		{7, 16, 19, 13, 1},
		{6, 15, 14, 2},
		{5, 4, 3},
	}

	rings, err := OffsetToRing(layout, OrientationX)
	require.NoError(t, err)

	require.Len(t, rings, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, rings[0],
		"outer ring runs clockwise from the east point")
	assert.Equal(t, []int{13, 14, 15, 16, 17, 18}, rings[1])
	assert.Equal(t, []int{19}, rings[2])
}

func TestOffsetToRingSingleCell(t *testing.T) {
	rings, err := OffsetToRing([][]string{{"center"}}, OrientationY)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"center"}}, rings)

	rings, err = OffsetToRing([][]string{{"center"}}, OrientationX)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"center"}}, rings)
}

func TestOffsetToRingRowCountValidation(t *testing.T) {
	_, err := OffsetToRing([][]int{{1}, {2, 3}}, OrientationY)
	require.Error(t, err, "a y-oriented layout needs 4*(rings-1)+1 rows")
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	_, err = OffsetToRing([][]int{{1}, {2, 3}}, OrientationX)
	require.Error(t, err, "an x-oriented layout needs 2*(rings-1)+1 rows")
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))
}
