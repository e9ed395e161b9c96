package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

func TestNewSegmentValidation(t *testing.T) {
	medium := NewInfiniteMedium("medium", graphiteMaterial())

	_, err := NewSegment(nil, 10)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	_, err = NewSegment(medium, 0)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	segment, err := NewSegment(medium, 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, segment.Length())
	assert.Equal(t, medium.Key(), segment.Element().Key())
}

func TestNewStack(t *testing.T) {
	lower, err := NewSegment(NewInfiniteMedium("lower", graphiteMaterial()), 10)
	require.NoError(t, err)
	upper, err := NewSegment(NewInfiniteMedium("upper", saltMaterial()), 5)
	require.NoError(t, err)

	s, err := NewStack("column", []Segment{lower, upper}, -2.5)
	require.NoError(t, err)
	assert.Equal(t, "column", s.Name())
	assert.Equal(t, -2.5, s.BottomPos())
	assert.Equal(t, 15.0, s.Length(), "stack length is the segment sum")

	segments := s.Segments()
	require.Len(t, segments, 2)
	assert.Equal(t, 10.0, segments[0].Length(), "segments stay bottom to top")
	assert.Equal(t, 5.0, segments[1].Length())

	_, err = NewStack("empty", nil, 0)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))
}

func TestStackKey(t *testing.T) {
	segment, err := NewSegment(NewInfiniteMedium("medium", graphiteMaterial()), 10)
	require.NoError(t, err)

	a, err := NewStack("a", []Segment{segment}, 0)
	require.NoError(t, err)
	b, err := NewStack("b", []Segment{segment}, 0)
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key(), "names do not change the key")

	c, err := NewStack("c", []Segment{segment}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), c.Key(), "bottom position participates in the key")
}

func TestNewStringerValidation(t *testing.T) {
	_, err := NewStringer("bad", nil, 170)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	_, err = NewStringer("bad", testBlock(t), 0)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))
}

func TestStringerAsStack(t *testing.T) {
	block := testBlock(t)
	stringer, err := NewStringer("stringer", block, 170.18)
	require.NoError(t, err)
	assert.Equal(t, 170.18, stringer.Length())

	s, err := stringer.AsStack()
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.BottomPos())
	assert.Equal(t, 170.18, s.Length())

	segments := s.Segments()
	require.Len(t, segments, 1)
	assert.Equal(t, block.Key(), segments[0].Element().Key())
}

func TestInfiniteMediumUniverse(t *testing.T) {
	medium := NewInfiniteMedium("moderator", graphiteMaterial())
	u := medium.Universe()

	assert.Equal(t, "Graphite", u.MaterialAt(0, 0))
	assert.Equal(t, "Graphite", u.MaterialAt(1e6, -1e6), "an infinite medium has no boundary")
}
