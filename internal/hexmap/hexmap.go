// Package hexmap converts human-authored offset layouts of hexagonal grids
// into the canonical ring representation: rings ordered outermost to
// innermost, each ring ordered clockwise starting at the top point for
// pointy-top grids or the east point for flat-top grids.
package hexmap

import (
	"strings"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// Orientation selects the hexagon orientation of a grid.
type Orientation string

const (
	// OrientationX is the flat-top orientation, with two hexagon sides
	// parallel to the x axis.
	OrientationX Orientation = "x"
	// OrientationY is the pointy-top orientation, with two hexagon sides
	// parallel to the y axis.
	OrientationY Orientation = "y"
)

// ParseOrientation normalizes a user-supplied orientation string.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return OrientationX, nil
	case "y":
		return OrientationY, nil
	default:
		return "", errdefs.New(errdefs.CodeConfiguration, "orientation must be 'x' or 'y', got %q", s)
	}
}

// RingSizes returns the entry count of each ring, outermost first, for a grid
// with the given number of rings. Ring i holds 6*(numRings-1-i) entries and
// the innermost ring holds the single center entry.
func RingSizes(numRings int) []int {
	sizes := make([]int, numRings)
	for i := 0; i < numRings-1; i++ {
		sizes[i] = 6 * (numRings - 1 - i)
	}
	if numRings > 0 {
		sizes[numRings-1] = 1
	}
	return sizes
}

type step struct {
	dRow, dCol int
}

// OffsetToRing converts an offset-style 2D layout of a hexagonal grid into
// its ring representation. The layout rows are listed top to bottom; entries
// within a row are listed west to east. A pointy-top layout must have
// 4*(numRings-1)+1 rows and a flat-top layout 2*(numRings-1)+1 rows.
func OffsetToRing[T any](layout [][]T, orientation Orientation) ([][]T, error) {
	switch orientation {
	case OrientationY:
		return convertPointyTop(layout)
	case OrientationX:
		return convertFlatTop(layout)
	default:
		return nil, errdefs.New(errdefs.CodeConfiguration, "orientation must be 'x' or 'y', got %q", string(orientation))
	}
}

func convertPointyTop[T any](layout [][]T) ([][]T, error) {
	if len(layout)%4 != 1 {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"y-oriented layout must have 4*(rings-1)+1 rows, got %d", len(layout))
	}

	numRings := (len(layout)+1)/4 + 1
	rings := make([][]T, 0, numRings)

	// The row is stepped before the column so the column adjustment can
	// compare the new row's stagger against the row just left.
	faceSteps := []step{
		{1, 1},   // NE face
		{2, 0},   // E face
		{1, -1},  // SE face
		{-1, -1}, // SW face
		{-2, 0},  // W face
		{-1, 1},  // NW face
	}

	for i := 0; i < numRings-1; i++ {
		faceElements := numRings - 1 - i
		ring := make([]T, 0, 6*faceElements)
		row := i * 2
		col := len(layout[row]) / 2

		for _, s := range faceSteps {
			for k := 0; k < faceElements; k++ {
				ring = append(ring, layout[row][col])
				prev := row
				row += s.dRow
				if s.dCol > 0 && len(layout[row]) > len(layout[prev]) {
					col += s.dCol
				} else if s.dCol < 0 && len(layout[row]) < len(layout[prev]) {
					col += s.dCol
				}
			}
		}
		rings = append(rings, ring)
	}

	row := (numRings - 1) * 2
	col := len(layout[row]) / 2
	rings = append(rings, []T{layout[row][col]})

	return rings, nil
}

func convertFlatTop[T any](layout [][]T) ([][]T, error) {
	if len(layout)%2 != 1 {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"x-oriented layout must have 2*(rings-1)+1 rows, got %d", len(layout))
	}

	numRings := (len(layout) + 1) / 2
	rings := make([][]T, 0, numRings)

	faceSteps := []step{
		{1, -1}, // SE face
		{0, -1}, // S face
		{-1, 0}, // SW face
		{-1, 0}, // NW face
		{0, 1},  // N face
		{1, 1},  // NE face
	}

	for i := 0; i < numRings-1; i++ {
		faceElements := numRings - 1 - i
		ring := make([]T, 0, 6*faceElements)
		row := numRings - 1
		col := len(layout[row]) - 1 - i

		for _, s := range faceSteps {
			for k := 0; k < faceElements; k++ {
				ring = append(ring, layout[row][col])
				row += s.dRow
				col += s.dCol
			}
		}
		rings = append(rings, ring)
	}

	row := numRings - 1
	col := len(layout[row]) - 1 - (numRings - 1)
	rings = append(rings, []T{layout[row][col]})

	return rings, nil
}
