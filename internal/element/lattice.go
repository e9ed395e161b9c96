package element

import (
	"strings"

	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/hexmap"
	"github.com/piwi3910/PrismCut/internal/material"
)

// RectLattice is a rectangular grid of elements. Rows are listed top to
// bottom, columns west to east; nil entries are cells filled with the outer
// material.
type RectLattice struct {
	name           string
	pitchX, pitchY float64
	outerMaterial  material.Material
	elements       [][]Element
}

// NewRectLattice constructs a square-pitch rectangular lattice.
func NewRectLattice(name string, pitch float64, outerMaterial material.Material, elements [][]Element) (*RectLattice, error) {
	return NewRectLatticeXY(name, pitch, pitch, outerMaterial, elements)
}

// NewRectLatticeXY constructs a rectangular lattice with separate x and y
// cell pitches.
func NewRectLatticeXY(name string, pitchX, pitchY float64, outerMaterial material.Material, elements [][]Element) (*RectLattice, error) {
	if pitchX <= 0 || pitchY <= 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "lattice pitch must be positive, got %g x %g", pitchX, pitchY)
	}
	if len(elements) == 0 || len(elements[0]) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "lattice requires at least one row and column")
	}
	cols := len(elements[0])
	for i, row := range elements {
		if len(row) != cols {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"lattice rows must have equal length: row 0 has %d columns, row %d has %d", cols, i, len(row))
		}
	}
	if name == "" {
		name = defaultName("rect_lattice")
	}

	l := &RectLattice{name: name, pitchX: pitchX, pitchY: pitchY, outerMaterial: outerMaterial}
	for _, row := range elements {
		l.elements = append(l.elements, append([]Element(nil), row...))
	}
	return l, nil
}

func (l *RectLattice) Name() string                     { return l.name }
func (l *RectLattice) PitchX() float64                  { return l.pitchX }
func (l *RectLattice) PitchY() float64                  { return l.pitchY }
func (l *RectLattice) OuterMaterial() material.Material { return l.outerMaterial }
func (l *RectLattice) NumRows() int                     { return len(l.elements) }
func (l *RectLattice) NumCols() int                     { return len(l.elements[0]) }

// Elements returns the element grid, rows top to bottom.
func (l *RectLattice) Elements() [][]Element {
	out := make([][]Element, len(l.elements))
	for i, row := range l.elements {
		out[i] = append([]Element(nil), row...)
	}
	return out
}

// Element returns the entry at the given row and column, or nil for empty
// cells and out-of-range positions.
func (l *RectLattice) Element(row, col int) Element {
	if row < 0 || row >= len(l.elements) || col < 0 || col >= len(l.elements[0]) {
		return nil
	}
	return l.elements[row][col]
}

func (l *RectLattice) Key() string {
	var sb strings.Builder
	sb.WriteString("rect_lattice(px=")
	sb.WriteString(geom.RoundKey(l.pitchX))
	sb.WriteString(";py=")
	sb.WriteString(geom.RoundKey(l.pitchY))
	sb.WriteString(";outer=")
	sb.WriteString(l.outerMaterial.Key())
	for _, row := range l.elements {
		sb.WriteString(";[")
		for j, entry := range row {
			if j > 0 {
				sb.WriteString(",")
			}
			if entry != nil {
				sb.WriteString(entry.Key())
			} else {
				sb.WriteString("-")
			}
		}
		sb.WriteString("]")
	}
	sb.WriteString(")")
	return sb.String()
}

// HexLattice is a hexagonal grid of elements held in ring form: rings
// ordered outermost to innermost, each ring clockwise from the top point
// (y orientation) or east point (x orientation).
type HexLattice struct {
	name          string
	pitch         float64
	orientation   hexmap.Orientation
	outerMaterial material.Material
	rings         [][]Element
}

// NewHexLattice constructs a hexagonal lattice from a ring map. Ring i of n
// must hold 6*(n-1-i) entries and the innermost ring exactly one.
func NewHexLattice(name string, pitch float64, outerMaterial material.Material,
	orientation hexmap.Orientation, rings [][]Element) (*HexLattice, error) {

	if pitch <= 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "lattice pitch must be positive, got %g", pitch)
	}
	if orientation != hexmap.OrientationX && orientation != hexmap.OrientationY {
		return nil, errdefs.New(errdefs.CodeConfiguration, "orientation must be 'x' or 'y', got %q", string(orientation))
	}
	if len(rings) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "hex lattice requires at least one ring")
	}
	numRings := len(rings)
	if len(rings[numRings-1]) != 1 {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"innermost ring must hold exactly one entry, got %d", len(rings[numRings-1]))
	}
	for i, ring := range rings[:numRings-1] {
		if want := 6 * (numRings - 1 - i); len(ring) != want {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"ring %d must hold %d entries, got %d", i, want, len(ring))
		}
	}
	if name == "" {
		name = defaultName("hex_lattice")
	}

	l := &HexLattice{name: name, pitch: pitch, orientation: orientation, outerMaterial: outerMaterial}
	for _, ring := range rings {
		l.rings = append(l.rings, append([]Element(nil), ring...))
	}
	return l, nil
}

// NewHexLatticeFromOffset constructs a hexagonal lattice from an offset-style
// layout, converting it to ring form first.
func NewHexLatticeFromOffset(name string, pitch float64, outerMaterial material.Material,
	orientation hexmap.Orientation, layout [][]Element) (*HexLattice, error) {

	rings, err := hexmap.OffsetToRing(layout, orientation)
	if err != nil {
		return nil, err
	}
	return NewHexLattice(name, pitch, outerMaterial, orientation, rings)
}

func (l *HexLattice) Name() string                     { return l.name }
func (l *HexLattice) Pitch() float64                   { return l.pitch }
func (l *HexLattice) Orientation() hexmap.Orientation  { return l.orientation }
func (l *HexLattice) OuterMaterial() material.Material { return l.outerMaterial }
func (l *HexLattice) NumRings() int                    { return len(l.rings) }

// Rings returns the ring map, outermost first.
func (l *HexLattice) Rings() [][]Element {
	out := make([][]Element, len(l.rings))
	for i, ring := range l.rings {
		out[i] = append([]Element(nil), ring...)
	}
	return out
}

func (l *HexLattice) Key() string {
	var sb strings.Builder
	sb.WriteString("hex_lattice(p=")
	sb.WriteString(geom.RoundKey(l.pitch))
	sb.WriteString(";o=")
	sb.WriteString(string(l.orientation))
	sb.WriteString(";outer=")
	sb.WriteString(l.outerMaterial.Key())
	for _, ring := range l.rings {
		sb.WriteString(";[")
		for j, entry := range ring {
			if j > 0 {
				sb.WriteString(",")
			}
			if entry != nil {
				sb.WriteString(entry.Key())
			} else {
				sb.WriteString("-")
			}
		}
		sb.WriteString("]")
	}
	sb.WriteString(")")
	return sb.String()
}
