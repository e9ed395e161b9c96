// Package mesh provides the structural primitives of the deterministic
// transport mesh: pins (rectangular and generalized-cylindrical cell
// decompositions), modules, lattices, assemblies, and cores. Builders
// subdivide coarse material regions to honor target cell thicknesses and
// validate pitch alignment at every level of the hierarchy.
package mesh

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// relTol is the relative tolerance used for pitch and height comparisons.
const relTol = 1e-5

func isClose(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

func fkey(f float64) string {
	if f == 0 {
		f = 0
	}
	return fmt.Sprintf("%.5e", f)
}

// Bounds is an axis-aligned bounding box in the XY plane.
type Bounds struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Width returns the X extent of the bounds.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns the Y extent of the bounds.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

func (b Bounds) validate() error {
	if b.XMin >= b.XMax || b.YMin >= b.YMax {
		return errdefs.New(errdefs.CodeConfiguration,
			"invalid bounds: x = [%g, %g], y = [%g, %g]", b.XMin, b.XMax, b.YMin, b.YMax)
	}
	return nil
}

// Pin is one cell decomposition of the mesh: a rectangular grid of material
// cells or a generalized cylinder clipped to a bounding box. Pins are
// immutable once built.
type Pin interface {
	// PitchX returns the X extent of the pin (cm).
	PitchX() float64
	// PitchY returns the Y extent of the pin (cm).
	PitchY() float64
	// Height returns the Z extent of the pin (cm).
	Height() float64
	// WithHeight returns a copy of the pin with its axial column replaced by
	// a single slab of the given height.
	WithHeight(height float64) Pin
	// Key returns a stable content key identifying the pin geometry and
	// materials. Pins with equal keys are interchangeable.
	Key() string
}

// RectPin is a rectangular decomposition into a grid of material cells.
type RectPin struct {
	XThicknesses []float64    // fine cell widths, left to right (cm)
	YThicknesses []float64    // fine cell heights, bottom to top (cm)
	ZThicknesses []float64    // axial slab heights, bottom to top (cm)
	Cells        [][]Material // cell materials by [row][col], top row first
}

// PitchX returns the X extent of the pin.
func (p *RectPin) PitchX() float64 { return sum(p.XThicknesses) }

// PitchY returns the Y extent of the pin.
func (p *RectPin) PitchY() float64 { return sum(p.YThicknesses) }

// Height returns the Z extent of the pin.
func (p *RectPin) Height() float64 { return sum(p.ZThicknesses) }

// WithHeight returns a copy of the pin with a single axial slab.
func (p *RectPin) WithHeight(height float64) Pin {
	q := *p
	q.ZThicknesses = []float64{height}
	return &q
}

// Key returns a stable content key for the pin.
func (p *RectPin) Key() string {
	var sb strings.Builder
	sb.WriteString("rect")
	writeFloats(&sb, "x", p.XThicknesses)
	writeFloats(&sb, "y", p.YThicknesses)
	writeFloats(&sb, "z", p.ZThicknesses)
	sb.WriteString("|m=")
	for _, row := range p.Cells {
		for _, m := range row {
			fmt.Fprintf(&sb, "%d,", m.ID)
		}
		sb.WriteString(";")
	}
	return sb.String()
}

// RadialZone is one ring of a generalized-cylindrical pin.
type RadialZone struct {
	Radius             float64  // outer radius of the ring, measured from the origin (cm)
	AzimuthalDivisions int      // number of azimuthal cells in the ring
	Material           Material // ring material
}

// RadialPin is a generalized-cylindrical decomposition: concentric rings
// centered on the origin, clipped to a bounding box that need not contain or
// even touch the origin. Points inside the bounds but beyond the last ring
// take the outer material.
type RadialPin struct {
	Bounds       Bounds
	ZThicknesses []float64    // axial slab heights, bottom to top (cm)
	Zones        []RadialZone // rings ordered innermost to outermost
	Outer        Material     // material beyond the last ring
}

// PitchX returns the X extent of the pin.
func (p *RadialPin) PitchX() float64 { return p.Bounds.Width() }

// PitchY returns the Y extent of the pin.
func (p *RadialPin) PitchY() float64 { return p.Bounds.Height() }

// Height returns the Z extent of the pin.
func (p *RadialPin) Height() float64 { return sum(p.ZThicknesses) }

// WithHeight returns a copy of the pin with a single axial slab.
func (p *RadialPin) WithHeight(height float64) Pin {
	q := *p
	q.ZThicknesses = []float64{height}
	return &q
}

// Key returns a stable content key for the pin.
func (p *RadialPin) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "gcyl|b=%s,%s,%s,%s",
		fkey(p.Bounds.XMin), fkey(p.Bounds.XMax), fkey(p.Bounds.YMin), fkey(p.Bounds.YMax))
	writeFloats(&sb, "z", p.ZThicknesses)
	sb.WriteString("|r=")
	for _, z := range p.Zones {
		fmt.Fprintf(&sb, "%s/%d/%d,", fkey(z.Radius), z.AzimuthalDivisions, z.Material.ID)
	}
	fmt.Fprintf(&sb, "|o=%d", p.Outer.ID)
	return sb.String()
}

// BuildRectPin builds a rectangular pin from coarse slab thicknesses and a
// coarse material grid, subdividing slabs so no fine cell exceeds the target
// thickness on its axis. Pass math.Inf(1) to leave an axis unsubdivided.
//
// x is ordered left to right, y bottom to top, z bottom to top. materials is
// the coarse grid in row-major order with the TOP row first; its length must
// equal len(x)*len(y).
func BuildRectPin(x, y, z []float64, materials []Material, targetX, targetY float64) (*RectPin, error) {
	if err := validateThicknesses("x", x); err != nil {
		return nil, err
	}
	if err := validateThicknesses("y", y); err != nil {
		return nil, err
	}
	if err := validateThicknesses("z", z); err != nil {
		return nil, err
	}
	if err := validateTarget("x", targetX); err != nil {
		return nil, err
	}
	if err := validateTarget("y", targetY); err != nil {
		return nil, err
	}
	if len(materials) != len(x)*len(y) {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"material count %d does not match %dx%d grid", len(materials), len(x), len(y))
	}

	xFine, xRep := subdivide(x, targetX)
	yFine, yRep := subdivide(y, targetY)

	cells := make([][]Material, 0, len(yFine))
	for r := 0; r < len(y); r++ { // top-down coarse rows
		band := len(y) - 1 - r // bottom-up thickness index
		row := make([]Material, 0, len(xFine))
		for c := 0; c < len(x); c++ {
			m := materials[r*len(x)+c]
			for k := 0; k < xRep[c]; k++ {
				row = append(row, m)
			}
		}
		for k := 0; k < yRep[band]; k++ {
			cells = append(cells, row)
		}
	}

	return &RectPin{
		XThicknesses: xFine,
		YThicknesses: yFine,
		ZThicknesses: append([]float64(nil), z...),
		Cells:        cells,
	}, nil
}

// BuildRadialPin builds a generalized-cylindrical pin from ring thicknesses,
// subdividing rings so no fine ring exceeds targetR in radial thickness and
// assigning each fine ring an azimuthal division count from the target arc
// length targetS evaluated at the ring midradius. Pass math.Inf(1) for either
// target to disable that subdivision.
//
// r holds ring thicknesses ordered innermost to outermost. materials holds
// one material per coarse ring plus a final outer material, so
// len(materials) == len(r)+1.
func BuildRadialPin(bounds Bounds, r, z []float64, materials []Material, targetR, targetS float64) (*RadialPin, error) {
	if err := bounds.validate(); err != nil {
		return nil, err
	}
	if err := validateThicknesses("r", r); err != nil {
		return nil, err
	}
	if err := validateThicknesses("z", z); err != nil {
		return nil, err
	}
	if err := validateTarget("r", targetR); err != nil {
		return nil, err
	}
	if err := validateTarget("s", targetS); err != nil {
		return nil, err
	}
	if len(materials) != len(r)+1 {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"material count %d does not match %d rings plus outer", len(materials), len(r))
	}

	var zones []RadialZone
	radius := 0.0
	for i, thickness := range r {
		n := divisions(thickness, targetR)
		step := thickness / float64(n)
		for k := 0; k < n; k++ {
			inner := radius
			radius += step
			mid := (inner + radius) * 0.5
			az := 1
			if !math.IsInf(targetS, 1) {
				az = divisions(2.0*math.Pi*mid, targetS)
			}
			zones = append(zones, RadialZone{
				Radius:             radius,
				AzimuthalDivisions: az,
				Material:           materials[i],
			})
		}
	}

	return &RadialPin{
		Bounds:       bounds,
		ZThicknesses: append([]float64(nil), z...),
		Zones:        zones,
		Outer:        materials[len(materials)-1],
	}, nil
}

// subdivide splits each coarse thickness into equal parts no larger than
// target, returning the fine thicknesses and the per-coarse-slab part counts.
func subdivide(coarse []float64, target float64) ([]float64, []int) {
	var fine []float64
	counts := make([]int, len(coarse))
	for i, t := range coarse {
		n := divisions(t, target)
		counts[i] = n
		step := t / float64(n)
		for k := 0; k < n; k++ {
			fine = append(fine, step)
		}
	}
	return fine, counts
}

func divisions(thickness, target float64) int {
	n := int(math.Ceil(thickness / target))
	if n < 1 {
		n = 1
	}
	return n
}

func validateThicknesses(axis string, t []float64) error {
	if len(t) == 0 {
		return errdefs.New(errdefs.CodeConfiguration, "no %s thicknesses given", axis)
	}
	for _, v := range t {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errdefs.New(errdefs.CodeConfiguration, "%s thickness = %g", axis, v)
		}
	}
	return nil
}

func validateTarget(axis string, target float64) error {
	if target <= 0 || math.IsNaN(target) {
		return errdefs.New(errdefs.CodeConfiguration, "target %s thickness = %g", axis, target)
	}
	return nil
}

func sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

func writeFloats(sb *strings.Builder, label string, vals []float64) {
	sb.WriteString("|")
	sb.WriteString(label)
	sb.WriteString("=")
	for _, v := range vals {
		sb.WriteString(fkey(v))
		sb.WriteString(",")
	}
}
