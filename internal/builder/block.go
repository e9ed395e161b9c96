package builder

import (
	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// orientation says which way a channel runs along its block face.
type orientation string

// pinType names the two channel pin parts. Channel pins are expressed in
// stadium terms even for circles and rectangles: a rectangle is a stadium
// with square caps, a circle a stadium with no flats.
type pinType string

// quadrant names the four corners of a channel's local frame.
type quadrant string

const (
	horizontal orientation = "horizontal"
	vertical   orientation = "vertical"

	capPin  pinType = "cap"
	flatPin pinType = "flat"

	quadNW quadrant = "NW"
	quadNE quadrant = "NE"
	quadSW quadrant = "SW"
	quadSE quadrant = "SE"
)

// BlockDimensions are the lengths the decomposition derives from a block's
// channels: the side of the square cap cells at each corner of a face, and
// the straight flat run between them.
type BlockDimensions struct {
	CapCellLength float64 `json:"cap_cell_length"` // cm
	FlatLength    float64 `json:"flat_length"`     // cm
}

// HalfFlatLength is half the flat run.
func (d BlockDimensions) HalfFlatLength() float64 { return d.FlatLength / 2 }

// DeriveBlockDimensions computes the cap cell length and flat length of a
// block. Fuel channels dictate both when present: a stadium's flat is its
// straight section, a circle has none, and a rectangle's is its width minus
// its height. With only control channels the cap cells are sized so the
// channel circle passes exactly through the cap cell's outer corner band.
// Four cap cells and the flat always sum to the pitch.
func DeriveBlockDimensions(blk *element.Block) (BlockDimensions, error) {
	dims := BlockDimensions{CapCellLength: blk.Pitch() / 4}

	if blk.HasFuelChannels() {
		if !blk.FuelShapesEqual() {
			return BlockDimensions{}, errdefs.New(errdefs.CodeUnsupportedCombination,
				"block %q: fuel channels must have equal shapes", blk.Name())
		}
		switch shape := blk.FuelChannels()[0].Shape().(type) {
		case geom.Stadium:
			dims.FlatLength = shape.A
		case geom.Circle:
			dims.FlatLength = 0
		case geom.Rectangle:
			dims.FlatLength = shape.W - shape.H
		}
		dims.CapCellLength = (blk.Pitch() - dims.FlatLength) / 4
	}

	if blk.HasControlChannels() {
		if !blk.ControlShapesEqual() {
			return BlockDimensions{}, errdefs.New(errdefs.CodeUnsupportedCombination,
				"block %q: control channels must have equal shapes", blk.Name())
		}
		if !blk.HasFuelChannels() {
			dims.CapCellLength = blk.ControlChannels()[0].Shape().OuterRadius() - blk.Pitch()/2
			dims.FlatLength = blk.Pitch() - 4*dims.CapCellLength
		}
	}

	return dims, nil
}

// PinCatalog is the collection of named sub-cell pins a block decomposes
// into: the shared prism pins (corner, center, H_spacer, V_spacer) and four
// pins per occupied face. Entries absent from the geometry (flat pins of a
// flat-less block) are nil.
type PinCatalog map[string]mesh.Pin

// Quadrants holds the four pruned pin tables of a block, one per compass
// corner of the cross-section.
type Quadrants struct {
	NW [][]mesh.Pin
	NE [][]mesh.Pin
	SW [][]mesh.Pin
	SE [][]mesh.Pin
}

// channelPinBuilder builds the cap and flat pins of one placed channel; the
// two channel kinds each carry their own geometry tables.
type channelPinBuilder interface {
	// buildPin returns the pin for the given face position, or nil for flat
	// positions of a flat-less channel.
	buildPin(o orientation, pt pinType, q quadrant) (mesh.Pin, error)
}

// facePinSpec fixes where each named channel pin of a face sits.
type facePinSpec struct {
	orientation orientation
	pinType     pinType
	quadrant    quadrant
	name        string
}

// facePinSpecs lists the four pins of each face in channel-slot order
// [N, S, E, W]. Quadrants are expressed in the channel's own frame, so a
// north channel's west cap sits in its SW quadrant.
var facePinSpecs = [4][4]facePinSpec{
	{
		{horizontal, capPin, quadSW, "N_chan_W_cap"},
		{horizontal, flatPin, quadSW, "N_chan_W_flat"},
		{horizontal, flatPin, quadSE, "N_chan_E_flat"},
		{horizontal, capPin, quadSE, "N_chan_E_cap"},
	},
	{
		{horizontal, capPin, quadNW, "S_chan_W_cap"},
		{horizontal, flatPin, quadNW, "S_chan_W_flat"},
		{horizontal, flatPin, quadNE, "S_chan_E_flat"},
		{horizontal, capPin, quadNE, "S_chan_E_cap"},
	},
	{
		{vertical, capPin, quadNW, "E_chan_N_cap"},
		{vertical, flatPin, quadNW, "E_chan_N_flat"},
		{vertical, flatPin, quadSW, "E_chan_S_flat"},
		{vertical, capPin, quadSW, "E_chan_S_cap"},
	},
	{
		{vertical, capPin, quadNE, "W_chan_N_cap"},
		{vertical, flatPin, quadNE, "W_chan_N_flat"},
		{vertical, flatPin, quadSE, "W_chan_S_flat"},
		{vertical, capPin, quadSE, "W_chan_S_cap"},
	},
}

// quadrantLayouts names the pins of each quadrant's 3x3 table. Rows and
// columns that hold only absent pins are pruned at assembly, which is how a
// flat-less block collapses to 2x2 quadrants.
var quadrantLayouts = map[quadrant][3][3]string{
	quadNW: {
		{"corner", "N_chan_W_cap", "N_chan_W_flat"},
		{"W_chan_N_cap", "corner", "H_spacer"},
		{"W_chan_N_flat", "V_spacer", "center"},
	},
	quadSW: {
		{"W_chan_S_flat", "V_spacer", "center"},
		{"W_chan_S_cap", "corner", "H_spacer"},
		{"corner", "S_chan_W_cap", "S_chan_W_flat"},
	},
	quadNE: {
		{"N_chan_E_flat", "N_chan_E_cap", "corner"},
		{"H_spacer", "corner", "E_chan_N_cap"},
		{"center", "V_spacer", "E_chan_N_flat"},
	},
	quadSE: {
		{"center", "V_spacer", "E_chan_S_flat"},
		{"H_spacer", "corner", "E_chan_S_cap"},
		{"S_chan_E_flat", "S_chan_E_cap", "corner"},
	},
}

// DecomposeBlock partitions a block's cross-section into its named sub-cell
// pins and the four quadrant pin tables they assemble into. The catalog and
// tables are computed fresh on every call.
func (b *Builder) DecomposeBlock(blk *element.Block, specs Specs) (PinCatalog, Quadrants, error) {
	specs, err := specs.withDefaults()
	if err != nil {
		return nil, Quadrants{}, err
	}
	return b.decomposeBlock(blk, specs)
}

func (b *Builder) decomposeBlock(blk *element.Block, specs Specs) (PinCatalog, Quadrants, error) {
	dims, err := DeriveBlockDimensions(blk)
	if err != nil {
		return nil, Quadrants{}, err
	}

	prism := b.resolver.Resolve(blk.PrismMaterial())

	catalog, err := b.buildBlockPins(blk, dims, prism, specs)
	if err != nil {
		return nil, Quadrants{}, err
	}

	quads := Quadrants{
		NW: pruneNil2D(catalog.table(quadrantLayouts[quadNW])),
		NE: pruneNil2D(catalog.table(quadrantLayouts[quadNE])),
		SW: pruneNil2D(catalog.table(quadrantLayouts[quadSW])),
		SE: pruneNil2D(catalog.table(quadrantLayouts[quadSE])),
	}
	return catalog, quads, nil
}

// buildBlockPins builds the full pin catalog: the shared prism pins plus the
// four per-face channel pins, substituting prism pins at unoccupied faces.
func (b *Builder) buildBlockPins(blk *element.Block, dims BlockDimensions,
	prism mesh.Material, specs Specs) (PinCatalog, error) {

	ccl := dims.CapCellLength
	hfl := dims.HalfFlatLength()
	hasFlats := dims.FlatLength > 0

	catalog := PinCatalog{}
	pin, err := b.buildPrismPin(ccl, ccl, prism, specs)
	if err != nil {
		return nil, err
	}
	catalog["corner"] = pin

	if hasFlats {
		for _, spec := range []struct {
			name string
			w, h float64
		}{
			{"center", hfl, hfl},
			{"H_spacer", hfl, ccl},
			{"V_spacer", ccl, hfl},
		} {
			pin, err := b.buildPrismPin(spec.w, spec.h, prism, specs)
			if err != nil {
				return nil, err
			}
			catalog[spec.name] = pin
		}
	} else {
		catalog["center"], catalog["H_spacer"], catalog["V_spacer"] = nil, nil, nil
	}

	for _, face := range element.AllFaces {
		var pins channelPinBuilder
		if ch := blk.Channel(face); ch != nil {
			switch ch.Kind() {
			case element.FuelKind:
				pins, err = newFuelChannelPins(ch, blk.Pitch(), dims, prism, b.resolver, specs)
			case element.ControlKind:
				pins, err = newControlChannelPins(ch, blk.Pitch(), dims, prism, b.resolver, specs)
			}
			if err != nil {
				return nil, err
			}
		}

		for _, spec := range facePinSpecs[face] {
			if pins == nil {
				switch {
				case spec.pinType == capPin:
					catalog[spec.name] = catalog["corner"]
				case spec.orientation == horizontal:
					catalog[spec.name] = catalog["H_spacer"]
				default:
					catalog[spec.name] = catalog["V_spacer"]
				}
				continue
			}
			pin, err := pins.buildPin(spec.orientation, spec.pinType, spec.quadrant)
			if err != nil {
				return nil, err
			}
			catalog[spec.name] = pin
		}
	}

	return catalog, nil
}

// buildPrismPin builds a single-cell rectangular pin of the prism material.
func (b *Builder) buildPrismPin(w, h float64, prism mesh.Material, specs Specs) (mesh.Pin, error) {
	return mesh.BuildRectPin(
		[]float64{w}, []float64{h}, []float64{specs.Height},
		[]mesh.Material{prism},
		specs.TargetCellThicknesses.Cartesian, specs.TargetCellThicknesses.Cartesian)
}

// table resolves a quadrant layout to pins; absent names stay nil.
func (c PinCatalog) table(layout [3][3]string) [][]mesh.Pin {
	out := make([][]mesh.Pin, len(layout))
	for r, row := range layout {
		out[r] = make([]mesh.Pin, len(row))
		for i, name := range row {
			out[r][i] = c[name]
		}
	}
	return out
}

// pruneNil2D drops the rows and columns of a pin table that hold only nil
// entries.
func pruneNil2D(table [][]mesh.Pin) [][]mesh.Pin {
	if len(table) == 0 {
		return table
	}
	keepCol := make([]bool, len(table[0]))
	keepRow := make([]bool, len(table))
	for r, row := range table {
		for c, pin := range row {
			if pin != nil {
				keepRow[r] = true
				keepCol[c] = true
			}
		}
	}

	var out [][]mesh.Pin
	for r, row := range table {
		if !keepRow[r] {
			continue
		}
		var kept []mesh.Pin
		for c, pin := range row {
			if keepCol[c] {
				kept = append(kept, pin)
			}
		}
		out = append(out, kept)
	}
	return out
}

// buildBlock assembles a block's quadrants into the mesh hierarchy: four
// quadrant modules in a 2x2 lattice, or one module holding the concatenated
// full pin map.
func (b *Builder) buildBlock(blk *element.Block, specs Specs) (*mesh.Core, error) {
	_, quads, err := b.decomposeBlock(blk, specs)
	if err != nil {
		return nil, err
	}

	var lattice *mesh.Lattice
	if specs.DivideIntoQuadrants {
		modules := make(map[quadrant]*mesh.Module, 4)
		for q, table := range map[quadrant][][]mesh.Pin{
			quadNW: quads.NW, quadNE: quads.NE, quadSW: quads.SW, quadSE: quads.SE,
		} {
			module, err := mesh.NewModule(1, table)
			if err != nil {
				return nil, err
			}
			modules[q] = module
		}
		lattice, err = mesh.NewLattice([][]*mesh.Module{
			{modules[quadNW], modules[quadNE]},
			{modules[quadSW], modules[quadSE]},
		})
		if err != nil {
			return nil, err
		}
	} else {
		fullMap := concatQuadrants(quads)
		module, err := mesh.NewModule(1, fullMap)
		if err != nil {
			return nil, err
		}
		lattice, err = mesh.NewLattice([][]*mesh.Module{{module}})
		if err != nil {
			return nil, err
		}
	}

	assembly, err := mesh.NewAssembly([]*mesh.Lattice{lattice})
	if err != nil {
		return nil, err
	}
	return mesh.NewCore([][]*mesh.Assembly{{assembly}})
}

// concatQuadrants joins the four quadrant tables into the full block pin map:
// NW beside NE on top, SW beside SE below.
func concatQuadrants(quads Quadrants) [][]mesh.Pin {
	var full [][]mesh.Pin
	for r := range quads.NW {
		full = append(full, append(append([]mesh.Pin(nil), quads.NW[r]...), quads.NE[r]...))
	}
	for r := range quads.SW {
		full = append(full, append(append([]mesh.Pin(nil), quads.SW[r]...), quads.SE[r]...))
	}
	return full
}
