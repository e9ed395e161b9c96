package builder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

func TestDeriveBlockDimensions(t *testing.T) {
	salt := saltMaterial()
	pitch := 5.08

	rectangle, err := geom.NewRectangle(2.54, 1.016)
	require.NoError(t, err)

	cases := []struct {
		name     string
		shape    geom.Shape
		wantFlat float64
	}{
		{"stadium", testStadium(t), 2.032},
		{"circle", testCircle(t, 0.508), 0},
		{"rectangle", rectangle, 2.54 - 1.016},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fuel, err := element.NewFuelChannel("fuel", tc.shape, salt)
			require.NoError(t, err)
			b, err := element.NewBlock("b", pitch, graphiteMaterial(), nil,
				map[element.Face]element.Channel{element.North: fuel, element.South: fuel})
			require.NoError(t, err)

			dims, err := DeriveBlockDimensions(b)
			require.NoError(t, err)
			assert.InDelta(t, tc.wantFlat, dims.FlatLength, 1e-12)
			assert.InDelta(t, pitch, 4*dims.CapCellLength+dims.FlatLength, 1e-9,
				"four cap cells and the flat span the pitch")
		})
	}
}

func TestDeriveBlockDimensionsControlOnly(t *testing.T) {
	dims, err := DeriveBlockDimensions(controlBlock(t))
	require.NoError(t, err)

	// ccl = outer radius - half pitch; the flat takes up the rest.
	assert.InDelta(t, 3.01625-2.54, dims.CapCellLength, 1e-12)
	assert.InDelta(t, 5.08-4*(3.01625-2.54), dims.FlatLength, 1e-9)
}

func TestDeriveBlockDimensionsNoChannels(t *testing.T) {
	b, err := element.NewBlock("empty", 5.08, graphiteMaterial(), nil, nil)
	require.NoError(t, err)

	dims, err := DeriveBlockDimensions(b)
	require.NoError(t, err)
	assert.InDelta(t, 5.08/4, dims.CapCellLength, 1e-12)
	assert.Zero(t, dims.FlatLength)
}

func TestDeriveBlockDimensionsUnequalShapes(t *testing.T) {
	salt := saltMaterial()
	stadium, err := element.NewFuelChannel("stadium", testStadium(t), salt)
	require.NoError(t, err)
	circle, err := element.NewFuelChannel("circle", testCircle(t, 0.508), salt)
	require.NoError(t, err)

	b, err := element.NewBlock("mixed", 5.08, graphiteMaterial(), nil,
		map[element.Face]element.Channel{element.North: stadium, element.South: circle})
	require.NoError(t, err)

	_, err = DeriveBlockDimensions(b)
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeUnsupportedCombination))
	assert.Contains(t, err.Error(), "equal shapes")
}

func TestDecomposeBlockCatalog(t *testing.T) {
	b := New(nil)
	catalog, quads, err := b.DecomposeBlock(stadiumBlock(t), Specs{})
	require.NoError(t, err)

	prismNames := []string{"corner", "center", "H_spacer", "V_spacer"}
	prismKeys := make(map[string]bool)
	for _, name := range prismNames {
		require.NotNil(t, catalog[name], "prism pin %s", name)
		prismKeys[catalog[name].Key()] = true
	}
	assert.Len(t, prismKeys, 4, "the four prism pins are geometrically distinct")

	channelNames := 0
	for name, pin := range catalog {
		switch name {
		case "corner", "center", "H_spacer", "V_spacer":
			continue
		}
		channelNames++
		require.NotNil(t, pin, "channel pin %s", name)
		assert.False(t, prismKeys[pin.Key()], "channel pin %s is not a prism pin", name)
	}
	assert.Equal(t, 16, channelNames, "four channel pins per face")

	for _, table := range [][][]mesh.Pin{quads.NW, quads.NE, quads.SW, quads.SE} {
		require.Len(t, table, 3)
		for _, row := range table {
			require.Len(t, row, 3)
		}
	}
}

func TestBuildBlockStadiumPinMap(t *testing.T) {
	b := New(nil)
	core, err := b.Build(stadiumBlock(t), Specs{})
	require.NoError(t, err)

	module := singleModule(t, core)
	require.Len(t, module.PinMap, 6)
	for _, row := range module.PinMap {
		require.Len(t, row, 6)
	}
	assert.InDelta(t, 5.08, module.PitchX(), 1e-9)
	assert.InDelta(t, 5.08, module.PitchY(), 1e-9)

	// Four identical channels make the map symmetric under 180 degree
	// rotation.
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			assert.Equal(t, module.PinMap[r][c].Key(), module.PinMap[5-r][5-c].Key(),
				"rotated partner of (%d, %d)", r, c)
		}
	}
}

func TestBuildBlockNoChannels(t *testing.T) {
	empty, err := element.NewBlock("empty", 5.08, graphiteMaterial(), nil, nil)
	require.NoError(t, err)

	b := New(nil)
	core, err := b.Build(empty, Specs{})
	require.NoError(t, err)

	module := singleModule(t, core)
	require.Len(t, module.PinMap, 4, "flat-less quadrants collapse to 2x2")
	first := module.PinMap[0][0].Key()
	for _, row := range module.PinMap {
		require.Len(t, row, 4)
		for _, pin := range row {
			assert.Equal(t, first, pin.Key(), "every cell is the same prism pin")
		}
	}
	assert.InDelta(t, 5.08, module.PitchX(), 1e-9)
}

func TestBuildBlockControlOnly(t *testing.T) {
	b := New(nil)
	core, err := b.Build(controlBlock(t), Specs{})
	require.NoError(t, err)

	module := singleModule(t, core)
	require.Len(t, module.PinMap, 6)
	assert.InDelta(t, 5.08, module.PitchX(), 1e-9)
	assert.InDelta(t, 5.08, module.PitchY(), 1e-9)

	// The prism ring thickness degenerates to zero for this radius, so the
	// control pins hold a single ring of channel material.
	dims, err := DeriveBlockDimensions(controlBlock(t))
	require.NoError(t, err)
	catalog, _, err := b.DecomposeBlock(controlBlock(t), Specs{})
	require.NoError(t, err)
	capNW, ok := catalog["N_chan_W_cap"].(*mesh.RadialPin)
	require.True(t, ok)
	require.Len(t, capNW.Zones, 1)
	assert.InDelta(t, 3.01625, capNW.Zones[0].Radius, 1e-9)
	assert.InDelta(t, dims.CapCellLength, capNW.Bounds.Width(), 1e-9)
}

func TestBuildBlockControlLateralClippingLimit(t *testing.T) {
	// Circular fuel channels leave no flats, which pulls the lateral limit
	// below the normal limit: sqrt(2.54^2 + 1.27^2) < 2.54 + 1.27.
	salt := saltMaterial()
	fuel, err := element.NewFuelChannel("fuel", testCircle(t, 0.508), salt)
	require.NoError(t, err)
	control := controlChannel(t, 3.0)

	blk, err := element.NewBlock("clipped", 5.08, graphiteMaterial(), nil,
		map[element.Face]element.Channel{
			element.North: fuel, element.South: fuel, element.East: control,
		})
	require.NoError(t, err, "placement accepts the channel; the limit only exists at build time")

	b := New(nil)
	_, err = b.Build(blk, Specs{})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeGeometricConstraint))
	assert.Contains(t, err.Error(), "lateral clipping limit")
	assert.Contains(t, err.Error(), "3", "message carries the offending radius")
}

func TestBuildBlockControlNormalClippingLimit(t *testing.T) {
	control := controlChannel(t, 3.2)
	blk, err := element.NewBlock("clipped", 5.08, graphiteMaterial(), nil,
		map[element.Face]element.Channel{element.North: control, element.South: controlChannel(t, 3.01625)})
	require.NoError(t, err)

	// Unequal control shapes are rejected before any clipping check.
	b := New(nil)
	_, err = b.Build(blk, Specs{})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeUnsupportedCombination))

	// With consistent shapes sized past the normal limit the build fails on
	// the clipping check instead. Stadium fuel gives ccl = 0.762, so the
	// normal limit is 3.302.
	salt := saltMaterial()
	fuel, err := element.NewFuelChannel("fuel", testStadium(t), salt)
	require.NoError(t, err)
	blk, err = element.NewBlock("clipped", 5.08, graphiteMaterial(), nil,
		map[element.Face]element.Channel{element.North: fuel, element.South: fuel, element.East: controlChannel(t, 3.4)})
	require.NoError(t, err)

	_, err = b.Build(blk, Specs{})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeGeometricConstraint))
	assert.Contains(t, err.Error(), "normal clipping limit")
}

func TestBuildBlockQuadrantsMatchMergedMap(t *testing.T) {
	b := New(nil)
	blk := stadiumBlock(t)

	merged, err := b.Build(blk, Specs{})
	require.NoError(t, err)
	mergedMap := singleModule(t, merged).PinMap

	divided, err := b.Build(blk, Specs{DivideIntoQuadrants: true})
	require.NoError(t, err)
	lattice := divided.AssemblyMap[0][0].Lattices[0]
	require.Len(t, lattice.ModuleMap, 2)
	require.Len(t, lattice.ModuleMap[0], 2)

	var reassembled [][]mesh.Pin
	for r := 0; r < 2; r++ {
		left, right := lattice.ModuleMap[r][0], lattice.ModuleMap[r][1]
		require.Len(t, left.PinMap, len(right.PinMap))
		for i := range left.PinMap {
			reassembled = append(reassembled,
				append(append([]mesh.Pin(nil), left.PinMap[i]...), right.PinMap[i]...))
		}
	}

	require.Len(t, reassembled, len(mergedMap))
	for r := range mergedMap {
		require.Len(t, reassembled[r], len(mergedMap[r]))
		for c := range mergedMap[r] {
			assert.Equal(t, mergedMap[r][c].Key(), reassembled[r][c].Key(),
				"pin (%d, %d) matches the merged build", r, c)
		}
	}
}

func TestBuildBlockRectangleChannels(t *testing.T) {
	rectangle, err := geom.NewRectangle(2.54, 1.016)
	require.NoError(t, err)
	fuel, err := element.NewFuelChannel("fuel", rectangle, saltMaterial())
	require.NoError(t, err)
	blk, err := element.NewBlock("rect_block", 5.08, graphiteMaterial(), nil,
		map[element.Face]element.Channel{
			element.North: fuel, element.South: fuel, element.East: fuel, element.West: fuel,
		})
	require.NoError(t, err)

	b := New(nil)
	core, err := b.Build(blk, Specs{})
	require.NoError(t, err)

	module := singleModule(t, core)
	require.Len(t, module.PinMap, 6)
	assert.InDelta(t, 5.08, module.PitchX(), 1e-9)

	catalog, _, err := b.DecomposeBlock(blk, Specs{})
	require.NoError(t, err)
	_, isRect := catalog["N_chan_W_cap"].(*mesh.RectPin)
	assert.True(t, isRect, "rectangular channels decompose into rectangular cap pins")
}

func TestBuildBlockSubdivision(t *testing.T) {
	b := New(nil)
	core, err := b.Build(stadiumBlock(t), Specs{
		TargetCellThicknesses: Thicknesses{Cartesian: 0.2, Radial: 0.1, Azimuthal: 0.3},
	})
	require.NoError(t, err)

	module := singleModule(t, core)
	assert.InDelta(t, 5.08, module.PitchX(), 1e-9, "subdivision preserves the pitch")

	corner, ok := module.PinMap[0][0].(*mesh.RectPin)
	require.True(t, ok)
	for _, w := range corner.XThicknesses {
		assert.LessOrEqual(t, w, 0.2+1e-12)
	}

	var radial *mesh.RadialPin
	for _, row := range module.PinMap {
		for _, pin := range row {
			if p, ok := pin.(*mesh.RadialPin); ok {
				radial = p
			}
		}
	}
	require.NotNil(t, radial, "stadium caps build radial pins")
	for _, zone := range radial.Zones {
		assert.Greater(t, zone.AzimuthalDivisions, 1, "azimuthal target forces ring division")
	}
}

func TestSpecsValidation(t *testing.T) {
	b := New(nil)
	_, err := b.Build(stadiumBlock(t), Specs{Height: -1})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	_, err = b.Build(stadiumBlock(t), Specs{TargetCellThicknesses: Thicknesses{Cartesian: -0.5}})
	require.Error(t, err)
	assert.True(t, errdefs.Is(err, errdefs.CodeConfiguration))

	_, err = b.Build(stadiumBlock(t), Specs{Height: math.NaN()})
	require.Error(t, err)
}
