package builder

import (
	"math"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// rectPinSpec is one rectangular channel-pin layout: coarse slab thicknesses
// per axis and the coarse material grid, top row first.
type rectPinSpec struct {
	x, y      []float64
	materials []mesh.Material
}

// fuelChannelPins builds the cap and flat pins of one fuel channel. A cap
// pin covers the quarter of the channel nearest a block corner; a flat pin
// covers half of the straight run along the face.
type fuelChannelPins struct {
	specs     Specs
	shape     geom.Shape
	hasFlats  bool
	capRect   map[quadrant]rectPinSpec
	capBounds map[quadrant]mesh.Bounds
	capMats   []mesh.Material
	capRadii  []float64
	flat      map[orientation]map[quadrant]rectPinSpec
}

// newFuelChannelPins derives the per-quadrant pin layouts for a fuel channel.
// The channel half-thickness must fit within the cap cell.
func newFuelChannelPins(ch *element.PlacedChannel, pitch float64, dims BlockDimensions,
	prism mesh.Material, resolver *material.Resolver, specs Specs) (*fuelChannelPins, error) {

	ct := ch.Shape().InnerRadius()
	pt := dims.CapCellLength - ct
	if ct > dims.CapCellLength {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"fuel channel does not fit within the cap cell: channel thickness = %g, cap cell length = %g",
			ct, dims.CapCellLength)
	}

	ccl := dims.CapCellLength
	hfl := dims.HalfFlatLength()
	pm := prism
	cm := resolver.Resolve(ch.Material())

	f := &fuelChannelPins{
		specs:    specs,
		shape:    ch.Shape(),
		hasFlats: dims.FlatLength > 0,
	}

	if _, isRect := ch.Shape().(geom.Rectangle); isRect {
		f.capRect = map[quadrant]rectPinSpec{
			quadNE: {x: []float64{ct, pt}, y: []float64{ct, pt}, materials: []mesh.Material{pm, pm, cm, pm}},
			quadSE: {x: []float64{ct, pt}, y: []float64{pt, ct}, materials: []mesh.Material{cm, pm, pm, pm}},
			quadSW: {x: []float64{pt, ct}, y: []float64{pt, ct}, materials: []mesh.Material{pm, cm, pm, pm}},
			quadNW: {x: []float64{pt, ct}, y: []float64{ct, pt}, materials: []mesh.Material{pm, pm, pm, cm}},
		}
	} else {
		f.capBounds = map[quadrant]mesh.Bounds{
			quadNE: {XMin: 0, XMax: ccl, YMin: 0, YMax: ccl},
			quadSE: {XMin: 0, XMax: ccl, YMin: -ccl, YMax: 0},
			quadSW: {XMin: -ccl, XMax: 0, YMin: -ccl, YMax: 0},
			quadNW: {XMin: -ccl, XMax: 0, YMin: 0, YMax: ccl},
		}
		f.capRadii = []float64{ct, pt}
		f.capMats = []mesh.Material{cm, pm, pm}
	}

	f.flat = map[orientation]map[quadrant]rectPinSpec{
		vertical: {
			quadNE: {x: []float64{ct, pt}, y: []float64{hfl}, materials: []mesh.Material{cm, pm}},
			quadSE: {x: []float64{ct, pt}, y: []float64{hfl}, materials: []mesh.Material{cm, pm}},
			quadSW: {x: []float64{pt, ct}, y: []float64{hfl}, materials: []mesh.Material{pm, cm}},
			quadNW: {x: []float64{pt, ct}, y: []float64{hfl}, materials: []mesh.Material{pm, cm}},
		},
		horizontal: {
			quadNE: {x: []float64{hfl}, y: []float64{ct, pt}, materials: []mesh.Material{pm, cm}},
			quadSE: {x: []float64{hfl}, y: []float64{pt, ct}, materials: []mesh.Material{cm, pm}},
			quadSW: {x: []float64{hfl}, y: []float64{pt, ct}, materials: []mesh.Material{cm, pm}},
			quadNW: {x: []float64{hfl}, y: []float64{ct, pt}, materials: []mesh.Material{pm, cm}},
		},
	}

	return f, nil
}

func (f *fuelChannelPins) buildPin(o orientation, pt pinType, q quadrant) (mesh.Pin, error) {
	cartesian := f.specs.TargetCellThicknesses.Cartesian

	if pt == capPin {
		if _, isRect := f.shape.(geom.Rectangle); isRect {
			spec := f.capRect[q]
			return mesh.BuildRectPin(spec.x, spec.y, []float64{f.specs.Height},
				spec.materials, cartesian, cartesian)
		}
		return mesh.BuildRadialPin(f.capBounds[q], f.capRadii, []float64{f.specs.Height},
			f.capMats, f.specs.TargetCellThicknesses.Radial, f.specs.TargetCellThicknesses.Azimuthal)
	}

	if !f.hasFlats {
		return nil, nil
	}
	spec := f.flat[o][q]
	return mesh.BuildRectPin(spec.x, spec.y, []float64{f.specs.Height},
		spec.materials, cartesian, cartesian)
}

// controlChannelPins builds the cap and flat pins of one control channel.
// Control channels sit a full pitch from the block center, so only the
// circular segment overhanging the face cuts into the block; each pin is a
// radial decomposition clipped to its box along the face.
type controlChannelPins struct {
	specs     Specs
	hasFlats  bool
	radii     []float64
	materials []mesh.Material
	capBounds map[orientation]map[quadrant]mesh.Bounds
	flats     map[orientation]map[quadrant]mesh.Bounds
}

// newControlChannelPins derives the pin boxes for a control channel and
// enforces the two clipping limits the decomposition imposes: the channel
// circle must stay within the cap-cell band beyond the face (the normal
// limit) and must not reach past the far corners of the flat boxes (the
// lateral limit).
func newControlChannelPins(ch *element.PlacedChannel, pitch float64, dims BlockDimensions,
	prism mesh.Material, resolver *material.Resolver, specs Specs) (*controlChannelPins, error) {

	hbp := pitch / 2
	hfl := dims.HalfFlatLength()
	ccl := dims.CapCellLength

	outer := ch.Shape().OuterRadius()
	normalLimit := hbp + ccl
	if outer > normalLimit {
		return nil, errdefs.New(errdefs.CodeGeometricConstraint,
			"control channel cut-out exceeds the normal clipping limit: channel radius = %g, limit = %g",
			outer, normalLimit)
	}
	lateralLimit := math.Sqrt(hbp*hbp + (hfl+ccl)*(hfl+ccl))
	if outer > lateralLimit {
		return nil, errdefs.New(errdefs.CodeGeometricConstraint,
			"control channel cut-out exceeds the lateral clipping limit: channel radius = %g, limit = %g",
			outer, lateralLimit)
	}

	pm := prism
	cm := resolver.Resolve(ch.Material())
	prismThickness := ccl - (ch.Shape().InnerRadius() - hbp)

	c := &controlChannelPins{
		specs:    specs,
		hasFlats: dims.FlatLength > 0,
	}
	for _, region := range []struct {
		thickness float64
		mat       mesh.Material
	}{
		{ch.Shape().InnerRadius(), cm},
		{prismThickness, pm},
	} {
		if region.thickness > 0 {
			c.radii = append(c.radii, region.thickness)
			c.materials = append(c.materials, region.mat)
		}
	}
	c.materials = append(c.materials, pm)

	c.capBounds = map[orientation]map[quadrant]mesh.Bounds{
		horizontal: {
			quadNE: {XMin: hfl, XMax: hfl + ccl, YMin: hbp, YMax: hbp + ccl},
			quadSE: {XMin: hfl, XMax: hfl + ccl, YMin: -hbp - ccl, YMax: -hbp},
			quadSW: {XMin: -hfl - ccl, XMax: -hfl, YMin: -hbp - ccl, YMax: -hbp},
			quadNW: {XMin: -hfl - ccl, XMax: -hfl, YMin: hbp, YMax: hbp + ccl},
		},
		vertical: {
			quadNE: {XMin: hbp, XMax: hbp + ccl, YMin: hfl, YMax: hfl + ccl},
			quadSE: {XMin: hbp, XMax: hbp + ccl, YMin: -hfl - ccl, YMax: -hfl},
			quadSW: {XMin: -hbp - ccl, XMax: -hbp, YMin: -hfl - ccl, YMax: -hfl},
			quadNW: {XMin: -hbp - ccl, XMax: -hbp, YMin: hfl, YMax: hfl + ccl},
		},
	}

	c.flats = map[orientation]map[quadrant]mesh.Bounds{
		vertical: {
			quadNE: {XMin: hbp, XMax: hbp + ccl, YMin: 0, YMax: hfl},
			quadSE: {XMin: hbp, XMax: hbp + ccl, YMin: -hfl, YMax: 0},
			quadSW: {XMin: -hbp - ccl, XMax: -hbp, YMin: -hfl, YMax: 0},
			quadNW: {XMin: -hbp - ccl, XMax: -hbp, YMin: 0, YMax: hfl},
		},
		horizontal: {
			quadNE: {XMin: 0, XMax: hfl, YMin: hbp, YMax: hbp + ccl},
			quadSE: {XMin: 0, XMax: hfl, YMin: -hbp - ccl, YMax: -hbp},
			quadSW: {XMin: -hfl, XMax: 0, YMin: -hbp - ccl, YMax: -hbp},
			quadNW: {XMin: -hfl, XMax: 0, YMin: hbp, YMax: hbp + ccl},
		},
	}

	return c, nil
}

func (c *controlChannelPins) buildPin(o orientation, pt pinType, q quadrant) (mesh.Pin, error) {
	bounds := c.capBounds[o][q]
	if pt == flatPin {
		if !c.hasFlats {
			return nil, nil
		}
		bounds = c.flats[o][q]
	}
	return mesh.BuildRadialPin(bounds, c.radii, []float64{c.specs.Height},
		c.materials, c.specs.TargetCellThicknesses.Radial, c.specs.TargetCellThicknesses.Azimuthal)
}
