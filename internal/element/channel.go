package element

import (
	"strings"

	"github.com/piwi3910/PrismCut/internal/csg"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
)

// Face indexes the four channel slots of a block.
type Face int

const (
	North Face = iota
	South
	East
	West
)

// AllFaces lists the faces in channel-slot order.
var AllFaces = [4]Face{North, South, East, West}

var faceNames = [4]string{"N", "S", "E", "W"}

func (f Face) String() string {
	if f < North || f > West {
		return "invalid"
	}
	return faceNames[f]
}

// ParseFace reads a face from its short or long compass name.
func ParseFace(s string) (Face, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "NORTH":
		return North, nil
	case "S", "SOUTH":
		return South, nil
	case "E", "EAST":
		return East, nil
	case "W", "WEST":
		return West, nil
	default:
		return 0, errdefs.New(errdefs.CodeConfiguration, "face must be one of N, S, E, W, got %q", s)
	}
}

// ChannelKind tags the two channel variants.
type ChannelKind string

const (
	FuelKind    ChannelKind = "fuel"
	ControlKind ChannelKind = "control"
)

// Channel is a flow channel cut into a block face: a shape, the material
// flowing through it, and an optional rotation of the shape about its own
// center. Placement relative to a block is added by PlaceChannel.
type Channel struct {
	name          string
	kind          ChannelKind
	shape         geom.Shape
	mat           material.Material
	shapeRotation float64 // degrees
}

// NewFuelChannel returns a fuel channel. The shape must be a Stadium, Circle,
// or Rectangle; rectangular channels must be at least as wide as they are
// tall.
func NewFuelChannel(name string, shape geom.Shape, mat material.Material) (Channel, error) {
	switch s := shape.(type) {
	case geom.Stadium, geom.Circle:
	case geom.Rectangle:
		if s.W < s.H {
			return Channel{}, errdefs.New(errdefs.CodeConfiguration,
				"rectangular fuel channel must be wider than tall: width = %g, height = %g", s.W, s.H)
		}
	default:
		return Channel{}, errdefs.New(errdefs.CodeConfiguration,
			"fuel channel shape must be a stadium, circle, or rectangle, got %T", shape)
	}
	if name == "" {
		name = defaultName("fuel_channel")
	}
	return Channel{name: name, kind: FuelKind, shape: shape, mat: mat}, nil
}

// NewControlChannel returns a control-rod channel. The shape must be a
// Circle.
func NewControlChannel(name string, shape geom.Shape, mat material.Material) (Channel, error) {
	if _, ok := shape.(geom.Circle); !ok {
		return Channel{}, errdefs.New(errdefs.CodeConfiguration,
			"control channel shape must be a circle, got %T", shape)
	}
	if name == "" {
		name = defaultName("control_channel")
	}
	return Channel{name: name, kind: ControlKind, shape: shape, mat: mat}, nil
}

func (c Channel) Name() string                { return c.name }
func (c Channel) Kind() ChannelKind           { return c.kind }
func (c Channel) Shape() geom.Shape           { return c.shape }
func (c Channel) Material() material.Material { return c.mat }
func (c Channel) ShapeRotation() float64      { return c.shapeRotation }

// WithShapeRotation returns a copy of the channel with the shape rotated
// about its own center by the given angle in degrees.
func (c Channel) WithShapeRotation(degrees float64) Channel {
	c.shapeRotation = degrees
	return c
}

// Key is the channel's content token; the name does not participate.
func (c Channel) Key() string {
	return string(c.kind) + "_channel(" + c.shape.Key() +
		";" + c.mat.Key() +
		";rot=" + geom.RoundKey(c.shapeRotation) + ")"
}

// blockCenterRotations holds the rotation about the block center applied to
// each face's channel, indexed [N, S, E, W].
var blockCenterRotations = [4]float64{180, 0, 90, 270}

// PlacedChannel is a channel bound to a block face: the channel plus its
// distance from the block center and rotation about the block center. The
// placement transform translates the shape along -Y by the distance, then
// rotates about the block center.
type PlacedChannel struct {
	Channel
	face                     Face
	distanceFromBlockCenter  float64
	rotationAboutBlockCenter float64 // degrees
}

// PlaceChannel binds a channel to a block face. Fuel channels sit centered
// on the block edge (distance pitch/2); control channels sit at the center
// of the adjacent block cell (distance pitch). A control channel whose outer
// radius does not reach past the block edge would fall entirely outside the
// block and is rejected.
func PlaceChannel(ch Channel, face Face, pitch float64) (PlacedChannel, error) {
	if face < North || face > West {
		return PlacedChannel{}, errdefs.New(errdefs.CodeConfiguration, "invalid face index %d", int(face))
	}
	if pitch <= 0 {
		return PlacedChannel{}, errdefs.New(errdefs.CodeConfiguration, "block pitch must be positive, got %g", pitch)
	}

	distance := pitch / 2
	if ch.kind == ControlKind {
		distance = pitch
		if ch.shape.OuterRadius() <= pitch/2 {
			return PlacedChannel{}, errdefs.New(errdefs.CodeGeometricConstraint,
				"control channel falls entirely outside the block: channel radius = %g, block pitch = %g",
				ch.shape.OuterRadius(), pitch)
		}
	}

	return PlacedChannel{
		Channel:                  ch,
		face:                     face,
		distanceFromBlockCenter:  distance,
		rotationAboutBlockCenter: blockCenterRotations[face],
	}, nil
}

func (p PlacedChannel) Face() Face                        { return p.face }
func (p PlacedChannel) DistanceFromBlockCenter() float64  { return p.distanceFromBlockCenter }
func (p PlacedChannel) RotationAboutBlockCenter() float64 { return p.rotationAboutBlockCenter }

// Region is the channel's solid region in the block frame: the shape region
// rotated about its own center, translated along -Y by the placement
// distance, then rotated about the block center.
func (p PlacedChannel) Region() csg.Region {
	r := p.shape.Region()
	r = csg.RotateZ(r, p.shapeRotation)
	r = csg.Translate(r, 0, -p.distanceFromBlockCenter)
	r = csg.RotateZ(r, p.rotationAboutBlockCenter)
	return r
}

// Cell wraps the placed region with the channel material.
func (p PlacedChannel) Cell() csg.Cell {
	return csg.Cell{Name: p.name, Material: p.mat, Region: p.Region()}
}

func (p PlacedChannel) Key() string {
	return p.Channel.Key() +
		"@(d=" + geom.RoundKey(p.distanceFromBlockCenter) +
		";R=" + geom.RoundKey(p.rotationAboutBlockCenter) + ")"
}
