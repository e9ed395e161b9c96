package element

import (
	"strings"

	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
)

// Thimble is the tube a control rod rides in: an outer radius, a wall
// thickness, the length it extends down from the top of its channel, and the
// wall and fill materials.
type Thimble struct {
	outerRadius  float64 // cm
	thickness    float64 // cm
	length       float64 // cm
	wallMaterial material.Material
	fillMaterial material.Material
}

// NewThimble validates and constructs a thimble.
func NewThimble(outerRadius, thickness, length float64, wallMaterial, fillMaterial material.Material) (Thimble, error) {
	if outerRadius <= 0 {
		return Thimble{}, errdefs.New(errdefs.CodeConfiguration, "thimble outer radius must be positive, got %g", outerRadius)
	}
	if thickness <= 0 {
		return Thimble{}, errdefs.New(errdefs.CodeConfiguration, "thimble wall thickness must be positive, got %g", thickness)
	}
	if thickness >= outerRadius {
		return Thimble{}, errdefs.New(errdefs.CodeConfiguration,
			"thimble wall thickness must be below the outer radius: thickness = %g, outer radius = %g",
			thickness, outerRadius)
	}
	if length <= 0 {
		return Thimble{}, errdefs.New(errdefs.CodeConfiguration, "thimble length must be positive, got %g", length)
	}
	return Thimble{
		outerRadius:  outerRadius,
		thickness:    thickness,
		length:       length,
		wallMaterial: wallMaterial,
		fillMaterial: fillMaterial,
	}, nil
}

func (t Thimble) OuterRadius() float64            { return t.outerRadius }
func (t Thimble) InnerRadius() float64            { return t.outerRadius - t.thickness }
func (t Thimble) Thickness() float64              { return t.thickness }
func (t Thimble) Length() float64                 { return t.length }
func (t Thimble) WallMaterial() material.Material { return t.wallMaterial }
func (t Thimble) FillMaterial() material.Material { return t.fillMaterial }

func (t Thimble) Key() string {
	return "thimble(r=" + geom.RoundKey(t.outerRadius) +
		";t=" + geom.RoundKey(t.thickness) +
		";l=" + geom.RoundKey(t.length) +
		";wall=" + t.wallMaterial.Key() +
		";fill=" + t.fillMaterial.Key() + ")"
}

// ControlRod is the rod itself: concentric material regions listed innermost
// to outermost, and how far the rod is inserted into its thimble as a
// fraction of the thimble length.
type ControlRod struct {
	radii             []float64 // cm, strictly ascending
	materials         []material.Material
	insertionFraction float64
}

// NewControlRod validates and constructs a control rod.
func NewControlRod(radii []float64, materials []material.Material, insertionFraction float64) (ControlRod, error) {
	if len(radii) == 0 {
		return ControlRod{}, errdefs.New(errdefs.CodeConfiguration, "control rod requires at least one region")
	}
	if len(radii) != len(materials) {
		return ControlRod{}, errdefs.New(errdefs.CodeConfiguration,
			"control rod requires one material per region: %d radii, %d materials", len(radii), len(materials))
	}
	for i, r := range radii {
		if r <= 0 {
			return ControlRod{}, errdefs.New(errdefs.CodeConfiguration, "control rod radii must be positive, got %g", r)
		}
		if i > 0 && radii[i-1] >= r {
			return ControlRod{}, errdefs.New(errdefs.CodeConfiguration,
				"control rod radii must be strictly ascending: radii[%d] = %g, radii[%d] = %g",
				i-1, radii[i-1], i, r)
		}
	}
	if insertionFraction < 0 || insertionFraction > 1 {
		return ControlRod{}, errdefs.New(errdefs.CodeConfiguration,
			"insertion fraction must be within [0, 1], got %g", insertionFraction)
	}

	rod := ControlRod{insertionFraction: insertionFraction}
	rod.radii = append(rod.radii, radii...)
	rod.materials = append(rod.materials, materials...)
	return rod, nil
}

func (r ControlRod) InsertionFraction() float64 { return r.insertionFraction }

// Radii returns the region radii innermost first.
func (r ControlRod) Radii() []float64 { return append([]float64(nil), r.radii...) }

// Materials returns the region materials innermost first.
func (r ControlRod) Materials() []material.Material {
	return append([]material.Material(nil), r.materials...)
}

// OuterRadius is the radius of the outermost rod region.
func (r ControlRod) OuterRadius() float64 { return r.radii[len(r.radii)-1] }

func (r ControlRod) Key() string {
	var sb strings.Builder
	sb.WriteString("control_rod(f=")
	sb.WriteString(geom.RoundKey(r.insertionFraction))
	for i := range r.radii {
		sb.WriteString(";")
		sb.WriteString(geom.RoundKey(r.radii[i]))
		sb.WriteString(":")
		sb.WriteString(r.materials[i].Key())
	}
	sb.WriteString(")")
	return sb.String()
}

// ControlRodChannel is the axial column a control rod occupies: a channel of
// the given length, a thimble hanging from its top, and the rod inserted
// into the thimble.
type ControlRodChannel struct {
	name         string
	thimble      Thimble
	rod          ControlRod
	length       float64 // cm
	fillMaterial material.Material
}

// NewControlRodChannel validates and constructs a control-rod channel. The
// channel must be at least as long as its thimble, and the rod must fit
// inside the thimble bore.
func NewControlRodChannel(name string, thimble Thimble, rod ControlRod, length float64,
	fillMaterial material.Material) (*ControlRodChannel, error) {

	if length <= 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "channel length must be positive, got %g", length)
	}
	if length < thimble.length {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"channel must be at least as long as its thimble: length = %g, thimble length = %g",
			length, thimble.length)
	}
	if rod.OuterRadius() >= thimble.InnerRadius() {
		return nil, errdefs.New(errdefs.CodeGeometricConstraint,
			"control rod does not fit inside the thimble: rod radius = %g, thimble inner radius = %g",
			rod.OuterRadius(), thimble.InnerRadius())
	}
	if name == "" {
		name = defaultName("control_rod_channel")
	}

	return &ControlRodChannel{
		name:         name,
		thimble:      thimble,
		rod:          rod,
		length:       length,
		fillMaterial: fillMaterial,
	}, nil
}

func (c *ControlRodChannel) Name() string                    { return c.name }
func (c *ControlRodChannel) Thimble() Thimble                { return c.thimble }
func (c *ControlRodChannel) Rod() ControlRod                 { return c.rod }
func (c *ControlRodChannel) Length() float64                 { return c.length }
func (c *ControlRodChannel) FillMaterial() material.Material { return c.fillMaterial }

func (c *ControlRodChannel) Key() string {
	return "control_rod_channel(" + c.thimble.Key() +
		";" + c.rod.Key() +
		";l=" + geom.RoundKey(c.length) +
		";fill=" + c.fillMaterial.Key() + ")"
}

// AsStack lowers the channel to a stack of cylindrical pincell sections:
// the empty channel below the thimble tip, the empty span of the thimble,
// and the span holding the inserted rod. Zero-length sections are omitted.
func (c *ControlRodChannel) AsStack(bottomPos float64) (*Stack, error) {
	thimbleRadii := []float64{c.thimble.InnerRadius(), c.thimble.OuterRadius()}

	emptyChannelMaterials := []material.Material{c.fillMaterial, c.fillMaterial, c.fillMaterial}
	thimbleMaterials := []material.Material{c.thimble.fillMaterial, c.thimble.wallMaterial, c.fillMaterial}

	emptySection, err := NewCylindricalPinCell(c.name+"_empty", thimbleRadii, emptyChannelMaterials)
	if err != nil {
		return nil, err
	}
	thimbleSection, err := NewCylindricalPinCell(c.name+"_thimble", thimbleRadii, thimbleMaterials)
	if err != nil {
		return nil, err
	}
	rodSection, err := NewCylindricalPinCell(c.name+"_rod",
		append(c.rod.Radii(), thimbleRadii...),
		append(c.rod.Materials(), thimbleMaterials...))
	if err != nil {
		return nil, err
	}

	thimbleTipPos := c.length - c.thimble.length
	rodLength := c.thimble.length * c.rod.insertionFraction
	emptyThimbleLength := c.thimble.length - rodLength

	var segments []Segment
	for _, part := range []struct {
		el     Element
		length float64
	}{
		{emptySection, thimbleTipPos},
		{thimbleSection, emptyThimbleLength},
		{rodSection, rodLength},
	} {
		if part.length <= 0 {
			continue
		}
		segment, err := NewSegment(part.el, part.length)
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}

	return NewStack(c.name, segments, bottomPos)
}
