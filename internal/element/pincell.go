package element

import (
	"strings"

	"github.com/piwi3910/PrismCut/internal/csg"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
)

// Zone is one concentric region of a pincell: a shape, the material filling
// it, and a rotation of the shape about the pin origin in degrees.
type Zone struct {
	Name     string
	Shape    geom.Shape
	Material material.Material
	Rotation float64 // degrees
}

// Key is the zone's content token; the name does not participate.
func (z Zone) Key() string {
	return "zone(" + z.Shape.Key() + ";" + z.Material.Key() +
		";rot=" + geom.RoundKey(z.Rotation) + ")"
}

// PinCell is a pin of concentric shapes. The zones are ordered innermost to
// outermost and must not intersect: each zone's outer radius stays strictly
// below the next zone's inner radius.
type PinCell struct {
	name          string
	zones         []Zone
	outerMaterial material.Material
	x0, y0        float64
}

// NewPinCell constructs a pincell from its zones and the material
// surrounding them, with the pin origin at (x0, y0).
func NewPinCell(name string, zones []Zone, outerMaterial material.Material, x0, y0 float64) (*PinCell, error) {
	if len(zones) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "pincell requires at least one zone")
	}
	for i, zone := range zones {
		if zone.Shape == nil {
			return nil, errdefs.New(errdefs.CodeConfiguration, "pincell zone %d has no shape", i)
		}
		if i == 0 {
			continue
		}
		prevOuter := zones[i-1].Shape.OuterRadius()
		inner := zone.Shape.InnerRadius()
		if prevOuter >= inner {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"pincell zone boundaries intersect: zone %d outer radius = %g, zone %d inner radius = %g",
				i-1, prevOuter, i, inner)
		}
	}
	if name == "" {
		name = defaultName("pincell")
	}

	p := &PinCell{name: name, outerMaterial: outerMaterial, x0: x0, y0: y0}
	p.zones = append(p.zones, zones...)
	return p, nil
}

// NewCylindricalPinCell constructs an all-circle pincell from region radii
// (innermost to outermost, strictly ascending) and materials. The materials
// list carries one more entry than the radii: the last material surrounds
// the cylinders.
func NewCylindricalPinCell(name string, radii []float64, materials []material.Material) (*PinCell, error) {
	if len(radii) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "cylindrical pincell requires at least one radius")
	}
	if len(materials) != len(radii)+1 {
		return nil, errdefs.New(errdefs.CodeConfiguration,
			"cylindrical pincell requires len(radii)+1 materials: %d radii, %d materials",
			len(radii), len(materials))
	}

	zones := make([]Zone, 0, len(radii))
	for i, r := range radii {
		circle, err := geom.NewCircle(r)
		if err != nil {
			return nil, err
		}
		zones = append(zones, Zone{Shape: circle, Material: materials[i]})
	}

	return NewPinCell(name, zones, materials[len(materials)-1], 0, 0)
}

func (p *PinCell) Name() string                     { return p.name }
func (p *PinCell) OuterMaterial() material.Material { return p.outerMaterial }
func (p *PinCell) X0() float64                      { return p.x0 }
func (p *PinCell) Y0() float64                      { return p.y0 }

// Zones returns the zones innermost first.
func (p *PinCell) Zones() []Zone {
	out := make([]Zone, len(p.zones))
	copy(out, p.zones)
	return out
}

// IsCylindrical reports whether every zone is a circle, which is what the
// radial mesh builder requires.
func (p *PinCell) IsCylindrical() bool {
	for _, zone := range p.zones {
		if _, ok := zone.Shape.(geom.Circle); !ok {
			return false
		}
	}
	return true
}

func (p *PinCell) Key() string {
	var sb strings.Builder
	sb.WriteString("pincell(outer=")
	sb.WriteString(p.outerMaterial.Key())
	sb.WriteString(";x0=")
	sb.WriteString(geom.RoundKey(p.x0))
	sb.WriteString(";y0=")
	sb.WriteString(geom.RoundKey(p.y0))
	for _, zone := range p.zones {
		sb.WriteString(";")
		sb.WriteString(zone.Key())
	}
	sb.WriteString(")")
	return sb.String()
}

// Universe is the pincell's CSG view: each zone region minus the regions
// inside it, and an outer cell covering everything beyond the zones.
func (p *PinCell) Universe() *csg.Universe {
	var cells []csg.Cell
	var inner []csg.Region
	for _, zone := range p.zones {
		base := zone.Shape.Region()
		base = csg.RotateZ(base, zone.Rotation)
		base = csg.Translate(base, p.x0, p.y0)

		region := base
		if len(inner) > 0 {
			parts := append([]csg.Region{base}, complements(inner)...)
			region = csg.Intersect(parts...)
		}
		inner = append(inner, base)
		cells = append(cells, csg.Cell{Name: zone.Name, Material: zone.Material, Region: region})
	}

	outer := csg.Intersect(complements(inner)...)
	cells = append(cells, csg.Cell{Name: "outer", Material: p.outerMaterial, Region: outer})

	return &csg.Universe{Name: p.name, Cells: cells}
}

func complements(regions []csg.Region) []csg.Region {
	out := make([]csg.Region, len(regions))
	for i, r := range regions {
		out[i] = csg.Complement(r)
	}
	return out
}
