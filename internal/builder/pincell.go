package builder

import (
	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// buildPinCell builds a cylindrical pincell as one radial pin, or four
// quadrant pins when asked to. The pin box defaults to the square
// circumscribing the outermost zone, shifted so the rings sit at the
// pincell's origin offset.
func (b *Builder) buildPinCell(p *element.PinCell, specs Specs) (*mesh.Core, error) {
	if !p.IsCylindrical() {
		return nil, errdefs.New(errdefs.CodeUnsupportedCombination,
			"pincell %q holds non-circular zones; only cylindrical pincells have a radial mesh representation", p.Name())
	}

	zones := p.Zones()
	outerRadius := zones[len(zones)-1].Shape.OuterRadius()

	materials := make([]mesh.Material, 0, len(zones)+1)
	var radii []float64
	prev := 0.0
	for _, zone := range zones {
		r := zone.Shape.InnerRadius()
		radii = append(radii, r-prev)
		prev = r
		materials = append(materials, b.resolver.Resolve(zone.Material))
	}
	materials = append(materials, b.resolver.Resolve(p.OuterMaterial()))

	bounds := mesh.Bounds{
		XMin: -outerRadius - p.X0(), XMax: outerRadius - p.X0(),
		YMin: -outerRadius - p.Y0(), YMax: outerRadius - p.Y0(),
	}

	buildModule := func(box mesh.Bounds) (*mesh.Module, error) {
		pin, err := mesh.BuildRadialPin(box, radii, []float64{specs.Height}, materials,
			specs.TargetCellThicknesses.Radial, specs.TargetCellThicknesses.Azimuthal)
		if err != nil {
			return nil, err
		}
		return mesh.NewModule(1, [][]mesh.Pin{{pin}})
	}

	var moduleMap [][]*mesh.Module
	if specs.DivideIntoQuadrants {
		midX := (bounds.XMin + bounds.XMax) / 2
		midY := (bounds.YMin + bounds.YMax) / 2
		boxes := [2][2]mesh.Bounds{
			{
				{XMin: bounds.XMin, XMax: midX, YMin: midY, YMax: bounds.YMax},
				{XMin: midX, XMax: bounds.XMax, YMin: midY, YMax: bounds.YMax},
			},
			{
				{XMin: bounds.XMin, XMax: midX, YMin: bounds.YMin, YMax: midY},
				{XMin: midX, XMax: bounds.XMax, YMin: bounds.YMin, YMax: midY},
			},
		}
		moduleMap = make([][]*mesh.Module, 2)
		for r := range boxes {
			moduleMap[r] = make([]*mesh.Module, 2)
			for c := range boxes[r] {
				module, err := buildModule(boxes[r][c])
				if err != nil {
					return nil, err
				}
				moduleMap[r][c] = module
			}
		}
	} else {
		module, err := buildModule(bounds)
		if err != nil {
			return nil, err
		}
		moduleMap = [][]*mesh.Module{{module}}
	}

	return wrapCore(moduleMap)
}

// buildInfiniteMedium builds an infinite medium as a unit square of its
// material, split into quadrants when asked to.
func (b *Builder) buildInfiniteMedium(m *element.InfiniteMedium, specs Specs) (*mesh.Core, error) {
	mat := b.resolver.Resolve(m.Material())

	buildModule := func(side float64) (*mesh.Module, error) {
		pin, err := mesh.BuildRectPin([]float64{side}, []float64{side}, []float64{specs.Height},
			[]mesh.Material{mat},
			specs.TargetCellThicknesses.Cartesian, specs.TargetCellThicknesses.Cartesian)
		if err != nil {
			return nil, err
		}
		return mesh.NewModule(1, [][]mesh.Pin{{pin}})
	}

	var moduleMap [][]*mesh.Module
	if specs.DivideIntoQuadrants {
		moduleMap = make([][]*mesh.Module, 2)
		for r := 0; r < 2; r++ {
			moduleMap[r] = make([]*mesh.Module, 2)
			for c := 0; c < 2; c++ {
				module, err := buildModule(0.5)
				if err != nil {
					return nil, err
				}
				moduleMap[r][c] = module
			}
		}
	} else {
		module, err := buildModule(1.0)
		if err != nil {
			return nil, err
		}
		moduleMap = [][]*mesh.Module{{module}}
	}

	return wrapCore(moduleMap)
}

// wrapCore lifts a module map through the Lattice/Assembly/Core hierarchy.
func wrapCore(moduleMap [][]*mesh.Module) (*mesh.Core, error) {
	lattice, err := mesh.NewLattice(moduleMap)
	if err != nil {
		return nil, err
	}
	assembly, err := mesh.NewAssembly([]*mesh.Lattice{lattice})
	if err != nil {
		return nil, err
	}
	return mesh.NewCore([][]*mesh.Assembly{{assembly}})
}
