package builder

import (
	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// buildStack builds each distinct segment element once, extrudes it to the
// segment length, and concatenates the axial slices bottom to top into one
// assembly. Segments longer than the target axial thickness are cut into
// equal slabs.
func (b *Builder) buildStack(s *element.Stack, specs Specs) (*mesh.Core, error) {
	segments := s.Segments()

	elements := make([]element.Element, len(segments))
	for i, segment := range segments {
		elements[i] = segment.Element()
	}
	cores, err := b.buildUnique(elements, specs)
	if err != nil {
		return nil, err
	}

	var lattices []*mesh.Lattice
	for i, segment := range segments {
		core := cores[segment.Element().Key()]
		lattice, err := singleLattice(core, "stack %q segment %d (%s)", s.Name(), i, segment.Element().Name())
		if err != nil {
			return nil, err
		}

		n := int(segment.Length() / specs.TargetAxialThickness)
		if n < 1 {
			n = 1
		}
		slab, err := lattice.WithHeight(segment.Length() / float64(n))
		if err != nil {
			return nil, err
		}
		for k := 0; k < n; k++ {
			lattices = append(lattices, slab)
		}
	}

	assembly, err := mesh.NewAssembly(lattices)
	if err != nil {
		return nil, err
	}
	return mesh.NewCore([][]*mesh.Assembly{{assembly}})
}

// buildStringer lowers the stringer to its single-segment stack.
func (b *Builder) buildStringer(s *element.Stringer, specs Specs) (*mesh.Core, error) {
	stack, err := s.AsStack()
	if err != nil {
		return nil, err
	}
	return b.Build(stack, specs)
}

// buildControlRodChannel lowers the channel column to its section stack.
func (b *Builder) buildControlRodChannel(c *element.ControlRodChannel, specs Specs) (*mesh.Core, error) {
	stack, err := c.AsStack(0)
	if err != nil {
		return nil, err
	}
	return b.Build(stack, specs)
}

// singleLattice extracts the one lattice of a 2D radial build. Cores holding
// more than one assembly or lattice cannot be stacked or placed in a grid.
func singleLattice(core *mesh.Core, context string, args ...any) (*mesh.Lattice, error) {
	if len(core.AssemblyMap) != 1 || len(core.AssemblyMap[0]) != 1 || core.AssemblyMap[0][0] == nil {
		return nil, errdefs.New(errdefs.CodeUnsupportedCombination,
			context+": built mesh holds multiple assemblies", args...)
	}
	assembly := core.AssemblyMap[0][0]
	if len(assembly.Lattices) != 1 {
		return nil, errdefs.New(errdefs.CodeUnsupportedCombination,
			context+": built mesh is not a 2D radial geometry", args...)
	}
	return assembly.Lattices[0], nil
}
