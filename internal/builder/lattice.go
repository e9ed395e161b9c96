package builder

import (
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// buildUnique builds each distinct element of the list once and returns the
// cores keyed by element content key. With more than one worker the distinct
// builds run on an errgroup pool; results are merged by key, so the outcome
// does not depend on completion order.
func (b *Builder) buildUnique(elements []element.Element, specs Specs) (map[string]*mesh.Core, error) {
	var distinct []element.Element
	seen := make(map[string]bool)
	for _, el := range elements {
		if el == nil || seen[el.Key()] {
			continue
		}
		seen[el.Key()] = true
		distinct = append(distinct, el)
	}

	cores := make([]*mesh.Core, len(distinct))
	if specs.Workers > 1 && len(distinct) > 1 {
		var group errgroup.Group
		group.SetLimit(specs.Workers)
		for i, el := range distinct {
			group.Go(func() error {
				core, err := b.Build(el, specs)
				if err != nil {
					return err
				}
				cores[i] = core
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, el := range distinct {
			core, err := b.Build(el, specs)
			if err != nil {
				return nil, err
			}
			cores[i] = core
		}
	}

	results := make(map[string]*mesh.Core, len(distinct))
	for i, el := range distinct {
		results[el.Key()] = cores[i]
	}
	return results, nil
}

// buildRectLattice builds every distinct lattice entry once and places the
// built assemblies into the core map by position. Every entry must build to a
// single assembly whose pitch matches the lattice pitch; empty lattice cells
// become empty core positions.
func (b *Builder) buildRectLattice(l *element.RectLattice, specs Specs) (*mesh.Core, error) {
	grid := l.Elements()

	var entries []element.Element
	for _, row := range grid {
		entries = append(entries, row...)
	}
	cores, err := b.buildUnique(entries, specs)
	if err != nil {
		return nil, err
	}

	assemblies := make(map[string]*mesh.Assembly, len(cores))
	for r, row := range grid {
		for c, entry := range row {
			if entry == nil {
				continue
			}
			key := entry.Key()
			if _, done := assemblies[key]; done {
				continue
			}
			core := cores[key]
			if len(core.AssemblyMap) != 1 || len(core.AssemblyMap[0]) != 1 || core.AssemblyMap[0][0] == nil {
				return nil, errdefs.New(errdefs.CodeUnsupportedCombination,
					"lattice %q row %d column %d: %s builds to multiple assemblies",
					l.Name(), r, c, entry.Name())
			}
			assembly := core.AssemblyMap[0][0]

			if !geom.Close(assembly.PitchX(), l.PitchX()) {
				return nil, errdefs.New(errdefs.CodeGeometricConstraint,
					"lattice %q row %d column %d: %s x-pitch %g does not match lattice x-pitch %g",
					l.Name(), r, c, entry.Name(), assembly.PitchX(), l.PitchX())
			}
			if !geom.Close(assembly.PitchY(), l.PitchY()) {
				return nil, errdefs.New(errdefs.CodeGeometricConstraint,
					"lattice %q row %d column %d: %s y-pitch %g does not match lattice y-pitch %g",
					l.Name(), r, c, entry.Name(), assembly.PitchY(), l.PitchY())
			}
			assemblies[key] = assembly
		}
	}

	assemblyMap := make([][]*mesh.Assembly, len(grid))
	for r, row := range grid {
		assemblyMap[r] = make([]*mesh.Assembly, len(row))
		for c, entry := range row {
			if entry != nil {
				assemblyMap[r][c] = assemblies[entry.Key()]
			}
		}
	}

	return mesh.NewCore(assemblyMap)
}
