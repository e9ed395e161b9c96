// Package builder turns geometry elements into structured deterministic
// transport meshes. The block decomposition is the heart of it: a block's
// square cross-section is partitioned into named prism and channel sub-cells,
// a pin is built for each, and the pins are assembled into one module or four
// quadrant modules wrapped in the Lattice/Assembly/Core hierarchy.
//
// Builds are pure functions of (element, specs) and are memoized by content
// hash, so repeated occurrences of the same sub-element in a composite yield
// the identical built mesh. Composite builders (stacks, lattices) run their
// unique sub-builds through a worker pool when asked to.
package builder

import (
	"math"

	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/errdefs"
	"github.com/piwi3910/PrismCut/internal/geom"
	"github.com/piwi3910/PrismCut/internal/material"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// Thicknesses holds the target cell thicknesses per subdivision kind: lateral
// cartesian length, radial thickness, and azimuthal arc length (cm). Zero
// values disable subdivision for that kind.
type Thicknesses struct {
	Cartesian float64 `json:"cartesian"`
	Radial    float64 `json:"radial"`
	Azimuthal float64 `json:"azimuthal"`
}

// Specs carries the build options applied to an element.
type Specs struct {
	// TargetCellThicknesses bounds the lateral cell sizes; cells are
	// subdivided until they fit.
	TargetCellThicknesses Thicknesses
	// Height is the axial extrusion height of 2D builds (cm). Defaults to 1.
	Height float64
	// TargetAxialThickness bounds the axial slab height of stack segments
	// (cm). Zero disables axial subdivision.
	TargetAxialThickness float64
	// DivideIntoQuadrants splits a block or pincell into four separately
	// addressable modules instead of one.
	DivideIntoQuadrants bool
	// Workers is the number of concurrent sub-element builds composite
	// builders may run. Values below 2 mean serial.
	Workers int
}

// withDefaults normalizes zero-valued options and validates the rest.
func (s Specs) withDefaults() (Specs, error) {
	if s.TargetCellThicknesses.Cartesian == 0 {
		s.TargetCellThicknesses.Cartesian = math.Inf(1)
	}
	if s.TargetCellThicknesses.Radial == 0 {
		s.TargetCellThicknesses.Radial = math.Inf(1)
	}
	if s.TargetCellThicknesses.Azimuthal == 0 {
		s.TargetCellThicknesses.Azimuthal = math.Inf(1)
	}
	if s.Height == 0 {
		s.Height = 1.0
	}
	if s.TargetAxialThickness == 0 {
		s.TargetAxialThickness = math.Inf(1)
	}

	for _, v := range []struct {
		name  string
		value float64
	}{
		{"cartesian", s.TargetCellThicknesses.Cartesian},
		{"radial", s.TargetCellThicknesses.Radial},
		{"azimuthal", s.TargetCellThicknesses.Azimuthal},
		{"axial", s.TargetAxialThickness},
	} {
		if v.value <= 0 || math.IsNaN(v.value) {
			return Specs{}, errdefs.New(errdefs.CodeConfiguration,
				"target %s cell thickness must be positive, got %g", v.name, v.value)
		}
	}
	if s.Height <= 0 || math.IsNaN(s.Height) || math.IsInf(s.Height, 0) {
		return Specs{}, errdefs.New(errdefs.CodeConfiguration, "build height must be positive, got %g", s.Height)
	}
	return s, nil
}

// Key is the content token of the options that shape the built mesh. Workers
/// does not participate: builds are deterministic regardless of concurrency.
func (s Specs) Key() string {
	quadrants := "0"
	if s.DivideIntoQuadrants {
		quadrants = "1"
	}
	return "specs(c=" + geom.RoundKey(s.TargetCellThicknesses.Cartesian) +
		";r=" + geom.RoundKey(s.TargetCellThicknesses.Radial) +
		";s=" + geom.RoundKey(s.TargetCellThicknesses.Azimuthal) +
		";h=" + geom.RoundKey(s.Height) +
		";z=" + geom.RoundKey(s.TargetAxialThickness) +
		";q=" + quadrants + ")"
}

// Builder builds meshes from elements, resolving materials through one shared
// resolver and memoizing every build by content hash. Builder is safe for
// concurrent use.
type Builder struct {
	resolver *material.Resolver
	cache    *Cache
}

// New returns a builder over the given material resolver. A nil resolver gets
// a fresh one.
func New(resolver *material.Resolver) *Builder {
	if resolver == nil {
		resolver = material.NewResolver()
	}
	return &Builder{resolver: resolver, cache: NewCache()}
}

// Resolver returns the builder's material resolver.
func (b *Builder) Resolver() *material.Resolver { return b.resolver }

// CacheStats reports the memo cache hit and miss counts.
func (b *Builder) CacheStats() CacheStats { return b.cache.Stats() }

// Build constructs the mesh core for an element. The element kinds the mesh
// backend can represent are enumerated here; anything else is an unsupported
// combination.
func (b *Builder) Build(el element.Element, specs Specs) (*mesh.Core, error) {
	if el == nil {
		return nil, errdefs.New(errdefs.CodeConfiguration, "no element to build")
	}
	specs, err := specs.withDefaults()
	if err != nil {
		return nil, err
	}

	key := cacheKey(el.Key(), specs.Key())
	if core, ok := b.cache.Get(key); ok {
		return core, nil
	}

	var core *mesh.Core
	switch e := el.(type) {
	case *element.Block:
		core, err = b.buildBlock(e, specs)
	case *element.PinCell:
		core, err = b.buildPinCell(e, specs)
	case *element.InfiniteMedium:
		core, err = b.buildInfiniteMedium(e, specs)
	case *element.Stack:
		core, err = b.buildStack(e, specs)
	case *element.RectLattice:
		core, err = b.buildRectLattice(e, specs)
	case *element.Stringer:
		core, err = b.buildStringer(e, specs)
	case *element.ControlRodChannel:
		core, err = b.buildControlRodChannel(e, specs)
	case *element.HexLattice:
		return nil, errdefs.New(errdefs.CodeUnsupportedCombination,
			"hexagonal lattice %q has no rectangular mesh representation", e.Name())
	default:
		return nil, errdefs.New(errdefs.CodeUnsupportedCombination, "no mesh builder for element type %T", el)
	}
	if err != nil {
		return nil, err
	}

	b.cache.Put(key, core)
	return core, nil
}
