package mesh

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PrismCut/internal/errdefs"
)

// Module is a rectangular grid of pins. All pins in a column must share an X
// pitch, all pins in a row must share a Y pitch, and all pins must share a
// height.
type Module struct {
	Symmetry int     // 1 = full module
	PinMap   [][]Pin // rows top-down

	colWidths  []float64
	rowHeights []float64
	height     float64
}

// NewModule validates the pin map and returns the module.
func NewModule(symmetry int, pinMap [][]Pin) (*Module, error) {
	if symmetry != 1 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "unsupported module symmetry %d", symmetry)
	}
	if len(pinMap) == 0 || len(pinMap[0]) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "empty module pin map")
	}
	cols := len(pinMap[0])
	for r, row := range pinMap {
		if len(row) != cols {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"ragged pin map: row %d has %d pins, want %d", r, len(row), cols)
		}
		for c, pin := range row {
			if pin == nil {
				return nil, errdefs.New(errdefs.CodeConfiguration, "nil pin at row %d col %d", r, c)
			}
		}
	}

	m := &Module{Symmetry: symmetry, PinMap: pinMap}
	m.height = pinMap[0][0].Height()

	m.colWidths = make([]float64, cols)
	for c := 0; c < cols; c++ {
		width := pinMap[0][c].PitchX()
		for r, row := range pinMap {
			if !isClose(row[c].PitchX(), width) {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"pin x-pitch mismatch in column %d: %g != %g at row %d", c, row[c].PitchX(), width, r)
			}
		}
		m.colWidths[c] = width
	}

	m.rowHeights = make([]float64, len(pinMap))
	for r, row := range pinMap {
		height := row[0].PitchY()
		for c, pin := range row {
			if !isClose(pin.PitchY(), height) {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"pin y-pitch mismatch in row %d: %g != %g at column %d", r, pin.PitchY(), height, c)
			}
			if !isClose(pin.Height(), m.height) {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"pin height mismatch at row %d col %d: %g != %g", r, c, pin.Height(), m.height)
			}
		}
		m.rowHeights[r] = height
	}
	return m, nil
}

// PitchX returns the total X extent of the module.
func (m *Module) PitchX() float64 { return sum(m.colWidths) }

// PitchY returns the total Y extent of the module.
func (m *Module) PitchY() float64 { return sum(m.rowHeights) }

// Height returns the Z extent of the module.
func (m *Module) Height() float64 { return m.height }

// ColumnWidths returns the per-column X pitches.
func (m *Module) ColumnWidths() []float64 { return m.colWidths }

// RowHeights returns the per-row Y pitches, top row first.
func (m *Module) RowHeights() []float64 { return m.rowHeights }

// Key returns a stable content key for the module.
func (m *Module) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "module|s=%d", m.Symmetry)
	for _, row := range m.PinMap {
		sb.WriteString("|")
		for _, pin := range row {
			sb.WriteString(pin.Key())
			sb.WriteString("&")
		}
	}
	return sb.String()
}

// Lattice is a rectangular grid of modules sharing a common module pitch.
type Lattice struct {
	ModuleMap [][]*Module // rows top-down
}

// NewLattice validates the module map and returns the lattice.
func NewLattice(moduleMap [][]*Module) (*Lattice, error) {
	if len(moduleMap) == 0 || len(moduleMap[0]) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "empty lattice module map")
	}
	cols := len(moduleMap[0])
	first := moduleMap[0][0]
	for r, row := range moduleMap {
		if len(row) != cols {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"ragged module map: row %d has %d modules, want %d", r, len(row), cols)
		}
		for c, mod := range row {
			if mod == nil {
				return nil, errdefs.New(errdefs.CodeConfiguration, "nil module at row %d col %d", r, c)
			}
			if !isClose(mod.PitchX(), first.PitchX()) || !isClose(mod.PitchY(), first.PitchY()) {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"module pitch mismatch at row %d col %d: (%g, %g) != (%g, %g)",
					r, c, mod.PitchX(), mod.PitchY(), first.PitchX(), first.PitchY())
			}
			if !isClose(mod.Height(), first.Height()) {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"module height mismatch at row %d col %d: %g != %g", r, c, mod.Height(), first.Height())
			}
		}
	}
	return &Lattice{ModuleMap: moduleMap}, nil
}

// PitchX returns the total X extent of the lattice.
func (l *Lattice) PitchX() float64 {
	return float64(len(l.ModuleMap[0])) * l.ModuleMap[0][0].PitchX()
}

// PitchY returns the total Y extent of the lattice.
func (l *Lattice) PitchY() float64 {
	return float64(len(l.ModuleMap)) * l.ModuleMap[0][0].PitchY()
}

// Height returns the Z extent of the lattice.
func (l *Lattice) Height() float64 { return l.ModuleMap[0][0].Height() }

// WithHeight returns a copy of the lattice with every pin's axial column
// replaced by a single slab of the given height.
func (l *Lattice) WithHeight(height float64) (*Lattice, error) {
	if height <= 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "lattice height must be positive, got %g", height)
	}
	moduleMap := make([][]*Module, len(l.ModuleMap))
	for r, row := range l.ModuleMap {
		moduleMap[r] = make([]*Module, len(row))
		for c, mod := range row {
			pinMap := make([][]Pin, len(mod.PinMap))
			for i, pinRow := range mod.PinMap {
				pinMap[i] = make([]Pin, len(pinRow))
				for j, pin := range pinRow {
					pinMap[i][j] = pin.WithHeight(height)
				}
			}
			resized, err := NewModule(mod.Symmetry, pinMap)
			if err != nil {
				return nil, err
			}
			moduleMap[r][c] = resized
		}
	}
	return NewLattice(moduleMap)
}

// Key returns a stable content key for the lattice.
func (l *Lattice) Key() string {
	var sb strings.Builder
	sb.WriteString("lattice")
	for _, row := range l.ModuleMap {
		sb.WriteString("|")
		for _, mod := range row {
			sb.WriteString(mod.Key())
			sb.WriteString("&")
		}
	}
	return sb.String()
}

// Assembly is an axial stack of lattices, ordered bottom to top.
type Assembly struct {
	Lattices []*Lattice
}

// NewAssembly validates lattice alignment and returns the assembly.
func NewAssembly(lattices []*Lattice) (*Assembly, error) {
	if len(lattices) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "empty assembly")
	}
	first := lattices[0]
	for i, lat := range lattices {
		if lat == nil {
			return nil, errdefs.New(errdefs.CodeConfiguration, "nil lattice at index %d", i)
		}
		if !isClose(lat.PitchX(), first.PitchX()) || !isClose(lat.PitchY(), first.PitchY()) {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"lattice pitch mismatch at index %d: (%g, %g) != (%g, %g)",
				i, lat.PitchX(), lat.PitchY(), first.PitchX(), first.PitchY())
		}
	}
	return &Assembly{Lattices: lattices}, nil
}

// PitchX returns the X extent of the assembly.
func (a *Assembly) PitchX() float64 { return a.Lattices[0].PitchX() }

// PitchY returns the Y extent of the assembly.
func (a *Assembly) PitchY() float64 { return a.Lattices[0].PitchY() }

// Height returns the total Z extent of the assembly.
func (a *Assembly) Height() float64 {
	total := 0.0
	for _, lat := range a.Lattices {
		total += lat.Height()
	}
	return total
}

// Key returns a stable content key for the assembly.
func (a *Assembly) Key() string {
	var sb strings.Builder
	sb.WriteString("assembly")
	for _, lat := range a.Lattices {
		sb.WriteString("|")
		sb.WriteString(lat.Key())
	}
	return sb.String()
}

// Core is the top of the mesh hierarchy: a rectangular map of assemblies.
type Core struct {
	AssemblyMap [][]*Assembly // rows top-down
}

// NewCore validates assembly alignment and returns the core. Nil entries mark
// empty core positions; at least one assembly must be present.
func NewCore(assemblyMap [][]*Assembly) (*Core, error) {
	if len(assemblyMap) == 0 || len(assemblyMap[0]) == 0 {
		return nil, errdefs.New(errdefs.CodeConfiguration, "empty core assembly map")
	}
	cols := len(assemblyMap[0])
	var first *Assembly
	for r, row := range assemblyMap {
		if len(row) != cols {
			return nil, errdefs.New(errdefs.CodeConfiguration,
				"ragged assembly map: row %d has %d assemblies, want %d", r, len(row), cols)
		}
		for c, asm := range row {
			if asm == nil {
				continue
			}
			if first == nil {
				first = asm
				continue
			}
			if !isClose(asm.PitchX(), first.PitchX()) || !isClose(asm.PitchY(), first.PitchY()) {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"assembly pitch mismatch at row %d col %d", r, c)
			}
			if !isClose(asm.Height(), first.Height()) {
				return nil, errdefs.New(errdefs.CodeConfiguration,
					"assembly height mismatch at row %d col %d: %g != %g", r, c, asm.Height(), first.Height())
			}
		}
	}
	if first == nil {
		return nil, errdefs.New(errdefs.CodeConfiguration, "core has no assemblies")
	}
	return &Core{AssemblyMap: assemblyMap}, nil
}

// Key returns a stable content key for the core.
func (c *Core) Key() string {
	var sb strings.Builder
	sb.WriteString("core")
	for _, row := range c.AssemblyMap {
		sb.WriteString("|")
		for _, asm := range row {
			if asm != nil {
				sb.WriteString(asm.Key())
			} else {
				sb.WriteString("-")
			}
			sb.WriteString("&")
		}
	}
	return sb.String()
}

// Materials returns the distinct materials used anywhere in the core, in
// first-appearance order walking assemblies top-left to bottom-right, axially
// bottom-up.
func (c *Core) Materials() []Material {
	seen := make(map[int]bool)
	var out []Material
	add := func(m Material) {
		if !seen[m.ID] {
			seen[m.ID] = true
			out = append(out, m)
		}
	}
	for _, row := range c.AssemblyMap {
		for _, asm := range row {
			if asm == nil {
				continue
			}
			for _, lat := range asm.Lattices {
				for _, modRow := range lat.ModuleMap {
					for _, mod := range modRow {
						for _, pinRow := range mod.PinMap {
							for _, pin := range pinRow {
								switch p := pin.(type) {
								case *RectPin:
									for _, cellRow := range p.Cells {
										for _, m := range cellRow {
											add(m)
										}
									}
								case *RadialPin:
									for _, zone := range p.Zones {
										add(zone.Material)
									}
									add(p.Outer)
								}
							}
						}
					}
				}
			}
		}
	}
	return out
}
