// Package deck serializes built mesh cores into sectioned text input decks
// and reads deck summaries back for round-trip verification. A deck carries
// CASEID, MATERIAL, GEOM, and MESH sections; pin maps are written as integer
// grids keyed by a pin legend so repeated pins stay recognizable.
package deck

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PrismCut/internal/mesh"
)

const commentPrefix = "!"

// Writer produces text decks from built cores.
type Writer struct {
	// CaseID labels the deck; it lands on the CASEID line.
	CaseID string
}

// NewWriter returns a writer for the given case label.
func NewWriter(caseID string) *Writer {
	if caseID == "" {
		caseID = "prismcut_case"
	}
	return &Writer{CaseID: caseID}
}

// Write serializes the core. Output is deterministic: materials are ordered
// by handle ID and pins are numbered in first-appearance order walking the
// assembly map top-left to bottom-right, axially bottom-up.
func (w *Writer) Write(core *mesh.Core) string {
	var b strings.Builder

	legend := buildPinLegend(core)
	materials := core.Materials()

	b.WriteString("CASEID " + sanitizeToken(w.CaseID) + "\n")
	b.WriteString(commentPrefix + fmt.Sprintf(" %d materials, %d distinct pins\n", len(materials), len(legend.order)))
	b.WriteString("\n")

	w.writeMaterials(&b, materials)
	w.writeGeometry(&b, core, legend)
	w.writeMesh(&b, core)

	return b.String()
}

func (w *Writer) writeMaterials(b *strings.Builder, materials []mesh.Material) {
	b.WriteString("MATERIAL\n")
	for _, m := range materials {
		fmt.Fprintf(b, "  mat %d %s %.6g %.6g\n", m.ID, sanitizeToken(m.Name), m.Density, m.Temperature)
	}
	b.WriteString("END\n\n")
}

func (w *Writer) writeGeometry(b *strings.Builder, core *mesh.Core, legend pinLegend) {
	b.WriteString("GEOM\n")

	for _, id := range legend.order {
		pin := legend.pins[id]
		switch p := pin.(type) {
		case *mesh.RectPin:
			fmt.Fprintf(b, "  pin %d rect %d x %d cells %.6g x %.6g\n",
				id, len(p.XThicknesses), len(p.YThicknesses), p.PitchX(), p.PitchY())
		case *mesh.RadialPin:
			fmt.Fprintf(b, "  pin %d gcyl %d rings bounds %.6g %.6g %.6g %.6g\n",
				id, len(p.Zones), p.Bounds.XMin, p.Bounds.XMax, p.Bounds.YMin, p.Bounds.YMax)
		}
	}

	moduleNum := 0
	walkModules(core, func(mod *mesh.Module) {
		moduleNum++
		fmt.Fprintf(b, "  module %d %d x %d\n", moduleNum, len(mod.PinMap), len(mod.PinMap[0]))
		for _, row := range mod.PinMap {
			b.WriteString("   ")
			for _, pin := range row {
				fmt.Fprintf(b, " %d", legend.ids[pin.Key()])
			}
			b.WriteString("\n")
		}
	})

	fmt.Fprintf(b, "  core %d x %d\n", len(core.AssemblyMap), len(core.AssemblyMap[0]))
	b.WriteString("END\n\n")
}

func (w *Writer) writeMesh(b *strings.Builder, core *mesh.Core) {
	b.WriteString("MESH\n")
	for _, row := range core.AssemblyMap {
		for _, asm := range row {
			if asm == nil {
				continue
			}
			b.WriteString("  axial 0.0")
			z := 0.0
			for _, lat := range asm.Lattices {
				z += lat.Height()
				fmt.Fprintf(b, " %.6g", z)
			}
			b.WriteString("\n")
			break
		}
	}
	b.WriteString("END\n")
}

// pinLegend numbers distinct pins by content key.
type pinLegend struct {
	ids   map[string]int
	pins  map[int]mesh.Pin
	order []int
}

func buildPinLegend(core *mesh.Core) pinLegend {
	legend := pinLegend{ids: make(map[string]int), pins: make(map[int]mesh.Pin)}
	walkModules(core, func(mod *mesh.Module) {
		for _, row := range mod.PinMap {
			for _, pin := range row {
				key := pin.Key()
				if _, seen := legend.ids[key]; seen {
					continue
				}
				id := len(legend.order) + 1
				legend.ids[key] = id
				legend.pins[id] = pin
				legend.order = append(legend.order, id)
			}
		}
	})
	return legend
}

// walkModules visits every module of the core in deterministic order.
func walkModules(core *mesh.Core, visit func(*mesh.Module)) {
	for _, row := range core.AssemblyMap {
		for _, asm := range row {
			if asm == nil {
				continue
			}
			for _, lat := range asm.Lattices {
				for _, modRow := range lat.ModuleMap {
					for _, mod := range modRow {
						visit(mod)
					}
				}
			}
		}
	}
}

// sanitizeToken makes a label safe for a whitespace-delimited deck line.
func sanitizeToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t':
			return '_'
		case r == '\n' || r == '\r':
			return -1
		default:
			return r
		}
	}, s)
}
