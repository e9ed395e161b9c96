package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

func newInspectCmd() *cobra.Command {
	var elementName string

	cmd := &cobra.Command{
		Use:   "inspect <model.toml | preset:name>",
		Short: "Show derived dimensions, pin maps, and materials for a model element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], elementName)
		},
	}

	cmd.Flags().StringVarP(&elementName, "element", "e", "", "element to inspect (default: first in the model)")

	return cmd
}

func runInspect(w io.Writer, modelArg, elementName string) error {
	model, err := loadModel(modelArg)
	if err != nil {
		return err
	}
	el, err := pickElement(model, elementName)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Model:   %s\n", model.Name)
	fmt.Fprintf(w, "Element: %s\n\n", el.Name())

	if blk, ok := el.(*element.Block); ok {
		dims, err := builder.DeriveBlockDimensions(blk)
		if err != nil {
			return err
		}
		fmt.Fprint(w, renderBlockDimensions(blk, dims))
		fmt.Fprintln(w)
	}

	specs := model.Build
	if specs.Height <= 0 {
		specs.Height = 1.0
	}
	core, err := builder.New(nil).Build(el, specs)
	if err != nil {
		return err
	}

	for i, module := range coreModules(core) {
		fmt.Fprintf(w, "Pin map %d (%d x %d):\n", i+1, len(module.PinMap), len(module.PinMap[0]))
		fmt.Fprint(w, renderPinMap(module))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Materials:")
	fmt.Fprint(w, renderMaterialTable(core.Materials()))

	return nil
}

// renderBlockDimensions formats the pitch and the derived cap cell and flat
// lengths of a block.
func renderBlockDimensions(blk *element.Block, dims builder.BlockDimensions) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Pitch:\t%.6g\n", blk.Pitch())
	fmt.Fprintf(tw, "Cap cell length:\t%.6g\n", dims.CapCellLength)
	fmt.Fprintf(tw, "Flat length:\t%.6g\n", dims.FlatLength)
	tw.Flush()
	return sb.String()
}

// renderPinMap draws a module's pin map as a letter grid, one letter per
// distinct pin, followed by a legend mapping letters to pin descriptions.
func renderPinMap(m *mesh.Module) string {
	letters := make(map[string]byte)
	var order []string

	var sb strings.Builder
	for _, row := range m.PinMap {
		for c, pin := range row {
			key := pin.Key()
			letter, ok := letters[key]
			if !ok {
				letter = 'A' + byte(len(order))
				letters[key] = letter
				order = append(order, key)
			}
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(letter)
		}
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	pins := make(map[string]mesh.Pin)
	for _, row := range m.PinMap {
		for _, pin := range row {
			pins[pin.Key()] = pin
		}
	}
	for _, key := range order {
		fmt.Fprintf(&sb, "  %c: %s\n", letters[key], describePin(pins[key]))
	}
	return sb.String()
}

func describePin(p mesh.Pin) string {
	switch pin := p.(type) {
	case *mesh.RectPin:
		return fmt.Sprintf("rect %.4g x %.4g, %d x %d cells",
			pin.PitchX(), pin.PitchY(), len(pin.XThicknesses), len(pin.YThicknesses))
	case *mesh.RadialPin:
		return fmt.Sprintf("cylindrical %.4g x %.4g, %d rings",
			pin.PitchX(), pin.PitchY(), len(pin.Zones))
	default:
		return "unknown pin"
	}
}

// renderMaterialTable formats the distinct materials of a core as an aligned
// table.
func renderMaterialTable(materials []mesh.Material) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tName\tDensity (g/cc)\tTemperature (K)")
	for _, m := range materials {
		fmt.Fprintf(tw, "  %d\t%s\t%.6g\t%.6g\n", m.ID, m.Name, m.Density, m.Temperature)
	}
	tw.Flush()
	return sb.String()
}

// coreModules collects the distinct modules of a core in traversal order.
func coreModules(core *mesh.Core) []*mesh.Module {
	seen := make(map[string]bool)
	var modules []*mesh.Module
	for _, row := range core.AssemblyMap {
		for _, asm := range row {
			if asm == nil {
				continue
			}
			for _, lat := range asm.Lattices {
				for _, mrow := range lat.ModuleMap {
					for _, module := range mrow {
						if module == nil || seen[module.Key()] {
							continue
						}
						seen[module.Key()] = true
						modules = append(modules, module)
					}
				}
			}
		}
	}
	return modules
}
