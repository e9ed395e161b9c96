package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PrismCut/internal/material"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// ExportXLSX writes a geometry report workbook: a Summary sheet, a Materials
// sheet, a Pins sheet describing every distinct pin, and one PinMap sheet per
// module with legend IDs in a color-coded grid.
func ExportXLSX(path string, core *mesh.Core, meta Metadata) error {
	modules := collectModules(core)
	if len(modules) == 0 {
		return fmt.Errorf("no modules to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, core, meta, len(modules)); err != nil {
		return err
	}
	if err := writeMaterialsSheet(f, core.Materials()); err != nil {
		return err
	}
	legendIDs, legendPins := pinLegend(modules)
	if err := writePinsSheet(f, legendPins); err != nil {
		return err
	}
	for i, mod := range modules {
		if err := writePinMapSheet(f, mod, i+1, legendIDs); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, core *mesh.Core, meta Metadata, moduleCount int) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Model", meta.ModelName},
		{"Element", meta.ElementName},
		{"Assemblies", fmt.Sprintf("%d x %d", len(core.AssemblyMap), len(core.AssemblyMap[0]))},
		{"Modules", moduleCount},
		{"Materials", len(core.Materials())},
	}
	if meta.Pitch > 0 {
		rows = append(rows, []any{"Pitch (cm)", meta.Pitch})
	}
	if meta.Dimensions != nil {
		rows = append(rows,
			[]any{"Cap cell length (cm)", meta.Dimensions.CapCellLength},
			[]any{"Flat length (cm)", meta.Dimensions.FlatLength},
		)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMaterialsSheet(f *excelize.File, materials []mesh.Material) error {
	const sheet = "Materials"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"ID", "Name", "Density (g/cc)", "Temperature (K)"}
	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, m := range materials {
		values := []any{m.ID, m.Name, m.Density, m.Temperature}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePinsSheet(f *excelize.File, legendPins []mesh.Pin) error {
	const sheet = "Pins"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Pin", "Kind", "Cells / Rings", "Pitch X (cm)", "Pitch Y (cm)"}
	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, pin := range legendPins {
		var kind, extent string
		switch p := pin.(type) {
		case *mesh.RectPin:
			kind = "rect"
			extent = fmt.Sprintf("%d x %d", len(p.XThicknesses), len(p.YThicknesses))
		case *mesh.RadialPin:
			kind = "gcyl"
			extent = fmt.Sprintf("%d rings", len(p.Zones))
		}
		values := []any{i + 1, kind, extent, pin.PitchX(), pin.PitchY()}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePinMapSheet(f *excelize.File, mod *mesh.Module, moduleNum int, legendIDs map[string]int) error {
	sheet := fmt.Sprintf("PinMap %d", moduleNum)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	styleCache := map[int]int{}
	for r, row := range mod.PinMap {
		for c, pin := range row {
			id := legendIDs[pin.Key()]
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, id); err != nil {
				return err
			}

			styleID, ok := styleCache[id]
			if !ok {
				col := colorFor(id)
				styleID, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{
						Type:    "pattern",
						Pattern: 1,
						Color:   []string{fmt.Sprintf("%02X%02X%02X", col.R, col.G, col.B)},
					},
				})
				if err != nil {
					return err
				}
				styleCache[id] = styleID
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return err
			}
		}
	}
	return nil
}

// pinLegend numbers distinct pins across modules by content key in
// first-appearance order.
func pinLegend(modules []*mesh.Module) (map[string]int, []mesh.Pin) {
	ids := map[string]int{}
	var pins []mesh.Pin
	for _, mod := range modules {
		for _, row := range mod.PinMap {
			for _, pin := range row {
				key := pin.Key()
				if _, seen := ids[key]; !seen {
					pins = append(pins, pin)
					ids[key] = len(pins)
				}
			}
		}
	}
	return ids, pins
}

// MaterialLibraryResult holds the outcome of a material library import.
type MaterialLibraryResult struct {
	Materials []material.Material
	Errors    []string
	Warnings  []string
}

// materialHeaderAliases maps canonical column roles to accepted header names
// (all lowercase).
var materialHeaderAliases = map[string][]string{
	"name":        {"name", "material", "label"},
	"density":     {"density", "density (g/cc)", "rho", "g/cc"},
	"temperature": {"temperature", "temperature (k)", "temp", "t", "k"},
	"category":    {"category", "kind", "type", "class"},
}

// ImportMaterialLibrary reads a material library from the first sheet of an
// Excel workbook. Columns are mapped case-insensitively by header name;
// name, density, and temperature are required, category is optional.
func ImportMaterialLibrary(path string) MaterialLibraryResult {
	result := MaterialLibraryResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	mapping, ok := detectMaterialColumns(rows[0])
	if !ok {
		result.Errors = append(result.Errors, "Required columns not found in header: Name, Density, Temperature")
		return result
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("Row %d", i+1)

		name := getCell(row, mapping["name"])
		if name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing material name", rowLabel))
			continue
		}
		density, err := strconv.ParseFloat(getCell(row, mapping["density"]), 64)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid density '%s'", rowLabel, getCell(row, mapping["density"])))
			continue
		}
		temperature, err := strconv.ParseFloat(getCell(row, mapping["temperature"]), 64)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid temperature '%s'", rowLabel, getCell(row, mapping["temperature"])))
			continue
		}
		category := getCell(row, mapping["category"])
		if category == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: No category for %q", rowLabel, name))
		}

		mat, err := material.New(name, density, temperature, category)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
			continue
		}
		result.Materials = append(result.Materials, mat)
	}
	return result
}

// detectMaterialColumns maps column roles to indices from a header row.
// Reports false when a required column is missing.
func detectMaterialColumns(header []string) (map[string]int, bool) {
	mapping := map[string]int{"name": -1, "density": -1, "temperature": -1, "category": -1}
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range materialHeaderAliases {
			for _, alias := range aliases {
				if normalized == alias && mapping[role] == -1 {
					mapping[role] = i
				}
			}
		}
	}
	ok := mapping["name"] >= 0 && mapping["density"] >= 0 && mapping["temperature"] >= 0
	return mapping, ok
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
