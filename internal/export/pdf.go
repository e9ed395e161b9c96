// Package export renders built cores and model elements to PDF, DXF, and
// XLSX files, plus QR-coded inventory labels for physical mockup tracking.
package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// Metadata describes the model behind an exported core.
type Metadata struct {
	ModelName   string
	ElementName string
	Pitch       float64
	// Dimensions holds the derived block decomposition lengths; nil when the
	// exported element is not a block.
	Dimensions *builder.BlockDimensions
}

// materialColor represents an RGB color assigned to a mesh material.
type materialColor struct {
	R, G, B int
}

// materialColors cycles per material handle ID, mirroring the viewer canvas.
var materialColors = []materialColor{
	{R: 214, G: 69, B: 65},   // red (fuel)
	{R: 75, G: 75, B: 75},    // dark gray (moderator)
	{R: 33, G: 150, B: 243},  // blue
	{R: 255, G: 152, B: 0},   // orange
	{R: 156, G: 39, B: 176},  // purple
	{R: 0, G: 188, B: 212},   // cyan
	{R: 121, G: 85, B: 72},   // brown
	{R: 255, G: 235, B: 59},  // yellow
}

func colorFor(id int) materialColor {
	return materialColors[id%len(materialColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a cross-section report for a built core. Page one holds
// the model summary: dimensions, derived decomposition lengths, the material
// legend, and a provenance QR code encoding the core's content key. Each
// module's pin map follows on its own page.
func ExportPDF(path string, core *mesh.Core, meta Metadata) error {
	modules := collectModules(core)
	if len(modules) == 0 {
		return fmt.Errorf("no modules to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, core, meta); err != nil {
		return err
	}

	for i, mod := range modules {
		pdf.AddPage()
		renderModulePage(pdf, mod, i+1, len(modules))
	}

	return pdf.OutputFileAndClose(path)
}

// renderSummaryPage draws the model summary with legend and provenance QR.
func renderSummaryPage(pdf *fpdf.Fpdf, core *mesh.Core, meta Metadata) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	title := "Cross-Section Report"
	if meta.ModelName != "" {
		title = fmt.Sprintf("Cross-Section Report: %s", meta.ModelName)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Geometry", "", 0, "L", false, 0, "")
	y += 9

	items := []struct {
		label string
		value string
	}{
		{"Element", meta.ElementName},
		{"Assemblies", fmt.Sprintf("%d x %d", len(core.AssemblyMap), len(core.AssemblyMap[0]))},
		{"Materials", fmt.Sprintf("%d", len(core.Materials()))},
	}
	if meta.Pitch > 0 {
		items = append(items, struct{ label, value string }{"Pitch", fmt.Sprintf("%.4f cm", meta.Pitch)})
	}
	if meta.Dimensions != nil {
		items = append(items,
			struct{ label, value string }{"Cap cell length", fmt.Sprintf("%.4f cm", meta.Dimensions.CapCellLength)},
			struct{ label, value string }{"Flat length", fmt.Sprintf("%.4f cm", meta.Dimensions.FlatLength)},
		)
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		if item.value == "" {
			continue
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	drawMaterialLegend(pdf, core.Materials(), y)

	// Provenance QR in the top-right corner, encoding the core content key.
	qrPNG, err := qrcode.Encode(core.Key(), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate provenance QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("core_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrSide := 35.0
	pdf.ImageOptions("core_qr", pageWidth-marginRight-qrSide, marginTop+16, qrSide, qrSide,
		false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(pageWidth-marginRight-qrSide, marginTop+16+qrSide+1)
	pdf.CellFormat(qrSide, 3, "content key", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// drawMaterialLegend renders the material table with color swatches.
func drawMaterialLegend(pdf *fpdf.Fpdf, materials []mesh.Material, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Materials", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{10, 12, 60, 30, 35}
	headers := []string{"", "ID", "Name", "Density", "Temperature"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for _, m := range materials {
		col := colorFor(m.ID)
		xPos = marginLeft

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[0], 6, "", "1", 0, "C", true, 0, "")
		xPos += colWidths[0]

		pdf.SetFillColor(255, 255, 255)
		cells := []string{
			fmt.Sprintf("%d", m.ID),
			m.Name,
			fmt.Sprintf("%.4f g/cc", m.Density),
			fmt.Sprintf("%.1f K", m.Temperature),
		}
		for i, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i+1], 6, cell, "1", 0, "C", false, 0, "")
			xPos += colWidths[i+1]
		}
		y += 6
	}
}

// renderModulePage draws one module's pin map to scale.
func renderModulePage(pdf *fpdf.Fpdf, mod *mesh.Module, moduleNum, total int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Module %d of %d (%.4f x %.4f cm)", moduleNum, total, mod.PitchX(), mod.PitchY())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scale := math.Min(drawWidth/mod.PitchX(), drawHeight/mod.PitchY())
	canvasW := mod.PitchX() * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)

	py := offsetY
	for r, row := range mod.PinMap {
		px := offsetX
		for _, pin := range row {
			drawPin(pdf, pin, px, py, scale)
			px += pin.PitchX() * scale
		}
		py += mod.RowHeights()[r] * scale
	}
}

// drawPin renders one pin cell at page position (px, py), top-left corner.
func drawPin(pdf *fpdf.Fpdf, pin mesh.Pin, px, py, scale float64) {
	switch p := pin.(type) {
	case *mesh.RectPin:
		cy := py
		for r, cellRow := range p.Cells {
			cx := px
			for c, mat := range cellRow {
				col := colorFor(mat.ID)
				pdf.SetFillColor(col.R, col.G, col.B)
				w := p.XThicknesses[c] * scale
				h := p.YThicknesses[r] * scale
				pdf.Rect(cx, cy, w, h, "FD")
				cx += w
			}
			cy += p.YThicknesses[r] * scale
		}
	case *mesh.RadialPin:
		// Bounding box in the outer material, rings on top from outermost in.
		col := colorFor(p.Outer.ID)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(px, py, p.Bounds.Width()*scale, p.Bounds.Height()*scale, "FD")

		// Rings are centered at the pin frame origin; page y grows downward.
		cx := px + (0-p.Bounds.XMin)*scale
		cy := py + (p.Bounds.YMax-0)*scale
		for i := len(p.Zones) - 1; i >= 0; i-- {
			zcol := colorFor(p.Zones[i].Material.ID)
			pdf.SetFillColor(zcol.R, zcol.G, zcol.B)
			pdf.Circle(cx, cy, p.Zones[i].Radius*scale, "FD")
		}
	}
}

// collectModules flattens a core's modules in deterministic order.
func collectModules(core *mesh.Core) []*mesh.Module {
	var modules []*mesh.Module
	for _, row := range core.AssemblyMap {
		for _, asm := range row {
			if asm == nil {
				continue
			}
			for _, lat := range asm.Lattices {
				for _, modRow := range lat.ModuleMap {
					modules = append(modules, modRow...)
				}
			}
		}
	}
	return modules
}
