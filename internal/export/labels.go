package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PrismCut/internal/element"
)

// LabelInfo holds the data printed and QR-encoded on one inventory label.
type LabelInfo struct {
	ElementName string   `json:"name"`
	Kind        string   `json:"kind"`
	Materials   []string `json:"materials"`
	ContentKey  string   `json:"key"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per page). Each label cell is approximately 66.7mm x 25.4mm on US Letter.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded inventory labels for the given
// elements, laid out on a standard label sheet (Avery 5160 / 3 columns x 10
// rows on US Letter). The QR encodes the label info as JSON; the content key
// lets a scanned label be matched to a built mesh.
func ExportLabels(path string, elements []element.Element) error {
	labels := CollectLabelInfos(elements)
	if len(labels) == 0 {
		return fmt.Errorf("no elements to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.ElementName, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, index int, info LabelInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_label_%d", index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Element name (bold, truncated to fit).
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	name := info.ElementName
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, info.Kind, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	mats := strings.Join(info.Materials, ", ")
	if pdf.GetStringWidth(mats) > textW {
		for len(mats) > 0 && pdf.GetStringWidth(mats+"...") > textW {
			mats = mats[:len(mats)-1]
		}
		mats += "..."
	}
	pdf.CellFormat(textW, 3, mats, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from model elements for use in
// testing or alternative export formats.
func CollectLabelInfos(elements []element.Element) []LabelInfo {
	var labels []LabelInfo
	for _, el := range elements {
		if el == nil {
			continue
		}
		labels = append(labels, LabelInfo{
			ElementName: el.Name(),
			Kind:        elementKind(el),
			Materials:   elementMaterials(el),
			ContentKey:  el.Key(),
		})
	}
	return labels
}

func elementKind(el element.Element) string {
	switch el.(type) {
	case *element.Block:
		return "block"
	case *element.PinCell:
		return "pincell"
	case *element.InfiniteMedium:
		return "infinite medium"
	case *element.Stack:
		return "stack"
	case *element.Stringer:
		return "stringer"
	case *element.ControlRodChannel:
		return "control rod channel"
	case *element.RectLattice:
		return "rect lattice"
	case *element.HexLattice:
		return "hex lattice"
	default:
		return "element"
	}
}

// elementMaterials lists the distinct material names an element touches, in
// first-use order.
func elementMaterials(el element.Element) []string {
	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	switch e := el.(type) {
	case *element.Block:
		add(e.PrismMaterial().Name)
		for _, ch := range e.Channels() {
			if ch != nil {
				add(ch.Material().Name)
			}
		}
		add(e.OuterMaterial().Name)
	case *element.PinCell:
		for _, z := range e.Zones() {
			add(z.Material.Name)
		}
		add(e.OuterMaterial().Name)
	case *element.InfiniteMedium:
		add(e.Material().Name)
	case *element.Stack:
		for _, seg := range e.Segments() {
			for _, name := range elementMaterials(seg.Element()) {
				add(name)
			}
		}
	case *element.Stringer:
		for _, name := range elementMaterials(e.Block()) {
			add(name)
		}
	case *element.ControlRodChannel:
		add(e.Thimble().WallMaterial().Name)
		add(e.Thimble().FillMaterial().Name)
		for _, m := range e.Rod().Materials() {
			add(m.Name)
		}
		add(e.FillMaterial().Name)
	case *element.RectLattice:
		for _, row := range e.Elements() {
			for _, cell := range row {
				if cell != nil {
					for _, name := range elementMaterials(cell) {
						add(name)
					}
				}
			}
		}
		add(e.OuterMaterial().Name)
	case *element.HexLattice:
		for _, ring := range e.Rings() {
			for _, cell := range ring {
				if cell != nil {
					for _, name := range elementMaterials(cell) {
						add(name)
					}
				}
			}
		}
		add(e.OuterMaterial().Name)
	}
	return names
}
