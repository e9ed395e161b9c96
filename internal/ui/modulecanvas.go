package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrismCut/internal/material"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// Fallback material colors — cycle through these when a material's category
// has no palette entry.
var fallbackColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
	{R: 0, G: 188, B: 212, A: 255},  // cyan
	{R: 244, G: 67, B: 54, A: 255},  // red
	{R: 255, G: 235, B: 59, A: 255}, // yellow
	{R: 121, G: 85, B: 72, A: 255},  // brown
}

// Palette resolves mesh materials to display colors.
type Palette struct {
	byID map[int]color.NRGBA
}

// BuildPalette assigns a color to every material of a core. Materials whose
// category has an entry in hexByCategory get that color; the rest cycle
// through the fallback colors.
func BuildPalette(hexByCategory map[string]string, named map[string]material.Material, materials []mesh.Material) *Palette {
	p := &Palette{byID: make(map[int]color.NRGBA, len(materials))}
	for i, m := range materials {
		col := fallbackColors[i%len(fallbackColors)]
		if desc, ok := named[m.Name]; ok {
			if hex, ok := hexByCategory[desc.Category]; ok {
				if parsed, ok := parseHexColor(hex); ok {
					col = parsed
				}
			}
		}
		p.byID[m.ID] = col
	}
	return p
}

// Color returns the display color for a mesh material.
func (p *Palette) Color(m mesh.Material) color.NRGBA {
	if p != nil {
		if col, ok := p.byID[m.ID]; ok {
			return col
		}
	}
	return fallbackColors[m.ID%len(fallbackColors)]
}

// parseHexColor parses "#rrggbb" into an opaque color.
func parseHexColor(s string) (color.NRGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, false
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, true
}

// ModuleCanvas renders a visual representation of a single module pin map.
type ModuleCanvas struct {
	widget.BaseWidget
	module    *mesh.Module
	palette   *Palette
	maxWidth  float32
	maxHeight float32
}

func NewModuleCanvas(module *mesh.Module, palette *Palette, maxW, maxH float32) *ModuleCanvas {
	mc := &ModuleCanvas{
		module:    module,
		palette:   palette,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	mc.ExtendBaseWidget(mc)
	return mc
}

func (mc *ModuleCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newModuleCanvasRenderer(mc)
}

type moduleCanvasRenderer struct {
	mc      *ModuleCanvas
	objects []fyne.CanvasObject
}

func newModuleCanvasRenderer(mc *ModuleCanvas) *moduleCanvasRenderer {
	r := &moduleCanvasRenderer{mc: mc}
	r.rebuild()
	return r
}

func (r *moduleCanvasRenderer) scale() float32 {
	m := r.mc.module
	scaleX := r.mc.maxWidth / float32(m.PitchX())
	scaleY := r.mc.maxHeight / float32(m.PitchY())
	if scaleY < scaleX {
		return scaleY
	}
	return scaleX
}

func (r *moduleCanvasRenderer) rebuild() {
	r.objects = nil

	m := r.mc.module
	scale := r.scale()
	canvasW := float32(m.PitchX()) * scale
	canvasH := float32(m.PitchY()) * scale

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	// Pin map rows are ordered top-down, matching screen coordinates.
	rowHeights := m.RowHeights()
	colWidths := m.ColumnWidths()
	var py float32
	for ri, row := range m.PinMap {
		var px float32
		for ci, pin := range row {
			r.drawPin(pin, px, py, scale)
			px += float32(colWidths[ci]) * scale
		}
		py += float32(rowHeights[ri]) * scale
	}

	// Redraw the border above the pins.
	r.objects = append(r.objects, border)
}

func (r *moduleCanvasRenderer) drawPin(pin mesh.Pin, px, py, scale float32) {
	switch p := pin.(type) {
	case *mesh.RectPin:
		r.drawRectPin(p, px, py, scale)
	case *mesh.RadialPin:
		r.drawRadialPin(p, px, py, scale)
	}
}

// drawRectPin paints each fine cell of a rectangular pin. Cells rows are
// top-first, matching screen coordinates.
func (r *moduleCanvasRenderer) drawRectPin(p *mesh.RectPin, px, py, scale float32) {
	cy := py
	for ri, row := range p.Cells {
		ch := float32(p.YThicknesses[len(p.YThicknesses)-1-ri]) * scale
		cx := px
		for ci, cell := range row {
			cw := float32(p.XThicknesses[ci]) * scale
			rect := canvas.NewRectangle(r.mc.palette.Color(cell))
			rect.Resize(fyne.NewSize(cw, ch))
			rect.Move(fyne.NewPos(cx, cy))
			r.objects = append(r.objects, rect)
			cx += cw
		}
		cy += ch
	}
}

// drawRadialPin paints the bounding box in the outer material and then the
// rings outermost-in as filled circles centered on the pin origin.
func (r *moduleCanvasRenderer) drawRadialPin(p *mesh.RadialPin, px, py, scale float32) {
	w := float32(p.Bounds.Width()) * scale
	h := float32(p.Bounds.Height()) * scale

	bg := canvas.NewRectangle(r.mc.palette.Color(p.Outer))
	bg.Resize(fyne.NewSize(w, h))
	bg.Move(fyne.NewPos(px, py))
	r.objects = append(r.objects, bg)

	// Screen position of the ring center: the pin origin in bounds
	// coordinates, with Y flipped.
	ox := px + float32(0-p.Bounds.XMin)*scale
	oy := py + float32(p.Bounds.YMax-0)*scale

	for i := len(p.Zones) - 1; i >= 0; i-- {
		zone := p.Zones[i]
		rad := float32(zone.Radius) * scale
		circle := canvas.NewCircle(r.mc.palette.Color(zone.Material))
		circle.Resize(fyne.NewSize(2*rad, 2*rad))
		circle.Move(fyne.NewPos(ox-rad, oy-rad))
		r.objects = append(r.objects, circle)
	}
}

func (r *moduleCanvasRenderer) Layout(size fyne.Size)        {}
func (r *moduleCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *moduleCanvasRenderer) Destroy()                     {}
func (r *moduleCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *moduleCanvasRenderer) MinSize() fyne.Size {
	m := r.mc.module
	scale := r.scale()
	return fyne.NewSize(float32(m.PitchX())*scale, float32(m.PitchY())*scale)
}

// RenderCoreModules creates a scrollable container showing every distinct
// module of a built core with a header line per module.
func RenderCoreModules(core *mesh.Core, palette *Palette) fyne.CanvasObject {
	modules := distinctModules(core)
	if len(modules) == 0 {
		return widget.NewLabel("No modules yet. Open a model and click Build.")
	}

	var items []fyne.CanvasObject
	for i, m := range modules {
		header := widget.NewLabel(fmt.Sprintf(
			"Module %d: %d × %d pins, %.4g × %.4g cm",
			i+1, len(m.PinMap), len(m.PinMap[0]), m.PitchX(), m.PitchY(),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}

		items = append(items, header, NewModuleCanvas(m, palette, 600, 600), widget.NewSeparator())
	}

	return container.NewVScroll(container.NewVBox(items...))
}

func distinctModules(core *mesh.Core) []*mesh.Module {
	if core == nil {
		return nil
	}
	seen := make(map[string]bool)
	var modules []*mesh.Module
	for _, row := range core.AssemblyMap {
		for _, asm := range row {
			if asm == nil {
				continue
			}
			for _, lat := range asm.Lattices {
				for _, mrow := range lat.ModuleMap {
					for _, m := range mrow {
						if m == nil || seen[m.Key()] {
							continue
						}
						seen[m.Key()] = true
						modules = append(modules, m)
					}
				}
			}
		}
	}
	return modules
}
