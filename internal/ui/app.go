package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/config"
	"github.com/piwi3910/PrismCut/internal/element"
	"github.com/piwi3910/PrismCut/internal/export"
	"github.com/piwi3910/PrismCut/internal/mesh"
)

// App holds all viewer state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	config config.AppConfig

	model       *config.Model
	elementName string
	core        *mesh.Core
	palette     *Palette

	// UI references for dynamic updates
	elementSelect      *widget.Select
	resultContainer    *fyne.Container
	dimsLabel          *widget.Label
	materialsContainer *fyne.Container
	heightEntry        *widget.Entry
	cartesianEntry     *widget.Entry
	radialEntry        *widget.Entry
	azimuthalEntry     *widget.Entry
}

func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := config.LoadAppConfig(config.DefaultConfigPath())
	if err != nil {
		cfg = config.DefaultAppConfig()
	}
	application.Settings().SetTheme(NewPrismCutThemeWithVariant(cfg.Theme))
	return &App{
		app:    application,
		window: window,
		config: cfg,
	}
}

// SetupMenus creates the native menu bar for the viewer.
func (a *App) SetupMenus() {
	openItems := []*fyne.MenuItem{
		fyne.NewMenuItem("Open Model...", func() { a.openModelDialog() }),
	}
	for _, name := range config.PresetNames() {
		preset := name
		openItems = append(openItems, fyne.NewMenuItem("Preset: "+preset, func() {
			a.loadPreset(preset)
		}))
	}

	fileItems := openItems
	fileItems = append(fileItems,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportDialog("report.pdf", func(path string) error {
				return export.ExportPDF(path, a.core, a.exportMetadata())
			})
		}),
		fyne.NewMenuItem("Export DXF Cross-Section...", func() {
			blk, ok := a.selectedBlock()
			if !ok {
				dialog.ShowInformation("DXF Export", "DXF export needs a block element.", a.window)
				return
			}
			a.exportDialog("block.dxf", func(path string) error {
				return export.ExportDXF(path, blk)
			})
		}),
		fyne.NewMenuItem("Export XLSX Report...", func() {
			a.exportDialog("report.xlsx", func(path string) error {
				return export.ExportXLSX(path, a.core, a.exportMetadata())
			})
		}),
		fyne.NewMenuItem("Export Inventory Labels...", func() {
			a.exportDialog("labels.pdf", func(path string) error {
				return export.ExportLabels(path, a.modelElements())
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() { a.showAboutDialog() }),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", fileItems...),
		helpMenu,
	))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PrismCut",
		"PrismCut — Reactor Block Mesh Viewer\n\n"+
			"Decomposes prismatic reactor block cross-sections\n"+
			"into structured meshes and renders the result.",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.elementSelect = widget.NewSelect(nil, func(name string) {
		a.elementName = name
		a.rebuild()
	})
	a.elementSelect.PlaceHolder = "(no model loaded)"

	a.heightEntry = widget.NewEntry()
	a.cartesianEntry = widget.NewEntry()
	a.radialEntry = widget.NewEntry()
	a.azimuthalEntry = widget.NewEntry()

	buildBtn := widget.NewButton("Build", func() { a.rebuild() })

	a.dimsLabel = widget.NewLabel("")
	a.materialsContainer = container.NewVBox()
	a.resultContainer = container.NewStack(RenderCoreModules(nil, nil))

	form := widget.NewForm(
		widget.NewFormItem("Element", a.elementSelect),
		widget.NewFormItem("Height (cm)", a.heightEntry),
		widget.NewFormItem("Cartesian target", a.cartesianEntry),
		widget.NewFormItem("Radial target", a.radialEntry),
		widget.NewFormItem("Azimuthal target", a.azimuthalEntry),
	)

	side := container.NewVBox(
		widget.NewLabelWithStyle("Model", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		buildBtn,
		widget.NewSeparator(),
		a.dimsLabel,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Materials", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.materialsContainer,
	)

	return container.NewBorder(nil, nil, side, nil, a.resultContainer)
}

func (a *App) openModelDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		model, err := config.Load(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config.RememberFile(path)
		a.saveConfig()
		a.setModel(model)
	}, a.window)
}

func (a *App) loadPreset(name string) {
	model, err := config.Preset(name)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setModel(model)
}

func (a *App) setModel(model *config.Model) {
	a.model = model
	names := model.ElementNames()
	a.elementSelect.Options = names
	if len(names) > 0 {
		a.elementName = names[0]
		a.elementSelect.SetSelected(names[0])
	}

	specs := model.Build
	a.config.ApplyToSpecs(&specs)
	a.heightEntry.SetText(formatSpec(specs.Height))
	a.cartesianEntry.SetText(formatSpec(specs.TargetCellThicknesses.Cartesian))
	a.radialEntry.SetText(formatSpec(specs.TargetCellThicknesses.Radial))
	a.azimuthalEntry.SetText(formatSpec(specs.TargetCellThicknesses.Azimuthal))

	a.window.SetTitle("PrismCut — " + model.Name)
	a.rebuild()
}

// rebuild runs the mesh builder for the selected element and refreshes the
// result pane.
func (a *App) rebuild() {
	if a.model == nil || a.elementName == "" {
		return
	}
	el, err := a.model.Element(a.elementName)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	specs := a.specsFromForm()
	core, err := builder.New(nil).Build(el, specs)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.core = core
	a.palette = BuildPalette(a.config.Palette, a.model.Materials, core.Materials())

	a.refreshDims(el)
	a.refreshMaterials()
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(RenderCoreModules(core, a.palette))
	a.resultContainer.Refresh()
}

func (a *App) specsFromForm() builder.Specs {
	specs := a.model.Build
	a.config.ApplyToSpecs(&specs)
	if v, err := strconv.ParseFloat(a.heightEntry.Text, 64); err == nil && v > 0 {
		specs.Height = v
	}
	if v, err := strconv.ParseFloat(a.cartesianEntry.Text, 64); err == nil && v > 0 {
		specs.TargetCellThicknesses.Cartesian = v
	}
	if v, err := strconv.ParseFloat(a.radialEntry.Text, 64); err == nil && v > 0 {
		specs.TargetCellThicknesses.Radial = v
	}
	if v, err := strconv.ParseFloat(a.azimuthalEntry.Text, 64); err == nil && v > 0 {
		specs.TargetCellThicknesses.Azimuthal = v
	}
	return specs
}

func (a *App) refreshDims(el element.Element) {
	blk, ok := el.(*element.Block)
	if !ok {
		a.dimsLabel.SetText("")
		return
	}
	dims, err := builder.DeriveBlockDimensions(blk)
	if err != nil {
		a.dimsLabel.SetText(err.Error())
		return
	}
	a.dimsLabel.SetText(fmt.Sprintf(
		"Pitch: %.4g cm\nCap cell length: %.4g cm\nFlat length: %.4g cm",
		blk.Pitch(), dims.CapCellLength, dims.FlatLength,
	))
}

func (a *App) refreshMaterials() {
	a.materialsContainer.RemoveAll()
	for _, m := range a.core.Materials() {
		swatch := newColorSwatch(a.palette.Color(m))
		label := widget.NewLabel(fmt.Sprintf("%s — %.4g g/cc, %.4g K", m.Name, m.Density, m.Temperature))
		a.materialsContainer.Add(container.NewHBox(swatch, label))
	}
	a.materialsContainer.Refresh()
}

func (a *App) selectedBlock() (*element.Block, bool) {
	if a.model == nil || a.elementName == "" {
		return nil, false
	}
	el, err := a.model.Element(a.elementName)
	if err != nil {
		return nil, false
	}
	blk, ok := el.(*element.Block)
	return blk, ok
}

func (a *App) exportMetadata() export.Metadata {
	meta := export.Metadata{ElementName: a.elementName}
	if a.model != nil {
		meta.ModelName = a.model.Name
	}
	if blk, ok := a.selectedBlock(); ok {
		meta.Pitch = blk.Pitch()
		if dims, err := builder.DeriveBlockDimensions(blk); err == nil {
			meta.Dimensions = &dims
		}
	}
	return meta
}

func (a *App) modelElements() []element.Element {
	if a.model == nil {
		return nil
	}
	var elements []element.Element
	for _, name := range a.model.ElementNames() {
		if el, err := a.model.Element(name); err == nil {
			elements = append(elements, el)
		}
	}
	return elements
}

// exportDialog prompts for a save path and runs the export.
func (a *App) exportDialog(defaultName string, run func(path string) error) {
	if a.core == nil {
		dialog.ShowInformation("Export", "Build a model first.", a.window)
		return
	}
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := run(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export", "Wrote "+path, a.window)
	}, a.window)
	saveDialog.SetFileName(defaultName)
	saveDialog.Show()
}

func (a *App) saveConfig() {
	// Best effort; the viewer stays usable without a writable config dir.
	_ = config.SaveAppConfig(config.DefaultConfigPath(), a.config)
}

func formatSpec(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newColorSwatch(col color.NRGBA) fyne.CanvasObject {
	rect := canvas.NewRectangle(col)
	rect.SetMinSize(fyne.NewSize(14, 14))
	return rect
}
