// PrismCut viewer — interactive reactor block mesh explorer.
//
// Build:
//   go build -o prismcut-view ./cmd/prismcut-view
//
// Cross-compile with fyne-cross for proper packaging:
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/PrismCut/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.prismcut")

	window := application.NewWindow("PrismCut — Reactor Block Mesh Viewer")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.Show()

	application.Run()
}
