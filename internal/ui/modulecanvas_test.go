package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/config"
)

func classicModel(t *testing.T) *config.Model {
	t.Helper()
	model, err := config.Preset("classic-block")
	require.NoError(t, err)
	return model
}

func TestParseHexColor(t *testing.T) {
	col, ok := parseHexColor("#d64541")
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xd6, G: 0x45, B: 0x41, A: 255}, col)

	_, ok = parseHexColor("d64541")
	assert.False(t, ok)
	_, ok = parseHexColor("#zzzzzz")
	assert.False(t, ok)
}

func TestBuildPaletteUsesCategories(t *testing.T) {
	model := classicModel(t)
	el, err := model.Element("block")
	require.NoError(t, err)
	core, err := builder.New(nil).Build(el, model.Build)
	require.NoError(t, err)

	cfg := config.DefaultAppConfig()
	palette := BuildPalette(cfg.Palette, model.Materials, core.Materials())

	for _, m := range core.Materials() {
		col := palette.Color(m)
		switch m.Name {
		case "Fuel Salt":
			assert.Equal(t, color.NRGBA{R: 0xd6, G: 0x45, B: 0x41, A: 255}, col)
		case "Graphite":
			assert.Equal(t, color.NRGBA{R: 0x4b, G: 0x4b, B: 0x4b, A: 255}, col)
		}
	}
}

func TestModuleCanvasRenders(t *testing.T) {
	test.NewApp()

	model := classicModel(t)
	el, err := model.Element("block")
	require.NoError(t, err)
	core, err := builder.New(nil).Build(el, model.Build)
	require.NoError(t, err)

	modules := distinctModules(core)
	require.Len(t, modules, 1)

	palette := BuildPalette(config.DefaultAppConfig().Palette, model.Materials, core.Materials())
	mc := NewModuleCanvas(modules[0], palette, 600, 600)
	renderer := mc.CreateRenderer()

	// Border plus at least one object per pin of the 6x6 map.
	assert.Greater(t, len(renderer.Objects()), 36)
}

func TestDistinctModulesNilCore(t *testing.T) {
	assert.Empty(t, distinctModules(nil))
}
