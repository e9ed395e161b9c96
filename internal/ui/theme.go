// Package ui provides the PrismCut viewer UI components.
//
// This file defines a custom compact Fyne theme for a dense engineering
// layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PrismCutTheme wraps the default Fyne theme with compact sizing overrides
// for an information-dense geometry viewer layout.
type PrismCutTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewPrismCutTheme creates a new PrismCutTheme with the system default variant.
func NewPrismCutTheme() *PrismCutTheme {
	return &PrismCutTheme{
		base:    theme.DefaultTheme(),
		variant: 0, // system default
	}
}

// NewPrismCutThemeWithVariant creates a PrismCutTheme with a specific
// light/dark variant. The variant name matches the application config values
// "light", "dark", and "system".
func NewPrismCutThemeWithVariant(name string) *PrismCutTheme {
	t := NewPrismCutTheme()
	switch name {
	case "light":
		t.variant = theme.VariantLight
	case "dark":
		t.variant = theme.VariantDark
	}
	return t
}

// SetVariant updates the theme variant (light/dark/system).
func (t *PrismCutTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
}

// Color delegates to the base theme with the stored variant.
func (t *PrismCutTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *PrismCutTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PrismCutTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *PrismCutTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
