package timerview

import (
	"image/color"

	"pomocus/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	focusColor      = color.NRGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}
	shortBreakColor = color.NRGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF}
	longBreakColor  = color.NRGBA{R: 0x45, G: 0xB7, B: 0xD1, A: 0xFF}
)

// PhaseColor returns the accent colour of a phase.
func PhaseColor(phase model.Phase) color.Color {
	switch phase {
	case model.PhaseShortBreak:
		return shortBreakColor
	case model.PhaseLongBreak:
		return longBreakColor
	default:
		return focusColor
	}
}

// variantTheme pins the default theme to one variant regardless of the OS setting.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

// NewTheme returns the fyne theme for mode.
func NewTheme(mode model.ThemeMode) fyne.Theme {
	variant := theme.VariantLight
	if mode == model.ThemeDark {
		variant = theme.VariantDark
	}
	return &variantTheme{Theme: theme.DefaultTheme(), variant: variant}
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}
