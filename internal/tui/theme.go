package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent   = colorPink
	colorFocus    = colorLavender
	colorBorder   = colorOverlay0
	colorPanel    = colorMantle
	colorSelected = colorSurface0
	colorError    = colorRed
	colorInfo     = colorTeal
)

// maxDim is how far content text moves toward the background when the
// overlay is fully opaque. Content stays legible behind the menu.
const maxDim = 0.7

// PaletteColors returns every color the menu draws with.
func PaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorPink, colorMauve, colorRed, colorPeach,
		colorGreen, colorTeal, colorBlue, colorLavender,
		colorText, colorSubtext0, colorOverlay0,
		colorSurface1, colorSurface0, colorBase, colorMantle,
	}
}

// blend mixes from toward to by t in Lab space. Unparseable colors are
// returned unchanged.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	if t <= 0 {
		return from
	}
	a, err := colorful.Hex(string(from))
	if err != nil {
		return from
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	if t >= 1 {
		return to
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// dimmed is c seen through the menu overlay at opacity.
func dimmed(c lipgloss.Color, opacity float64) lipgloss.Color {
	return blend(c, colorBase, opacity*maxDim)
}
