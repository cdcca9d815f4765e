package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/daibit/internal/model"
)

// swatch holds terminal colours for one accent: the 500 text shade and the
// four intensity shades (950, 800, 600, 300).
type swatch struct {
	text  lipgloss.Color
	tiers [4]lipgloss.Color
}

var swatches = map[model.Accent]swatch{
	model.AccentEmerald: {"#10b981", [4]lipgloss.Color{"#022c22", "#065f46", "#059669", "#6ee7b7"}},
	model.AccentCyan:    {"#06b6d4", [4]lipgloss.Color{"#083344", "#155e75", "#0891b2", "#67e8f9"}},
	model.AccentViolet:  {"#8b5cf6", [4]lipgloss.Color{"#2e1065", "#5b21b6", "#7c3aed", "#c4b5fd"}},
	model.AccentAmber:   {"#f59e0b", [4]lipgloss.Color{"#451a03", "#92400e", "#d97706", "#fcd34d"}},
	model.AccentRose:    {"#f43f5e", [4]lipgloss.Color{"#4c0519", "#9f1239", "#e11d48", "#fda4af"}},
}

const (
	mutedCell    = lipgloss.Color("#1c1c20")
	fallbackText = lipgloss.Color("#fda4af")
)

var borderColors = map[model.Background]lipgloss.Color{
	model.BackgroundAurora:   "#8b5cf6",
	model.BackgroundMidnight: "#38bdf8",
	model.BackgroundCarbon:   "#3f3f46",
}

// Palette renders a resolved theme with terminal colours. Tiers match the
// CSS intensity classes one for one.
type Palette struct {
	theme Resolved
}

// NewPalette creates a palette for a resolved theme.
func NewPalette(r Resolved) Palette {
	return Palette{theme: r}
}

// Theme returns the resolved theme behind the palette.
func (p Palette) Theme() Resolved {
	return p.theme
}

// Accent returns the style for accent-coloured text.
func (p Palette) Accent() lipgloss.Style {
	color := fallbackText
	if s, ok := swatches[p.theme.Accent]; ok {
		color = s.text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// CellColor returns the terminal colour for a heatmap cell with the given count.
func (p Palette) CellColor(count int) lipgloss.Color {
	tier := TierFor(count)
	if tier == TierMuted {
		return mutedCell
	}
	s, ok := swatches[p.theme.Accent]
	if !ok {
		s = swatches[model.AccentRose]
	}
	return s.tiers[tier-1]
}

// Cell returns the style for a heatmap cell with the given count.
func (p Palette) Cell(count int) lipgloss.Style {
	return lipgloss.NewStyle().Background(p.CellColor(count))
}

// Frame returns the bordered container style for the background.
func (p Palette) Frame() lipgloss.Style {
	color, ok := borderColors[p.theme.Background]
	if !ok {
		color = borderColors[model.BackgroundCarbon]
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}
