package model

// Accent is a named colour family driving text and intensity tokens.
type Accent string

const (
	AccentEmerald Accent = "emerald"
	AccentCyan    Accent = "cyan"
	AccentViolet  Accent = "violet"
	AccentAmber   Accent = "amber"
	AccentRose    Accent = "rose"
)

// Background is a named backdrop style.
type Background string

const (
	BackgroundAurora   Background = "aurora"
	BackgroundMidnight Background = "midnight"
	BackgroundCarbon   Background = "carbon"
)

// Theme is the persisted theme selection. Presentation classes are derived
// from it by the theme package and are never stored.
type Theme struct {
	Accent     Accent     `json:"accent" yaml:"accent"`
	Background Background `json:"background" yaml:"background"`
}
