package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/daibit/internal/model"
)

// Fallback tokens for selections outside the known enumerations. They are
// only reachable from hand-edited storage.
const (
	FallbackAccentText = "text-rose-300"
	MutedIntensity     = "bg-white/[0.04]"
)

// Background class tokens.
const (
	bgAuroraLight = "bg-gradient-to-b from-pink-50 via-purple-50 to-blue-50"
	bgAuroraDark  = "bg-[radial-gradient(1000px_600px_at_20%_-10%,rgba(16,185,129,0.30),transparent_60%),radial-gradient(900px_500px_at_100%_0%,rgba(139,92,246,0.25),transparent_55%),radial-gradient(900px_500px_at_60%_110%,rgba(6,182,212,0.18),transparent_55%),linear-gradient(to_bottom,rgba(9,9,11,1),rgba(9,9,11,1))]"
	bgMidnight    = "bg-[radial-gradient(800px_520px_at_20%_0%,rgba(56,189,248,0.20),transparent_55%),radial-gradient(900px_520px_at_100%_20%,rgba(99,102,241,0.18),transparent_55%),linear-gradient(to_bottom,rgba(9,9,11,1),rgba(9,9,11,1))]"
	bgCarbon      = "bg-[linear-gradient(to_bottom,rgba(9,9,11,1),rgba(9,9,11,1))]"
)

// Errors returned when parsing user input.
var (
	ErrUnknownAccent     = errors.New("unknown accent")
	ErrUnknownBackground = errors.New("unknown background")
	ErrUnknownMapping    = errors.New("unknown background mapping")
)

var accents = []model.Accent{
	model.AccentEmerald,
	model.AccentCyan,
	model.AccentViolet,
	model.AccentAmber,
	model.AccentRose,
}

var backgrounds = []model.Background{
	model.BackgroundAurora,
	model.BackgroundMidnight,
	model.BackgroundCarbon,
}

var accentText = map[model.Accent]string{
	model.AccentEmerald: "text-emerald-500",
	model.AccentCyan:    "text-cyan-500",
	model.AccentViolet:  "text-violet-500",
	model.AccentAmber:   "text-amber-500",
	model.AccentRose:    "text-rose-500",
}

// intensity holds the darkest..brightest tokens per accent (counts 1, 2, 3, 4+).
var intensity = map[model.Accent][4]string{
	model.AccentEmerald: {"bg-emerald-950/80", "bg-emerald-800/80", "bg-emerald-600/80", "bg-emerald-300/90"},
	model.AccentCyan:    {"bg-cyan-950/80", "bg-cyan-800/80", "bg-cyan-600/80", "bg-cyan-300/90"},
	model.AccentViolet:  {"bg-violet-950/80", "bg-violet-800/80", "bg-violet-600/80", "bg-violet-300/90"},
	model.AccentAmber:   {"bg-amber-950/80", "bg-amber-800/80", "bg-amber-600/80", "bg-amber-300/90"},
	model.AccentRose:    {"bg-rose-950/80", "bg-rose-800/80", "bg-rose-600/80", "bg-rose-300/90"},
}

// BackgroundMapping selects how the aurora background resolves.
//
// The legacy mapping reproduces the browser widget, whose duplicated aurora
// condition yields the light pink gradient and never the dark aurora token.
// The intended mapping gives aurora the dark radial token. Midnight and carbon
// resolve the same way under both.
type BackgroundMapping string

const (
	MappingLegacy   BackgroundMapping = "legacy"
	MappingIntended BackgroundMapping = "intended"
)

// ParseMapping parses a background mapping name. Empty means legacy.
func ParseMapping(s string) (BackgroundMapping, error) {
	switch BackgroundMapping(strings.ToLower(strings.TrimSpace(s))) {
	case "", MappingLegacy:
		return MappingLegacy, nil
	case MappingIntended:
		return MappingIntended, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMapping, s)
	}
}

var backgroundClasses = map[BackgroundMapping]map[model.Background]string{
	MappingLegacy: {
		model.BackgroundAurora:   bgAuroraLight,
		model.BackgroundMidnight: bgMidnight,
		model.BackgroundCarbon:   bgCarbon,
	},
	MappingIntended: {
		model.BackgroundAurora:   bgAuroraDark,
		model.BackgroundMidnight: bgMidnight,
		model.BackgroundCarbon:   bgCarbon,
	},
}

// Resolved is a theme selection together with its derived presentation classes.
type Resolved struct {
	Accent          model.Accent     `json:"accent" yaml:"accent"`
	Background      model.Background `json:"background" yaml:"background"`
	AccentTextClass string           `json:"accentTextClass" yaml:"accentTextClass"`
	BackgroundClass string           `json:"backgroundClass" yaml:"backgroundClass"`
}

// Selection returns the persistable part of the resolved theme.
func (r Resolved) Selection() model.Theme {
	return model.Theme{Accent: r.Accent, Background: r.Background}
}

// Intensity returns the heatmap class for count under this theme's accent.
func (r Resolved) Intensity(count int) string {
	return IntensityClass(r.Accent, count)
}

// Resolver derives presentation classes from a theme selection.
type Resolver struct {
	mapping BackgroundMapping
}

// NewResolver creates a resolver using the given background mapping.
// Unknown mappings fall back to legacy.
func NewResolver(mapping BackgroundMapping) *Resolver {
	if _, ok := backgroundClasses[mapping]; !ok {
		mapping = MappingLegacy
	}
	return &Resolver{mapping: mapping}
}

// Mapping returns the background mapping in use.
func (r *Resolver) Mapping() BackgroundMapping {
	return r.mapping
}

// Resolve returns the selection with its derived classes. The input is not modified.
func (r *Resolver) Resolve(sel model.Theme) Resolved {
	return Resolved{
		Accent:          sel.Accent,
		Background:      sel.Background,
		AccentTextClass: AccentTextClass(sel.Accent),
		BackgroundClass: r.BackgroundClass(sel.Background),
	}
}

// BackgroundClass returns the backdrop token for a background.
func (r *Resolver) BackgroundClass(bg model.Background) string {
	if class, ok := backgroundClasses[r.mapping][bg]; ok {
		return class
	}
	return bgCarbon
}

var defaultResolver = NewResolver(MappingLegacy)

// Resolve resolves a selection with the legacy background mapping.
func Resolve(sel model.Theme) Resolved {
	return defaultResolver.Resolve(sel)
}

// AccentTextClass returns the text colour token for an accent.
func AccentTextClass(a model.Accent) string {
	if class, ok := accentText[a]; ok {
		return class
	}
	return FallbackAccentText
}

// IntensityClass returns the heatmap cell token for a day's count.
// Zero is muted for every accent and counts above three share the top tier.
// Accents outside the enumeration use the rose tiers.
func IntensityClass(a model.Accent, count int) string {
	tier := TierFor(count)
	if tier == TierMuted {
		return MutedIntensity
	}
	tokens, ok := intensity[a]
	if !ok {
		tokens = intensity[model.AccentRose]
	}
	return tokens[tier-1]
}

// Accents returns every accent in display order.
func Accents() []model.Accent {
	return append([]model.Accent(nil), accents...)
}

// Backgrounds returns every background in display order.
func Backgrounds() []model.Background {
	return append([]model.Background(nil), backgrounds...)
}

// ParseAccent parses an accent name (case-insensitive).
func ParseAccent(s string) (model.Accent, error) {
	a := model.Accent(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := accentText[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccent, s)
	}
	return a, nil
}

// ParseBackground parses a background name (case-insensitive).
func ParseBackground(s string) (model.Background, error) {
	b := model.Background(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := backgroundClasses[MappingLegacy][b]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBackground, s)
	}
	return b, nil
}

// NextAccent returns the accent after a in display order, wrapping around.
func NextAccent(a model.Accent) model.Accent {
	for i, v := range accents {
		if v == a {
			return accents[(i+1)%len(accents)]
		}
	}
	return accents[0]
}

// NextBackground returns the background after b in display order, wrapping around.
func NextBackground(b model.Background) model.Background {
	for i, v := range backgrounds {
		if v == b {
			return backgrounds[(i+1)%len(backgrounds)]
		}
	}
	return backgrounds[0]
}
