// Package theme resolves a persisted theme selection (accent and background)
// into the presentation classes used by the widget: an accent text class, a
// background class and per-count intensity classes for the habit heatmap.
// It also provides a terminal palette that renders the same intensity tiers
// with lipgloss colours.
package theme
