// Package output provides output formatters for habits and state.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/daibit/internal/core"
	"github.com/jmylchreest/daibit/internal/model"
)

// Formatter formats habits for output.
type Formatter interface {
	// Format writes formatted habits to the writer, with progress as of today.
	Format(w io.Writer, habits []model.Habit, today string) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPlain, nil
	case FormatPlain, FormatJSON, FormatYAML, FormatIDs:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (use plain, json, yaml, or ids)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatIDs:
		return NewIDsFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template        string // Custom template for plain format
	ShowIndex       bool   // Show 1-based index prefix
	ShowDescription bool   // Show description on a second line
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:       true,
		ShowDescription: false,
	}
}

// Summary is a habit with its derived progress as of a given day.
type Summary struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Emoji         string  `json:"emoji" yaml:"emoji"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
	TargetPerDay  int     `json:"targetPerDay" yaml:"targetPerDay"`
	Today         int     `json:"today" yaml:"today"`
	Progress      float64 `json:"progress" yaml:"progress"`
	Completed     bool    `json:"completed" yaml:"completed"`
	CurrentStreak int     `json:"currentStreak" yaml:"currentStreak"`
	LongestStreak int     `json:"longestStreak" yaml:"longestStreak"`
	LastLogged    string  `json:"lastLogged,omitempty" yaml:"lastLogged,omitempty"`
}

// Summarize derives a Summary for each habit.
func Summarize(habits []model.Habit, today string) []Summary {
	out := make([]Summary, len(habits))
	for i := range habits {
		h := &habits[i]
		last, _ := core.LastLogged(h)
		out[i] = Summary{
			ID:            h.ID,
			Name:          h.Name,
			Emoji:         h.Emoji,
			Description:   h.Description,
			TargetPerDay:  h.TargetPerDay,
			Today:         core.CountOn(h, today),
			Progress:      core.Progress(h, today),
			Completed:     core.Completed(h, today),
			CurrentStreak: core.CurrentStreak(h, today),
			LongestStreak: core.LongestStreak(h),
			LastLogged:    last,
		}
	}
	return out
}
