// Package model defines the core data structures for daibit.
package model

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/daibit/internal/dates"
)

// Day is one day's completion tally for a habit.
type Day struct {
	Date  string `json:"date" yaml:"date"` // YYYY-MM-DD
	Count int    `json:"count" yaml:"count"`
}

// UnmarshalJSON accepts hand-edited counts: fractional numbers are
// truncated and numeric strings are parsed. Anything else counts as 0.
func (d *Day) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date  string          `json:"date"`
		Count json.RawMessage `json:"count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Date = raw.Date
	d.Count = lenientCount(raw.Count)
	return nil
}

func lenientCount(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// Habit is a tracked habit and its day history.
// Days are kept in entry order, which is chronological for normal use.
type Habit struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Emoji        string `json:"emoji" yaml:"emoji"`
	TargetPerDay int    `json:"targetPerDay" yaml:"targetPerDay"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Days         []Day  `json:"days" yaml:"days"`
}

// Validation errors.
var (
	ErrEmptyHabitID  = errors.New("habit id cannot be empty")
	ErrEmptyName     = errors.New("habit name cannot be empty")
	ErrInvalidTarget = errors.New("targetPerDay must be greater than 0")
	ErrInvalidDay    = errors.New("day has an invalid date")
	ErrNegativeCount = errors.New("day count cannot be negative")
)

// NewHabit creates a habit with a generated ULID and an empty history.
func NewHabit(name, emoji string, targetPerDay int, description string) (*Habit, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	h := &Habit{
		ID:           id.String(),
		Name:         name,
		Emoji:        emoji,
		TargetPerDay: targetPerDay,
		Description:  description,
		Days:         []Day{},
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks the habit's required fields and its day records.
func (h *Habit) Validate() error {
	if h.ID == "" {
		return ErrEmptyHabitID
	}
	if h.Name == "" {
		return ErrEmptyName
	}
	if h.TargetPerDay <= 0 {
		return ErrInvalidTarget
	}
	for _, d := range h.Days {
		if _, err := dates.Parse(d.Date); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDay, d.Date)
		}
		if d.Count < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeCount, d.Date)
		}
	}
	return nil
}

// Label returns the emoji and name joined for display.
func (h *Habit) Label() string {
	if h.Emoji == "" {
		return h.Name
	}
	return h.Emoji + " " + h.Name
}

// Clone returns a deep copy of the habit.
func (h *Habit) Clone() Habit {
	clone := *h
	if h.Days != nil {
		clone.Days = make([]Day, len(h.Days))
		copy(clone.Days, h.Days)
	}
	return clone
}
