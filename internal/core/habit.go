// Package core provides habit logging, streak, lookup, and sorting logic.
package core

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/daibit/internal/dates"
	"github.com/jmylchreest/daibit/internal/model"
)

// Errors returned by habit operations.
var (
	ErrHabitNotFound  = errors.New("habit not found")
	ErrDuplicateHabit = errors.New("habit id already exists")
	ErrInvalidHabit   = errors.New("invalid habit")
)

// Log adds delta to the habit's count for date and returns the new count.
// A missing day is appended so entry order is preserved. Counts never go
// below zero; a day decremented to zero is kept. Decrementing a day that
// was never logged is a no-op.
func Log(h *model.Habit, date string, delta int) (int, error) {
	if _, err := dates.Parse(date); err != nil {
		return 0, err
	}

	if i := dayIndex(h, date); i >= 0 {
		h.Days[i].Count = max(h.Days[i].Count+delta, 0)
		return h.Days[i].Count, nil
	}

	if delta <= 0 {
		return 0, nil
	}
	h.Days = append(h.Days, model.Day{Date: date, Count: delta})
	return delta, nil
}

// CountOn returns the habit's count for date, or 0 if the day was never logged.
func CountOn(h *model.Habit, date string) int {
	if i := dayIndex(h, date); i >= 0 {
		return h.Days[i].Count
	}
	return 0
}

// Progress returns count/target for date. Over-target counts yield values above 1.
func Progress(h *model.Habit, date string) float64 {
	if h.TargetPerDay <= 0 {
		return 0
	}
	return float64(CountOn(h, date)) / float64(h.TargetPerDay)
}

// Completed reports whether the habit met its daily target on date.
func Completed(h *model.Habit, date string) bool {
	return h.TargetPerDay > 0 && CountOn(h, date) >= h.TargetPerDay
}

// dayIndex returns the index of the first day record for date, or -1.
func dayIndex(h *model.Habit, date string) int {
	for i := range h.Days {
		if h.Days[i].Date == date {
			return i
		}
	}
	return -1
}

// countsByDate maps each date to its first recorded count.
func countsByDate(h *model.Habit) map[string]int {
	counts := make(map[string]int, len(h.Days))
	for _, d := range h.Days {
		if _, ok := counts[d.Date]; !ok {
			counts[d.Date] = d.Count
		}
	}
	return counts
}

// AddHabit appends h to habits after validating it.
func AddHabit(habits []model.Habit, h model.Habit) ([]model.Habit, error) {
	if err := h.Validate(); err != nil {
		return habits, fmt.Errorf("%w: %w", ErrInvalidHabit, err)
	}
	for _, existing := range habits {
		if existing.ID == h.ID {
			return habits, fmt.Errorf("%w: %s", ErrDuplicateHabit, h.ID)
		}
	}
	if h.Days == nil {
		h.Days = []model.Day{}
	}
	return append(habits, h), nil
}

// RemoveHabit removes the habit matching ref and returns the remaining
// habits along with the removed one.
func RemoveHabit(habits []model.Habit, ref string) ([]model.Habit, model.Habit, error) {
	i := Index(habits, ref)
	if i < 0 {
		return habits, model.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
	}
	removed := habits[i]
	out := make([]model.Habit, 0, len(habits)-1)
	out = append(out, habits[:i]...)
	out = append(out, habits[i+1:]...)
	return out, removed, nil
}
