package core

import (
	"sort"

	"github.com/jmylchreest/daibit/internal/dates"
	"github.com/jmylchreest/daibit/internal/model"
)

// Cell is one day of a habit heatmap.
type Cell struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// CurrentStreak returns the number of consecutive completed days ending
// today. If today is not yet complete the streak is counted from yesterday.
func CurrentStreak(h *model.Habit, today string) int {
	if h.TargetPerDay <= 0 {
		return 0
	}
	counts := countsByDate(h)

	day := today
	if counts[day] < h.TargetPerDay {
		prev, err := dates.AddDays(day, -1)
		if err != nil {
			return 0
		}
		day = prev
	}

	streak := 0
	for counts[day] >= h.TargetPerDay {
		streak++
		prev, err := dates.AddDays(day, -1)
		if err != nil {
			break
		}
		day = prev
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days.
func LongestStreak(h *model.Habit) int {
	if h.TargetPerDay <= 0 {
		return 0
	}

	var done []string
	for date, count := range countsByDate(h) {
		if count < h.TargetPerDay {
			continue
		}
		if _, err := dates.Parse(date); err != nil {
			continue
		}
		done = append(done, date)
	}
	sort.Strings(done)

	longest, run := 0, 0
	for i, date := range done {
		if i > 0 {
			if gap, err := dates.DaysBetween(done[i-1], date); err == nil && gap == 1 {
				run++
			} else {
				run = 1
			}
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// LastLogged returns the latest date with a non-zero count.
func LastLogged(h *model.Habit) (string, bool) {
	last := ""
	for _, d := range h.Days {
		if d.Count > 0 && d.Date > last {
			last = d.Date
		}
	}
	return last, last != ""
}

// Heatmap returns n cells ending at end, oldest first.
func Heatmap(h *model.Habit, end string, n int) ([]Cell, error) {
	days, err := dates.LastN(end, n)
	if err != nil {
		return nil, err
	}
	counts := countsByDate(h)
	cells := make([]Cell, len(days))
	for i, d := range days {
		cells[i] = Cell{Date: d, Count: counts[d]}
	}
	return cells, nil
}
