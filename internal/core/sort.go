package core

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jmylchreest/daibit/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByOrder  SortField = "order" // Insertion order
	SortByName   SortField = "name"
	SortByTarget SortField = "target"
	SortByStreak SortField = "streak" // Current streak as of SortOptions.Today
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
	Today string    // Reference date for streak sorting
}

// DefaultSortOptions returns default sort options (insertion order).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByOrder,
		Order: SortAsc,
	}
}

// Sort sorts habits in place based on the provided options.
func Sort(habits []model.Habit, opts SortOptions) {
	if len(habits) == 0 {
		return
	}

	if opts.Field == SortByOrder || opts.Field == "" {
		if opts.Order == SortDesc {
			slices.Reverse(habits)
		}
		return
	}

	var streaks map[string]int
	if opts.Field == SortByStreak {
		streaks = make(map[string]int, len(habits))
		for i := range habits {
			streaks[habits[i].ID] = CurrentStreak(&habits[i], opts.Today)
		}
	}

	sort.SliceStable(habits, func(i, j int) bool {
		a, b := habits[i], habits[j]
		if opts.Order == SortDesc {
			a, b = b, a
		}

		switch opts.Field {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByTarget:
			return a.TargetPerDay < b.TargetPerDay
		case SortByStreak:
			return streaks[a.ID] < streaks[b.ID]
		default:
			return false
		}
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "order", "o":
		return SortByOrder, nil
	case "name", "n":
		return SortByName, nil
	case "target", "t":
		return SortByTarget, nil
	case "streak", "s":
		return SortByStreak, nil
	default:
		return SortByOrder, fmt.Errorf("invalid sort field: %s (use order, name, target, or streak)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, fmt.Errorf("invalid sort order: %s (use asc or desc)", s)
	}
}
