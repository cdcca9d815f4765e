package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/daibit/internal/model"
)

// Index returns the position of the habit matching ref, or -1.
// ref is tried as an exact ID, then a 1-based index, then a
// case-insensitive name.
func Index(habits []model.Habit, ref string) int {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1
	}

	for i := range habits {
		if habits[i].ID == ref {
			return i
		}
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(habits) {
			return n - 1
		}
		return -1
	}

	for i := range habits {
		if strings.EqualFold(habits[i].Name, ref) {
			return i
		}
	}
	return -1
}

// Lookup finds the habit matching ref. The returned pointer refers to the
// element in habits.
func Lookup(habits []model.Habit, ref string) (*model.Habit, error) {
	i := Index(habits, ref)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
	}
	return &habits[i], nil
}
