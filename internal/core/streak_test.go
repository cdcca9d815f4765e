package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/daibit/internal/model"
)

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		days  []model.Day
		today string
		want  int
	}{
		{
			name:  "no history",
			today: "2024-03-10",
			want:  0,
		},
		{
			name: "includes today",
			days: []model.Day{
				{Date: "2024-03-08", Count: 2},
				{Date: "2024-03-09", Count: 2},
				{Date: "2024-03-10", Count: 3},
			},
			today: "2024-03-10",
			want:  3,
		},
		{
			name: "today not yet done",
			days: []model.Day{
				{Date: "2024-03-08", Count: 2},
				{Date: "2024-03-09", Count: 2},
				{Date: "2024-03-10", Count: 1},
			},
			today: "2024-03-10",
			want:  2,
		},
		{
			name: "broken by missed day",
			days: []model.Day{
				{Date: "2024-03-07", Count: 2},
				{Date: "2024-03-09", Count: 2},
				{Date: "2024-03-10", Count: 2},
			},
			today: "2024-03-10",
			want:  2,
		},
		{
			name: "broken by partial day",
			days: []model.Day{
				{Date: "2024-03-08", Count: 2},
				{Date: "2024-03-09", Count: 1},
			},
			today: "2024-03-10",
			want:  0,
		},
		{
			name: "crosses month boundary",
			days: []model.Day{
				{Date: "2024-02-28", Count: 2},
				{Date: "2024-02-29", Count: 2},
				{Date: "2024-03-01", Count: 2},
			},
			today: "2024-03-01",
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHabit(2, tt.days...)
			assert.Equal(t, tt.want, CurrentStreak(h, tt.today))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	h := newHabit(1,
		model.Day{Date: "2024-03-01", Count: 1},
		model.Day{Date: "2024-03-02", Count: 1},
		model.Day{Date: "2024-03-04", Count: 1},
		model.Day{Date: "2024-03-05", Count: 2},
		model.Day{Date: "2024-03-06", Count: 1},
		model.Day{Date: "2024-03-07", Count: 0},
		model.Day{Date: "bogus", Count: 5},
	)
	assert.Equal(t, 3, LongestStreak(h))

	assert.Equal(t, 0, LongestStreak(newHabit(1)))
}

func TestLongestStreak_UnorderedDays(t *testing.T) {
	h := newHabit(1,
		model.Day{Date: "2024-03-03", Count: 1},
		model.Day{Date: "2024-03-01", Count: 1},
		model.Day{Date: "2024-03-02", Count: 1},
	)
	assert.Equal(t, 3, LongestStreak(h))
}

func TestLastLogged(t *testing.T) {
	h := newHabit(1,
		model.Day{Date: "2024-03-04", Count: 1},
		model.Day{Date: "2024-03-01", Count: 2},
		model.Day{Date: "2024-03-06", Count: 0},
	)

	last, ok := LastLogged(h)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-04", last)

	_, ok = LastLogged(newHabit(1))
	assert.False(t, ok)
}

func TestHeatmap(t *testing.T) {
	h := newHabit(2,
		model.Day{Date: "2024-03-09", Count: 1},
		model.Day{Date: "2024-03-10", Count: 4},
		model.Day{Date: "2024-02-01", Count: 3},
	)

	cells, err := Heatmap(h, "2024-03-10", 3)
	require.NoError(t, err)
	assert.Equal(t, []Cell{
		{Date: "2024-03-08", Count: 0},
		{Date: "2024-03-09", Count: 1},
		{Date: "2024-03-10", Count: 4},
	}, cells)

	cells, err = Heatmap(h, "2024-03-10", 0)
	require.NoError(t, err)
	assert.Empty(t, cells)

	_, err = Heatmap(h, "not-a-date", 3)
	assert.Error(t, err)
}
