package model

// Default theme selection for a fresh state.
const (
	DefaultAccent     = AccentEmerald
	DefaultBackground = BackgroundAurora
)

// DefaultHabits returns the seed habits used when no prior state exists.
// Each call returns fresh slices.
func DefaultHabits() []Habit {
	return []Habit{
		{
			ID:           "h1",
			Name:         "Workout",
			Emoji:        "💪",
			TargetPerDay: 1,
			Description:  "Complete at least one workout session",
			Days:         []Day{},
		},
		{
			ID:           "h2",
			Name:         "Deep Work",
			Emoji:        "🧠",
			TargetPerDay: 4,
			Description:  "Focus on deep work for at least 4 pomodoros",
			Days:         []Day{},
		},
		{
			ID:           "h3",
			Name:         "Reading",
			Emoji:        "📚",
			TargetPerDay: 1,
			Description:  "Read for at least 15 minutes",
			Days:         []Day{},
		},
		{
			ID:           "h4",
			Name:         "Drinking Water",
			Emoji:        "💧",
			TargetPerDay: 4,
			Description:  "Drink at least 4 bottles of water",
			Days:         []Day{},
		},
		{
			ID:           "h5",
			Name:         "Eating Healthy",
			Emoji:        "🥗",
			TargetPerDay: 3,
			Description:  "Try to eat 3 healthy meals",
			Days:         []Day{},
		},
	}
}

// DefaultTheme returns the theme selection for a fresh state.
func DefaultTheme() Theme {
	return Theme{Accent: DefaultAccent, Background: DefaultBackground}
}

// DefaultState returns a fresh state seeded with the default habits.
func DefaultState() *State {
	return &State{
		SchemaVersion: CurrentSchemaVersion,
		Habits:        DefaultHabits(),
		Theme:         DefaultTheme(),
	}
}
