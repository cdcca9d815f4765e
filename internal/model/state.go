package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentSchemaVersion is the version written by this build.
// Version 0 is an unversioned blob written by the browser widget.
const CurrentSchemaVersion = 1

// Reserved top-level keys of the persisted state.
const (
	keyVersion = "version"
	keyHabits  = "habits"
	keyTheme   = "theme"
)

// ErrMissingTheme is returned when a decoded state has no theme object.
var ErrMissingTheme = errors.New("state has no theme")

// State is the application state persisted under a single storage key.
type State struct {
	SchemaVersion int
	Habits        []Habit
	Theme         Theme

	// Extra holds top-level fields daibit does not model. They are carried
	// through load and save untouched.
	Extra map[string]json.RawMessage
}

// MarshalJSON writes the state as a flat object with the extra fields alongside
// version, habits and theme. Only accent and background of the theme are written.
func (s State) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+3)
	for k, v := range s.Extra {
		out[k] = v
	}

	habits := s.Habits
	if habits == nil {
		habits = []Habit{}
	}
	out[keyVersion] = s.SchemaVersion
	out[keyHabits] = habits
	out[keyTheme] = Theme{Accent: s.Theme.Accent, Background: s.Theme.Background}

	return json.Marshal(out)
}

// UnmarshalJSON reads a flat state object. The theme field is required;
// every field other than version, habits and theme lands in Extra.
func (s *State) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	rawTheme, ok := fields[keyTheme]
	if !ok || string(rawTheme) == "null" {
		return ErrMissingTheme
	}

	var decoded State
	if err := json.Unmarshal(rawTheme, &decoded.Theme); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if raw, ok := fields[keyVersion]; ok {
		if err := json.Unmarshal(raw, &decoded.SchemaVersion); err != nil {
			return fmt.Errorf("version: %w", err)
		}
	}
	if raw, ok := fields[keyHabits]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &decoded.Habits); err != nil {
			return fmt.Errorf("habits: %w", err)
		}
	}

	delete(fields, keyVersion)
	delete(fields, keyHabits)
	delete(fields, keyTheme)
	if len(fields) > 0 {
		decoded.Extra = fields
	}

	*s = decoded
	return nil
}

// Clone returns a copy of the state whose habits can be mutated freely.
// Extra values are shared; they are treated as opaque and never modified.
func (s *State) Clone() *State {
	clone := *s
	if s.Habits != nil {
		clone.Habits = make([]Habit, len(s.Habits))
		for i := range s.Habits {
			clone.Habits[i] = s.Habits[i].Clone()
		}
	}
	if s.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}
