package store

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/daibit/internal/model"
	"github.com/jmylchreest/daibit/internal/theme"
)

var errQuotaExceeded = errors.New("quota exceeded")

// failingStorage rejects every write, like a full or disabled browser storage.
type failingStorage struct {
	*MemoryStorage
}

func (f failingStorage) SetItem(key, value string) error {
	return errQuotaExceeded
}

func (f failingStorage) RemoveItem(key string) error {
	return errQuotaExceeded
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStateStore(s Storage) *StateStore {
	return NewStateStore(s, StateOptions{Logger: quietLogger()})
}

func TestNewStateStore_Defaults(t *testing.T) {
	ss := NewStateStore(NewMemoryStorage(), StateOptions{})
	assert.Equal(t, DefaultKey, ss.Key())
	assert.Equal(t, theme.MappingLegacy, ss.Resolver().Mapping())
}

func TestStateStore_LoadAbsent(t *testing.T) {
	ss := newTestStateStore(NewMemoryStorage())

	snap, err := ss.Load()
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, ErrNoState)
}

func TestStateStore_LoadEmptyEntry(t *testing.T) {
	mem := NewMemoryStorage()
	require.NoError(t, mem.SetItem(DefaultKey, ""))

	_, err := newTestStateStore(mem).Load()
	assert.ErrorIs(t, err, ErrNoState)
}

func TestStateStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated", `{"habits":[{"id":"h1"`},
		{"not json", `hello`},
		{"json null", `null`},
		{"json number", `42`},
		{"missing theme", `{"habits":[]}`},
		{"newer schema", `{"version":99,"habits":[],"theme":{"accent":"cyan","background":"carbon"}}`},
		{"negative schema", `{"version":-1,"habits":[],"theme":{"accent":"cyan","background":"carbon"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := NewMemoryStorage()
			require.NoError(t, mem.SetItem(DefaultKey, tt.raw))

			snap, err := newTestStateStore(mem).Load()
			assert.Nil(t, snap)
			assert.ErrorIs(t, err, ErrCorruptState)
			assert.NotErrorIs(t, err, ErrNoState)
		})
	}
}

func TestStateStore_LoadStorageError(t *testing.T) {
	mem := NewMemoryStorage()
	mem.Close()

	_, err := newTestStateStore(mem).Load()
	assert.ErrorIs(t, err, ErrStorageClosed)
}

func TestStateStore_SaveLoadRoundTrip(t *testing.T) {
	ss := newTestStateStore(NewMemoryStorage())

	state := model.DefaultState()
	state.Theme = model.Theme{Accent: model.AccentCyan, Background: model.BackgroundMidnight}
	state.Habits[0].Days = append(state.Habits[0].Days, model.Day{Date: "2024-05-01", Count: 2})

	require.NoError(t, ss.Save(state))

	snap, err := ss.Load()
	require.NoError(t, err)

	assert.Equal(t, model.AccentCyan, snap.State.Theme.Accent)
	assert.Equal(t, model.BackgroundMidnight, snap.State.Theme.Background)
	assert.Equal(t, theme.Resolve(state.Theme), snap.Theme)
	assert.Equal(t, state.Habits, snap.State.Habits)
	assert.Equal(t, model.CurrentSchemaVersion, snap.State.SchemaVersion)
}

func TestStateStore_SaveWritesOnlySelection(t *testing.T) {
	mem := NewMemoryStorage()
	ss := newTestStateStore(mem)

	state := model.DefaultState()
	state.Extra = map[string]json.RawMessage{"selectedHabitId": json.RawMessage(`"h3"`)}
	require.NoError(t, ss.Save(state))

	raw, ok, err := mem.GetItem(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)

	var stored map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.JSONEq(t, `{"accent":"emerald","background":"aurora"}`, string(stored["theme"]))
	assert.JSONEq(t, `"h3"`, string(stored["selectedHabitId"]))
	assert.JSONEq(t, `1`, string(stored["version"]))
	assert.NotContains(t, raw, "accentTextClass")
}

func TestStateStore_SaveDoesNotModifyInput(t *testing.T) {
	ss := newTestStateStore(NewMemoryStorage())

	state := model.DefaultState()
	state.SchemaVersion = 0
	require.NoError(t, ss.Save(state))
	assert.Equal(t, 0, state.SchemaVersion)
}

func TestStateStore_LoadUpgradesLegacyBlob(t *testing.T) {
	// Written by the browser widget: no version, theme carries stale derived fields.
	legacy := `{
		"habits":[{"id":"h1","name":"Workout","emoji":"💪","targetPerDay":1,"days":[{"date":"2024-04-01","count":1}]}],
		"theme":{"accent":"rose","background":"aurora","accentTextClass":"text-rose-500"},
		"selectedHabitId":"h1"
	}`
	mem := NewMemoryStorage()
	require.NoError(t, mem.SetItem(DefaultKey, legacy))
	ss := newTestStateStore(mem)

	snap, err := ss.Load()
	require.NoError(t, err)
	assert.Equal(t, model.CurrentSchemaVersion, snap.State.SchemaVersion)
	assert.Equal(t, "text-rose-500", snap.Theme.AccentTextClass)
	assert.Contains(t, snap.State.Extra, "selectedHabitId")

	// Saving writes the upgraded record and keeps the extra field
	require.NoError(t, ss.Save(snap.State))
	again, err := ss.Load()
	require.NoError(t, err)
	assert.Equal(t, snap.State.Habits, again.State.Habits)
	assert.JSONEq(t, `"h1"`, string(again.State.Extra["selectedHabitId"]))
}

func TestStateStore_LoadDoesNotValidateHabits(t *testing.T) {
	raw := `{"version":1,"habits":[{"id":"","name":"","targetPerDay":-2,"days":[{"date":"whenever","count":-5}]}],"theme":{"accent":"amber","background":"carbon"}}`
	mem := NewMemoryStorage()
	require.NoError(t, mem.SetItem(DefaultKey, raw))

	snap, err := newTestStateStore(mem).Load()
	require.NoError(t, err)
	require.Len(t, snap.State.Habits, 1)
	assert.Equal(t, -5, snap.State.Habits[0].Days[0].Count)
}

func TestStateStore_SaveFailureIsReturned(t *testing.T) {
	ss := newTestStateStore(failingStorage{NewMemoryStorage()})

	err := ss.Save(model.DefaultState())
	assert.ErrorIs(t, err, errQuotaExceeded)

	assert.Error(t, ss.Save(nil))
}

func TestStateStore_SaveBestEffortSwallowsFailure(t *testing.T) {
	ss := newTestStateStore(failingStorage{NewMemoryStorage()})

	assert.NotPanics(t, func() {
		assert.False(t, ss.SaveBestEffort(model.DefaultState()))
	})

	ok := newTestStateStore(NewMemoryStorage()).SaveBestEffort(model.DefaultState())
	assert.True(t, ok)
}

func TestStateStore_LoadOrDefault(t *testing.T) {
	t.Run("absent seeds defaults", func(t *testing.T) {
		snap := newTestStateStore(NewMemoryStorage()).LoadOrDefault(nil)
		assert.Len(t, snap.State.Habits, 5)
		assert.Equal(t, theme.Resolve(model.DefaultTheme()), snap.Theme)
	})

	t.Run("corrupt seeds defaults", func(t *testing.T) {
		mem := NewMemoryStorage()
		require.NoError(t, mem.SetItem(DefaultKey, "{{{"))
		snap := newTestStateStore(mem).LoadOrDefault(nil)
		assert.Len(t, snap.State.Habits, 5)
	})

	t.Run("custom seed", func(t *testing.T) {
		seed := func() *model.State {
			s := model.DefaultState()
			s.Theme.Accent = model.AccentViolet
			return s
		}
		snap := newTestStateStore(NewMemoryStorage()).LoadOrDefault(seed)
		assert.Equal(t, "text-violet-500", snap.Theme.AccentTextClass)
	})

	t.Run("saved state wins", func(t *testing.T) {
		ss := newTestStateStore(NewMemoryStorage())
		saved := model.DefaultState()
		saved.Habits = saved.Habits[:2]
		require.NoError(t, ss.Save(saved))

		snap := ss.LoadOrDefault(nil)
		assert.Len(t, snap.State.Habits, 2)
	})
}

func TestStateStore_IntendedMapping(t *testing.T) {
	mem := NewMemoryStorage()
	ss := NewStateStore(mem, StateOptions{
		Resolver: theme.NewResolver(theme.MappingIntended),
		Logger:   quietLogger(),
	})
	require.NoError(t, ss.Save(model.DefaultState()))

	snap, err := ss.Load()
	require.NoError(t, err)
	assert.Equal(t, theme.NewResolver(theme.MappingIntended).BackgroundClass(model.BackgroundAurora), snap.Theme.BackgroundClass)
	assert.NotEqual(t, theme.Resolve(model.DefaultTheme()).BackgroundClass, snap.Theme.BackgroundClass)
}

func TestStateStore_CustomKey(t *testing.T) {
	mem := NewMemoryStorage()
	ss := NewStateStore(mem, StateOptions{Key: "other", Logger: quietLogger()})
	require.NoError(t, ss.Save(model.DefaultState()))

	_, ok, err := mem.GetItem("other")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = mem.GetItem(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_Reset(t *testing.T) {
	ss := newTestStateStore(NewMemoryStorage())
	require.NoError(t, ss.Save(model.DefaultState()))
	require.NoError(t, ss.Reset())

	_, err := ss.Load()
	assert.ErrorIs(t, err, ErrNoState)

	failing := newTestStateStore(failingStorage{NewMemoryStorage()})
	assert.ErrorIs(t, failing.Reset(), errQuotaExceeded)
}

func TestStateStore_FileBackedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	fs, err := NewFileStorage(path)
	require.NoError(t, err)

	state := model.DefaultState()
	state.Habits[1].Days = []model.Day{{Date: "2024-06-01", Count: 4}}
	require.NoError(t, newTestStateStore(fs).Save(state))

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	snap, err := newTestStateStore(reopened).Load()
	require.NoError(t, err)
	assert.Equal(t, 4, snap.State.Habits[1].Days[0].Count)
}

func TestStateStore_SaveBestEffortOnNullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0600))
	fs, err := NewFileStorage(path)
	require.NoError(t, err)
	s := newTestStateStore(fs)

	assert.NotPanics(t, func() {
		assert.True(t, s.SaveBestEffort(model.DefaultState()))
	})
	snap, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, snap.State.Habits, 5)
}

func TestStateStore_SetResolver(t *testing.T) {
	s := NewStateStore(NewMemoryStorage(), StateOptions{Logger: quietLogger()})
	assert.Equal(t, theme.MappingLegacy, s.Resolver().Mapping())

	s.SetResolver(nil)
	assert.Equal(t, theme.MappingLegacy, s.Resolver().Mapping())

	s.SetResolver(theme.NewResolver(theme.MappingIntended))
	snap := s.Resolve(model.DefaultState())
	assert.Equal(t, theme.Resolve(model.DefaultTheme()).AccentTextClass, snap.Theme.AccentTextClass)
	assert.Equal(t, theme.MappingIntended, s.Resolver().Mapping())
}
