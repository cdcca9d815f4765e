package tui

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/daibit/internal/config"
	"github.com/jmylchreest/daibit/internal/dates"
	"github.com/jmylchreest/daibit/internal/model"
	"github.com/jmylchreest/daibit/internal/store"
	"github.com/jmylchreest/daibit/internal/theme"
)

func pinToday(t *testing.T) {
	t.Helper()
	orig := dates.Now
	dates.Now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { dates.Now = orig })
}

func newTestModel(t *testing.T, storage store.Storage) Model {
	t.Helper()
	pinToday(t)
	s := store.NewStateStore(storage, store.StateOptions{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m := New(config.DefaultConfig(), s)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func statusOf(t *testing.T, cmd tea.Cmd) statusMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	return msg
}

func TestNew_SeedsDefaults(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())

	require.Len(t, m.State().Habits, 5)
	assert.Equal(t, model.DefaultTheme(), m.State().Theme)
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())

	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.Cursor())

	m, _ = press(t, m, "down", "j", "down")
	assert.Equal(t, 3, m.Cursor())

	m, _ = press(t, m, "down", "down", "down")
	assert.Equal(t, 4, m.Cursor())

	m, _ = press(t, m, "k")
	assert.Equal(t, 3, m.Cursor())
}

func TestModel_LogAndUndoPersist(t *testing.T) {
	mem := store.NewMemoryStorage()
	m := newTestModel(t, mem)

	m, _ = press(t, m, "down", "+", "+")
	m, cmd := press(t, m, "-")

	h := m.State().Habits[1]
	assert.Equal(t, []model.Day{{Date: "2024-03-10", Count: 1}}, h.Days)

	msg := statusOf(t, cmd)
	assert.False(t, msg.isErr)
	assert.Contains(t, msg.text, "Deep Work 1/4")

	// Persisted through the state store
	s := store.NewStateStore(mem, store.StateOptions{})
	snap, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, h.Days, snap.State.Habits[1].Days)
}

func TestModel_CycleTheme(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())

	m, _ = press(t, m, "a")
	assert.Equal(t, model.AccentCyan, m.State().Theme.Accent)
	assert.Equal(t, model.AccentCyan, m.palette.Theme().Accent)

	m, _ = press(t, m, "b", "b")
	assert.Equal(t, model.BackgroundCarbon, m.State().Theme.Background)
	want := theme.Resolve(model.Theme{Accent: model.AccentCyan, Background: model.BackgroundCarbon})
	assert.Equal(t, want.BackgroundClass, m.palette.Theme().BackgroundClass)
}

// readOnlyStorage serves reads but rejects every write.
type readOnlyStorage struct {
	*store.MemoryStorage
}

func (readOnlyStorage) SetItem(string, string) error { return errors.New("read-only") }

func TestModel_SaveFailureKeepsChange(t *testing.T) {
	m := newTestModel(t, readOnlyStorage{store.NewMemoryStorage()})

	m, cmd := press(t, m, " ")
	assert.Equal(t, 1, m.State().Habits[0].Days[0].Count)

	msg := statusOf(t, cmd)
	assert.True(t, msg.isErr)
	assert.Contains(t, msg.text, "not saved")
}

func TestModel_RefreshPicksUpExternalChange(t *testing.T) {
	mem := store.NewMemoryStorage()
	m := newTestModel(t, mem)

	external := model.DefaultState()
	external.Habits = external.Habits[:2]
	external.Theme.Accent = model.AccentAmber
	require.NoError(t, store.NewStateStore(mem, store.StateOptions{}).Save(external))

	m, _ = press(t, m, "down", "down", "down")
	updated, _ := m.Update(refreshMsg{})
	m = updated.(Model)

	assert.Len(t, m.State().Habits, 2)
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, model.AccentAmber, m.palette.Theme().Accent)
}

func TestModel_HelpMode(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())

	m, _ = press(t, m, "?")
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	// Logging is disabled while help is shown
	m, _ = press(t, m, "+")
	assert.Empty(t, m.State().Habits[0].Days)

	m, _ = press(t, m, "esc")
	assert.Equal(t, ModeBoard, m.mode)
}

func TestModel_ViewBoard(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())
	m, _ = press(t, m, "+")

	view := m.View()
	assert.Contains(t, view, "daibit")
	assert.Contains(t, view, "2024-03-10")
	assert.Contains(t, view, "Workout")
	assert.Contains(t, view, "Eating Healthy")
	assert.Contains(t, view, "1/1")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBuildKeybindBar_FitsWidth(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())

	bar := m.buildKeybindBar(20)
	assert.Contains(t, bar, "quit")
	assert.NotContains(t, bar, "reload")
}

func TestModel_ConfigReload(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStorage())

	cfg := config.DefaultConfig()
	cfg.TUI.Days = 3
	cfg.TUI.ShowHelp = false
	cfg.Theme.BackgroundMapping = "intended"

	updated, cmd := m.Update(configMsg{cfg: cfg})
	m = updated.(Model)
	require.NotNil(t, cmd)

	assert.Equal(t, 3, m.cfg.TUI.Days)
	assert.Equal(t, theme.MappingIntended, m.store.Resolver().Mapping())
	want := theme.NewResolver(theme.MappingIntended).Resolve(model.DefaultTheme())
	assert.Equal(t, want, m.palette.Theme())
	assert.NotContains(t, m.View(), "quit")
}
