// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/daibit/internal/config"
	"github.com/jmylchreest/daibit/internal/core"
	"github.com/jmylchreest/daibit/internal/dates"
	"github.com/jmylchreest/daibit/internal/model"
	"github.com/jmylchreest/daibit/internal/store"
	"github.com/jmylchreest/daibit/internal/theme"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeBoard Mode = iota
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg   *config.Config
	store *store.StateStore

	// Current mode
	mode Mode

	// State
	state   *model.State
	palette theme.Palette
	cursor  int
	width   int
	height  int
	ready   bool

	// Components
	keys KeyMap
	help help.Model

	// Status message
	statusMsg string
	statusErr bool

	// Signalled by the state watcher
	refreshCh <-chan struct{}

	// Fed by the config watcher
	configCh <-chan *config.Config
}

// New creates a new TUI model and loads the current state.
func New(cfg *config.Config, s *store.StateStore) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := Model{
		cfg:   cfg,
		store: s,
		mode:  ModeBoard,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.apply(s.LoadOrDefault(cfg.SeedState))
	return m
}

// State returns the state currently shown.
func (m Model) State() *model.State {
	return m.state
}

// Cursor returns the index of the selected habit.
func (m Model) Cursor() int {
	return m.cursor
}

// apply replaces the shown state and palette with a snapshot.
func (m *Model) apply(snap *store.Snapshot) {
	m.state = snap.State
	m.palette = theme.NewPalette(snap.Theme)
	if m.cursor >= len(m.state.Habits) {
		m.cursor = max(len(m.state.Habits)-1, 0)
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watchForChanges,
		m.watchConfig,
	)
}

// watchForChanges waits for the state watcher to report a change.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	if _, ok := <-m.refreshCh; !ok {
		return nil
	}
	return refreshMsg{}
}

type refreshMsg struct{}

// watchConfig waits for the config watcher to deliver a reloaded config.
func (m Model) watchConfig() tea.Msg {
	if m.configCh == nil {
		return nil
	}
	cfg, ok := <-m.configCh
	if !ok {
		return nil
	}
	return configMsg{cfg: cfg}
}

type configMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case refreshMsg:
		m.apply(m.store.LoadOrDefault(m.cfg.SeedState))
		return m, m.watchForChanges

	case configMsg:
		m.cfg = msg.cfg
		m.store.SetResolver(msg.cfg.Resolver())
		m.apply(m.store.Resolve(m.state))
		return m, tea.Batch(m.watchConfig, status("Config reloaded", false))

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeBoard
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeBoard
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Habits)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Log):
		return m.logSelected(1)

	case key.Matches(msg, m.keys.Undo):
		return m.logSelected(-1)

	case key.Matches(msg, m.keys.CycleAccent):
		next := m.state.Clone()
		next.Theme.Accent = theme.NextAccent(next.Theme.Accent)
		return m.commit(next, "Accent: "+string(next.Theme.Accent))

	case key.Matches(msg, m.keys.CycleBackground):
		next := m.state.Clone()
		next.Theme.Background = theme.NextBackground(next.Theme.Background)
		return m.commit(next, "Background: "+string(next.Theme.Background))

	case key.Matches(msg, m.keys.Refresh):
		m.apply(m.store.LoadOrDefault(m.cfg.SeedState))
		return m, status("Reloaded", false)
	}

	return m, nil
}

// logSelected adds delta to today's count of the selected habit.
func (m Model) logSelected(delta int) (tea.Model, tea.Cmd) {
	if len(m.state.Habits) == 0 {
		return m, nil
	}

	next := m.state.Clone()
	h := &next.Habits[m.cursor]
	count, err := core.Log(h, dates.Today(), delta)
	if err != nil {
		return m, status("Log failed: "+err.Error(), true)
	}

	return m.commit(next, fmt.Sprintf("%s %d/%d", h.Label(), count, h.TargetPerDay))
}

// commit shows next and saves it. A failed save keeps the change in memory.
func (m Model) commit(next *model.State, text string) (tea.Model, tea.Cmd) {
	m.apply(m.store.Resolve(next))
	if !m.store.SaveBestEffort(next) {
		return m, status(text+" (not saved)", true)
	}
	return m, status(text, false)
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.viewHelp()
	default:
		return m.viewBoard()
	}
}

func (m Model) viewBoard() string {
	today := dates.Today()
	days := m.cfg.TUI.Days

	title := m.palette.Accent().Render("daibit") + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(today)

	var rows []string
	rows = append(rows, title, "")

	if len(m.state.Habits) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
			Render("No habits yet. Add one with: daibit habits add"))
	}

	nameWidth := 0
	for i := range m.state.Habits {
		nameWidth = max(nameWidth, lipgloss.Width(m.state.Habits[i].Label()))
	}

	for i := range m.state.Habits {
		rows = append(rows, m.renderRow(&m.state.Habits[i], i == m.cursor, nameWidth, today, days))
	}

	s := m.palette.Frame().Render(strings.Join(rows, "\n"))

	// Status bar
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	} else if m.cfg.TUI.ShowHelp {
		s += "\n" + m.buildKeybindBar(m.width)
	}

	return s
}

// renderRow renders one habit: label, today's progress, heatmap and streak.
func (m Model) renderRow(h *model.Habit, selected bool, nameWidth int, today string, days int) string {
	marker := "  "
	label := lipgloss.NewStyle().Width(nameWidth).Render(h.Label())
	if selected {
		marker = m.palette.Accent().Render("▸ ")
		label = lipgloss.NewStyle().Bold(true).Width(nameWidth).Render(h.Label())
	}

	count := core.CountOn(h, today)
	progress := fmt.Sprintf("%d/%d", count, h.TargetPerDay)
	if core.Completed(h, today) {
		progress = m.palette.Accent().Render(progress)
	}

	var cells strings.Builder
	heatmap, err := core.Heatmap(h, today, days)
	if err == nil {
		for _, c := range heatmap {
			cells.WriteString(m.palette.Cell(c.Count).Render("  "))
			cells.WriteString(" ")
		}
	}

	streak := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render(fmt.Sprintf("🔥%d", core.CurrentStreak(h, today)))

	return marker + label + "  " +
		lipgloss.NewStyle().Width(7).Render(progress) +
		cells.String() + " " + streak
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.FullHelpView(m.keys.FullHelp())

	r := m.palette.Theme()
	s += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		fmt.Sprintf("Theme: %s on %s (%s)", r.Accent, r.Background, m.store.Resolver().Mapping()))

	s += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	binds := []keybind{
		{"q", "quit", 1},
		{"space", "log", 2},
		{"-", "undo", 3},
		{"?", "help", 4},
		{"a", "accent", 5},
		{"b", "background", 6},
		{"r", "reload", 7},
	}

	// Build the bar, adding keybinds until we run out of space
	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		testLen := lipgloss.Width(result) + len(separator) + lipgloss.Width(b.key+" "+b.desc)
		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	Store      *store.StateStore
	WatchPath  string // Storage file to watch for changes (empty = no watching)
	ConfigPath string // Config file to hot-reload (empty = default path)
	Logger     *slog.Logger
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := New(opts.Config, opts.Store)

	// Start file watcher if a storage path is provided
	var watcher *store.StateWatcher
	if opts.WatchPath != "" {
		ch := make(chan struct{}, 1)
		var err error
		watcher, err = store.NewStateWatcher(opts.WatchPath, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		}, logger)
		if err != nil {
			logger.Warn("failed to create state watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start state watcher", "error", err)
		} else {
			m.refreshCh = ch
		}
	}

	// Hot-reload the config file
	cfgCh := make(chan *config.Config, 1)
	cfgWatcher := config.NewWatcher(opts.ConfigPath, logger)
	cfgWatcher.SetReloadCallback(func(cfg *config.Config) {
		select {
		case cfgCh <- cfg:
		default:
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := cfgWatcher.Start(ctx, m.cfg); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
	} else {
		m.configCh = cfgCh
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()

	// Stop watchers on exit
	cfgWatcher.Stop()
	if watcher != nil {
		_ = watcher.Stop()
	}

	return err
}
