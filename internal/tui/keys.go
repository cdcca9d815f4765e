package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Log             key.Binding
	Undo            key.Binding
	CycleAccent     key.Binding
	CycleBackground key.Binding
	Refresh         key.Binding
	Back            key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Log, k.Undo, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Log, k.Undo, k.Refresh},
		{k.CycleAccent, k.CycleBackground},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Log: key.NewBinding(
			key.WithKeys(" ", "+", "="),
			key.WithHelp("space/+", "log one"),
		),
		Undo: key.NewBinding(
			key.WithKeys("-", "backspace"),
			key.WithHelp("-", "undo one"),
		),
		CycleAccent: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "next accent"),
		),
		CycleBackground: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next background"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
