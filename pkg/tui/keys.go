package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Record key.Binding
	Add    key.Binding
	Save   key.Binding
	Reload key.Binding
	Edit   key.Binding
	Reset  key.Binding
	Sync   key.Binding
	Search key.Binding
	Tab    key.Binding
	Help   key.Binding
	Quit   key.Binding
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
		Record: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "record event"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add goal"),
		),
		Save: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Edit: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "$EDITOR"),
		),
		Reset: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "reset"),
		),
		Sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "git sync"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  space record  a add  w save  / search  E $EDITOR  s sync  ? help  q quit"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"space/enter", "Record an event on the goal"},
		{"a", "Add a goal"},
		{"w", "Save"},
		{"R", "Reload the save from disk"},
		{"E", "Edit the save file in $EDITOR"},
		{"X", "Reset goals, badges and score"},
		{"/", "Search goals"},
		{"tab", "Switch pane (goals / details)"},
		{"s", "Git sync"},
		{"?", "Toggle help"},
		{"q", "Quit (saves first)"},
	}
}
