package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Filter      key.Binding
	ToggleAll   key.Binding
	Projects    key.Binding
	Payments    key.Binding
	Funds       key.Binding
	Reload      key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all/unsettled")),
		Projects:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		Payments:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my payments")),
		Funds:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "contributions")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
