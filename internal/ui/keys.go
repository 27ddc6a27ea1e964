package ui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/tailboard/internal/state"
)

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	Quit       key.Binding
	Overview   key.Binding
	Tab        key.Binding
	Help       key.Binding
	CycleTheme key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Overview: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "All files"),
		),
		Tab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Single file"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Overview, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Overview, k.Tab},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

// actionFor decodes a key press into the action the render loop consumes.
// Keys the loop has no use for become Noop.
func (k keyMap) actionFor(msg tea.KeyMsg) state.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return state.Quit()
	case key.Matches(msg, k.Overview), key.Matches(msg, k.Tab):
		d, err := strconv.Atoi(msg.String())
		if err != nil {
			return state.Noop()
		}
		return state.SelectTab(d)
	default:
		return state.Noop()
	}
}
