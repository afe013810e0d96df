package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shared-garden/internal/core"
)

// KeyMap defines the key bindings of the garden client.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextTile key.Binding
	PrevTile key.Binding
	Place    key.Binding
	Pest     key.Binding
	Grow     key.Binding
	EndTurn  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		NextTile: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next tile"),
		),
		PrevTile: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("S-tab", "prev tile"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place"),
		),
		Pest: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "place pest"),
		),
		Grow: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grow"),
		),
		EndTurn: key.NewBinding(
			key.WithKeys("n", "e"),
			key.WithHelp("n", "end turn"),
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

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Grow, k.EndTurn, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextTile, k.PrevTile, k.Place},
		{k.Pest, k.Grow, k.EndTurn},
		{k.Help, k.Quit},
	}
}

// Action translates a key message to a client action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.NextTile):
		return core.ActionNextTile
	case key.Matches(msg, k.PrevTile):
		return core.ActionPrevTile
	case key.Matches(msg, k.Place):
		return core.ActionPlace
	case key.Matches(msg, k.Pest):
		return core.ActionPest
	case key.Matches(msg, k.Grow):
		return core.ActionGrow
	case key.Matches(msg, k.EndTurn):
		return core.ActionEndTurn
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
