package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vidyasagar/deskup/internal/ui"
)

// KeyMap defines all keybindings for deskup.
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding
	PageDown   key.Binding
	PageUp     key.Binding

	// Actions
	Activate key.Binding
	Preview  key.Binding
	Retry    key.Binding
	Theme    key.Binding

	// General
	Help  key.Binding
	Close key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up", "shift+tab"),
			key.WithHelp("k/up", "previous item"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down", "tab"),
			key.WithHelp("j/down", "next item"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first item"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last item"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open / toggle / done"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview web bookmark"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry failed"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close popup"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HelpGroups lays the bindings out for the help overlay.
func (k KeyMap) HelpGroups() []ui.HelpGroup {
	group := func(name string, bindings ...key.Binding) ui.HelpGroup {
		g := ui.HelpGroup{Name: name}
		for _, b := range bindings {
			h := b.Help()
			g.Bindings = append(g.Bindings, ui.HelpBinding{Key: h.Key, Desc: h.Desc})
		}
		return g
	}
	return []ui.HelpGroup{
		group("Navigation", k.Up, k.Down, k.GotoTop, k.GotoBottom, k.PageDown, k.PageUp),
		group("Actions", k.Activate, k.Preview, k.Retry, k.Theme),
		group("General", k.Help, k.Close, k.Quit),
	}
}
