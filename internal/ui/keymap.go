package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application.
type KeyMap struct {
	Quit  key.Binding
	Back  key.Binding
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	NextTab key.Binding
	PrevTab key.Binding

	Reload    key.Binding
	Export    key.Binding
	SortOrder key.Binding
	Logs      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		SortOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort order"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logs"),
		),
	}
}

// ContextualHelp returns the bindings relevant to a route, in display order.
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteAddress:
		return []key.Binding{k.Enter, k.Logs, k.Quit}
	case RouteDashboard:
		return []key.Binding{k.NextTab, k.Up, k.Down, k.SortOrder, k.Export, k.Reload, k.Back, k.Quit}
	case RouteLogs:
		return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
	default:
		return []key.Binding{k.Quit}
	}
}
