package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Geocentric   key.Binding
	Heliocentric key.Binding
	Live         key.Binding
	Aligned      key.Binding
	BirthDate    key.Binding
	Clock24h     key.Binding
	Clock12h     key.Binding

	Frame    key.Binding
	Sidereal key.Binding
	Labels   key.Binding
	Stars    key.Binding
	Dial     key.Binding
	Pause    key.Binding
	Reset    key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	View     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Geocentric: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "geo"),
		),
		Heliocentric: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "helio"),
		),
		Live: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "live"),
		),
		Aligned: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "aligned"),
		),
		BirthDate: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "birth"),
		),
		Clock24h: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "24h"),
		),
		Clock12h: key.NewBinding(
			key.WithKeys("7"),
			key.WithHelp("7", "12h"),
		),
		Frame: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "frame"),
		),
		Sidereal: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sidereal"),
		),
		Labels: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "labels"),
		),
		Stars: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "stars"),
		),
		Dial: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dial"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "pan"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right", "L"),
			key.WithHelp("→/L", "pan"),
		),
		View: key.NewBinding(
			key.WithKeys("tab", "w"),
			key.WithHelp("tab", "view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// OrreryFooterBindings returns footer bindings for the orrery view.
func OrreryFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.View, km.Frame, km.Dial, km.Sidereal, km.Labels, km.Pause, km.Reset, km.Quit}
}

// StarWallFooterBindings returns footer bindings for the star wall view.
func StarWallFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.View, km.PanLeft, km.PanRight, km.Sidereal, km.Labels, km.Stars, km.Pause, km.Quit}
}
