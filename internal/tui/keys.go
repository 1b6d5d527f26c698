package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Place key.Binding
	Cell  key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Place: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "place")),
		Cell: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "place on cell"),
		),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new game")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (that keyMap) ShortHelp() []key.Binding {
	return []key.Binding{that.Place, that.Reset, that.Help, that.Quit}
}

func (that keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{that.Up, that.Down, that.Left, that.Right},
		{that.Place, that.Cell, that.Reset},
		{that.Help, that.Quit},
	}
}
