// ABOUTME: Key bindings for the workout session screen.
// ABOUTME: Implements help.KeyMap so the footer can list them.
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Edit   key.Binding
	Toggle key.Binding
	AddSet key.Binding
	Pause  key.Binding
	Finish key.Binding
	Cancel key.Binding
	Help   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev set")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next set")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "weight/reps")),
		Right:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("←/→", "weight/reps")),
		Edit:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		AddSet: key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add set")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
		Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Toggle, k.AddSet, k.Finish, k.Cancel, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left},
		{k.Edit, k.Toggle, k.AddSet},
		{k.Pause, k.Finish, k.Cancel, k.Help},
	}
}
