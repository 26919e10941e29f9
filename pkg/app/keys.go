package app

import "github.com/charmbracelet/bubbles/key"

// screenKeys are active while no dialog is open. Printable keys go to the
// city input, so actions use Enter and control chords.
type screenKeys struct {
	Submit key.Binding
	Locate key.Binding
	Quit   key.Binding
}

func defaultScreenKeys() screenKeys {
	return screenKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get weather")),
		Locate: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "use current location")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k screenKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Locate, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k screenKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dialogKeys are active while a dialog is open.
type dialogKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
	Switch  key.Binding
	Quit    key.Binding
}

func defaultDialogKeys() dialogKeys {
	return dialogKeys{
		Confirm: key.NewBinding(key.WithKeys("enter", "o", "y"), key.WithHelp("enter", "select")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "c", "n"), key.WithHelp("esc", "cancel")),
		Switch:  key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k dialogKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k dialogKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
