package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type keyMap struct {
	Send    key.Binding
	Newline key.Binding
	Copy    key.Binding
	Quit    key.Binding
}

// Most terminals cannot report shift+enter, so alt+enter and ctrl+j stand
// in for it.
func defaultKeyMap() keyMap {
	return keyMap{
		Send:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Send")),
		Newline: key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("Alt+Enter", "Newline")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("Ctrl+Y", "Copy reply")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("Esc", "Quit")),
	}
}

func (k keyMap) shortcuts() []key.Binding {
	return []key.Binding{k.Send, k.Newline, k.Copy, k.Quit}
}

// viewportKeyMap leaves letter keys to the textarea.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Down:         key.NewBinding(key.WithKeys("ctrl+down")),
		Up:           key.NewBinding(key.WithKeys("ctrl+up")),
	}
}
