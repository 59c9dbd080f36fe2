package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines key bindings for the shell
type keyMap struct {
	Run       key
	Previous  key
	Next      key
	Erase     key
	ClearLine key
	Clear     key
	Quit      key
}

// key represents a key binding with help text
type key struct {
	tea.Key
	help string
}

// matches reports whether msg triggers k.
func (k key) matches(msg tea.KeyMsg) bool {
	return msg.Type == k.Type
}

// shortHelp returns key bindings for the status bar
func (k keyMap) shortHelp() []key {
	return []key{k.Run, k.Previous, k.Clear, k.Quit}
}

// fullHelp returns all key bindings
func (k keyMap) fullHelp() []key {
	return []key{
		k.Run, k.Previous, k.Next,
		k.Erase, k.ClearLine, k.Clear, k.Quit,
	}
}

// Help generates the help view
func (k keyMap) Help() helpWrapper {
	return helpWrapper{
		keyMap: k,
	}
}

// helpWrapper wraps the keyMap for help display
type helpWrapper struct {
	keyMap keyMap
}

// String returns the help text
func (h helpWrapper) String() string {
	var s string
	for _, k := range h.keyMap.fullHelp() {
		if k.help != "" {
			s += k.help + " "
		}
	}
	return s
}

// View returns the short help view
func (h helpWrapper) View() string {
	var s string
	for _, k := range h.keyMap.shortHelp() {
		s += "[" + k.help + "] "
	}
	return s
}

// defaultKeyMap creates the default key bindings
func defaultKeyMap() keyMap {
	return keyMap{
		Run: key{
			Key:  tea.Key{Type: tea.KeyEnter},
			help: "enter run",
		},
		Previous: key{
			Key:  tea.Key{Type: tea.KeyUp},
			help: "↑/↓ history",
		},
		Next: key{
			Key:  tea.Key{Type: tea.KeyDown},
			help: "↓ next",
		},
		Erase: key{
			Key:  tea.Key{Type: tea.KeyBackspace},
			help: "backspace delete",
		},
		ClearLine: key{
			Key:  tea.Key{Type: tea.KeyEsc},
			help: "esc clear input",
		},
		Clear: key{
			Key:  tea.Key{Type: tea.KeyCtrlL},
			help: "ctrl+l clear screen",
		},
		Quit: key{
			Key:  tea.Key{Type: tea.KeyCtrlC},
			help: "ctrl+c quit",
		},
	}
}
