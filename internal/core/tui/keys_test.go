package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyMap_Help(t *testing.T) {
	km := defaultKeyMap()

	helpText := km.Help().String()
	if helpText == "" {
		t.Error("Expected help to be generated")
	}

	// Verify key bindings are present
	if !strings.Contains(helpText, "run") || !strings.Contains(helpText, "quit") {
		t.Error("Expected help to contain run and quit actions")
	}
}

func TestKeyMap_Bindings(t *testing.T) {
	km := defaultKeyMap()

	for _, k := range km.fullHelp() {
		if k.help == "" {
			t.Errorf("Binding %v has no help text", k.Type)
		}
	}

	if !km.Run.matches(tea.KeyMsg{Type: tea.KeyEnter}) {
		t.Error("Expected enter to run")
	}
	if km.Run.matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}) {
		t.Error("Runes must not trigger run")
	}
}

func TestHelpWrapper_View(t *testing.T) {
	view := defaultKeyMap().Help().View()
	if strings.Count(view, "[") != 4 {
		t.Errorf("Expected 4 short-help entries, got %q", view)
	}
}
