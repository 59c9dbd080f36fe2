package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core"
)

// Executor runs one input line for the shell
type Executor interface {
	Execute(ctx context.Context, line string, state core.SessionState) (core.Outcome, core.SessionState)
}

// Model is the interface for the TUI model
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
	// State returns the session state after the last executed line
	State() core.SessionState
}
