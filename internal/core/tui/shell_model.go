package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core"
	"github.com/Lin-Jiong-HDU/nlterm/internal/storage"
)

// maxScrollback bounds the lines kept for display
const maxScrollback = 1000

// model is the Bubble Tea model for the interactive shell
type model struct {
	ctx      context.Context
	engine   Executor
	state    core.SessionState
	history  *storage.History
	keys     keyMap
	input    []rune
	lines    []string
	quitting bool
	width    int
	height   int
}

// NewModel creates a shell model running lines through engine
func NewModel(ctx context.Context, engine Executor, state core.SessionState, history *storage.History) Model {
	if history == nil {
		history = storage.NewHistory("", 0)
	}
	return model{
		ctx:     ctx,
		engine:  engine,
		state:   state,
		history: history,
		keys:    defaultKeyMap(),
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
	)
}

func (m model) State() core.SessionState {
	return m.state
}

// Update handles messages
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.keys.Quit.matches(msg), msg.Type == tea.KeyCtrlD && len(m.input) == 0:
		m.quitting = true
		return m, tea.Quit

	case m.keys.Run.matches(msg):
		return m.run()

	case m.keys.Previous.matches(msg):
		if line, ok := m.history.Previous(); ok {
			m.input = []rune(line)
		}

	case m.keys.Next.matches(msg):
		line, _ := m.history.Next()
		m.input = []rune(line)

	case m.keys.Erase.matches(msg):
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case m.keys.ClearLine.matches(msg):
		m.input = nil
		m.history.Reset()

	case m.keys.Clear.matches(msg):
		m.lines = nil

	case msg.Type == tea.KeySpace:
		m.input = append(m.input, ' ')

	case msg.Type == tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}

	return m, nil
}

// run executes the current input line synchronously
func (m model) run() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(string(m.input))
	m.input = nil
	m.appendLines(promptText(m.state.Cwd) + line)

	if line == "" {
		return m, nil
	}
	m.history.Add(line)

	out, next := m.engine.Execute(m.ctx, line, m.state)
	m.state = next

	if out.Clear {
		m.lines = nil
	}
	if out.Output != "" {
		m.appendLines(strings.Split(out.Output, "\n")...)
	}
	if out.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	if len(m.lines) > maxScrollback {
		m.lines = append([]string(nil), m.lines[len(m.lines)-maxScrollback:]...)
	}
}
