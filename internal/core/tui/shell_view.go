package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lin-Jiong-HDU/nlterm/internal/terminal"
)

// View renders the UI
func (m model) View() string {
	if m.quitting {
		return strings.Join(m.lines, "\n") + "\n"
	}

	header := titleStyle.Render(" nlterm ") + " " + subtleStyle.Render(terminal.ShortenPath(m.state.Cwd))
	footer := statusBarStyle.Render(m.keys.Help().View())
	input := promptStyle.Render(promptText(m.state.Cwd)) + string(m.input) + cursorStyle.Render(" ")

	lines := m.visibleLines(countLines(header) + countLines(footer) + 2)
	body := make([]string, len(lines))
	for i, l := range lines {
		body[i] = terminal.StyleOutput(l)
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	if len(body) > 0 {
		b.WriteString(strings.Join(body, "\n") + "\n")
	}
	b.WriteString(input + "\n")
	b.WriteString(footer)
	return b.String()
}

// visibleLines returns the tail of the scrollback that fits next to reserved
// lines of chrome.
func (m model) visibleLines(reserved int) []string {
	if m.height <= 0 {
		return m.lines
	}
	room := m.height - reserved
	if room <= 0 {
		return nil
	}
	if len(m.lines) > room {
		return m.lines[len(m.lines)-room:]
	}
	return m.lines
}

func promptText(cwd string) string {
	return terminal.ShortenPath(cwd) + " ❯ "
}

// countLines counts the number of lines in a string
func countLines(s string) int {
	if s == "" {
		return 0
	}
	count := strings.Count(s, "\n")
	// If string doesn't end with newline, count the last line
	if s[len(s)-1] != '\n' {
		count++
	}
	return count
}

// Styles
var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			MarginTop(1)
)
