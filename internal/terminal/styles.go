package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	promptMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	deniedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	subtleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// StyleOutput colors command output: errors red, safety denials yellow.
func StyleOutput(output string) string {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "Error: Access denied"):
			lines[i] = deniedStyle.Render(line)
		case strings.HasPrefix(line, "Error:"), strings.HasPrefix(line, "Command not found:"):
			lines[i] = errorStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Subtle renders secondary text.
func Subtle(s string) string {
	return subtleStyle.Render(s)
}
