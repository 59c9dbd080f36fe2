package nlp

import (
	"fmt"
	"strings"
)

// Pattern documents one family of requests the interpreter understands.
type Pattern struct {
	Category string
	Examples []string
	Command  string
}

// SupportedPatterns is the catalogue shown by help and the patterns command.
var SupportedPatterns = []Pattern{
	{"List files", []string{"show files", "list everything in detail", "show me all the hidden files"}, "ls [-l|-a|-la]"},
	{"Navigate", []string{"go to documents", "go back", "go home", "go to the root"}, "cd <dir>"},
	{"Create directory", []string{"create a folder called backup", "make a new directory named src"}, "mkdir <name>"},
	{"Create file", []string{"create a file named report.txt", "make a new text file"}, "touch <name>"},
	{"Delete", []string{"delete notes.txt", "remove the folder called old"}, "rm <name> / rmdir <name>"},
	{"Copy", []string{"copy report.txt to archive", "duplicate a.txt as b.txt"}, "copy <src> <dst>"},
	{"Move", []string{"move notes.txt to backup", "rename draft.md as final.md"}, "move <src> <dst>"},
	{"System", []string{"show cpu usage", "how much memory is free", "list running processes", "check disk space"}, "cpu / mem / ps / disk"},
	{"Session", []string{"where am i", "help", "clear the screen", "exit"}, "pwd / help / clear / exit"},
	{"Multi-step", []string{"create a folder called backup and move notes.txt to backup", "go to src then list files"}, "<cmd> && <cmd>"},
}

// PatternsMarkdown renders SupportedPatterns as a markdown document.
func PatternsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Natural language patterns\n\n")
	b.WriteString("Any line that does not start with a known command is interpreted. ")
	b.WriteString("Prefix a line with `!nlp` to force interpretation.\n\n")
	for _, p := range SupportedPatterns {
		fmt.Fprintf(&b, "## %s\n\n", p.Category)
		for _, ex := range p.Examples {
			fmt.Fprintf(&b, "- `%s`\n", ex)
		}
		fmt.Fprintf(&b, "\nTranslates to `%s`.\n\n", p.Command)
	}
	return b.String()
}
