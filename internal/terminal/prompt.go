package terminal

import (
	"os"
	"path/filepath"
	"strings"
)

// FormatPrompt builds the input prompt, abbreviating the home directory to ~.
func FormatPrompt(cwd string) string {
	return promptStyle.Render(ShortenPath(cwd)+" ") + promptMarkStyle.Render("❯ ")
}

// ShortenPath replaces a home directory prefix with ~.
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	home = filepath.Clean(home)
	switch {
	case path == home:
		return "~"
	case strings.HasPrefix(path, home+string(filepath.Separator)):
		return "~" + path[len(home):]
	}
	return path
}
