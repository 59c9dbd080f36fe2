package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultHistorySize bounds the history when no size is configured.
const DefaultHistorySize = 100

// History is the shell's command-line history. It keeps raw input lines,
// oldest first, and a cursor for previous/next navigation.
type History struct {
	entries []string
	max     int
	cursor  int
	path    string
}

type historyFile struct {
	UpdatedAt time.Time `json:"updated_at"`
	Entries   []string  `json:"entries"`
}

// NewHistory creates an empty history holding at most max entries, stored at
// path. An empty path keeps the history in memory only.
func NewHistory(path string, max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max, path: path}
}

// LoadHistory reads the history stored at path. A missing file yields an
// empty history.
func LoadHistory(path string, max int) (*History, error) {
	h := NewHistory(path, max)
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var f historyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse history %s: %w", path, err)
	}
	for _, e := range f.Entries {
		h.Add(e)
	}
	return h, nil
}

// Add appends line. Blank lines and repeats of the newest entry are ignored.
// Navigation restarts from the newest entry.
func (h *History) Add(line string) {
	line = strings.TrimSpace(line)
	defer h.Reset()

	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}

	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Previous steps back one entry. It reports false when there is nothing older.
func (h *History) Previous() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next steps forward one entry. Stepping past the newest entry returns an
// empty line with false.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries)-1 {
		h.cursor = len(h.entries)
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Reset moves the cursor past the newest entry.
func (h *History) Reset() {
	h.cursor = len(h.entries)
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Save writes the history to its file. It is a no-op for in-memory histories.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(historyFile{UpdatedAt: time.Now(), Entries: h.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(h.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	return nil
}
