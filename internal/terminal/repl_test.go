package terminal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core"
	"github.com/Lin-Jiong-HDU/nlterm/internal/storage"
)

func newTestREPL(t *testing.T, input string) (*REPL, *strings.Builder, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	state, err := core.NewSession(t.TempDir())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	out := &strings.Builder{}
	engine := core.NewEngine(nil, nil, zerolog.Nop())
	return NewREPL(engine, state, nil, strings.NewReader(input), out), out, state.Cwd
}

func TestREPL_ProcessInput(t *testing.T) {
	repl, out, cwd := newTestREPL(t, "")

	// natural language
	if !repl.ProcessInput(context.Background(), "create a file named report.txt") {
		t.Fatal("Expected the session to continue")
	}
	if _, err := os.Stat(filepath.Join(cwd, "report.txt")); err != nil {
		t.Errorf("Expected report.txt to be created: %v", err)
	}
	if !strings.Contains(out.String(), "Created: file 'report.txt'") {
		t.Errorf("Unexpected output: %q", out.String())
	}

	// blank lines run nothing
	if !repl.ProcessInput(context.Background(), "   ") {
		t.Error("Blank input should keep the session alive")
	}

	if repl.ProcessInput(context.Background(), "exit") {
		t.Error("Expected exit to end the session")
	}
}

func TestREPL_ThreadsCwd(t *testing.T) {
	repl, _, cwd := newTestREPL(t, "")

	repl.ProcessInput(context.Background(), "mkdir sub && cd sub")

	if got := repl.State().Cwd; got != filepath.Join(cwd, "sub") {
		t.Errorf("Expected cwd %s, got %s", filepath.Join(cwd, "sub"), got)
	}
}

func TestREPL_Clear(t *testing.T) {
	repl, out, _ := newTestREPL(t, "")

	repl.ProcessInput(context.Background(), "clear")

	if !strings.Contains(out.String(), clearScreen) {
		t.Error("Expected the clear-screen sequence")
	}
	if strings.Contains(out.String(), core.ClearSentinel) {
		t.Error("The sentinel should never reach the display")
	}
}

func TestREPL_RunStopsAtExit(t *testing.T) {
	repl, out, cwd := newTestREPL(t, "mkdir a\nexit\nmkdir b\n")

	if err := repl.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cwd, "a")); err != nil {
		t.Error("Expected a to be created")
	}
	if _, err := os.Stat(filepath.Join(cwd, "b")); err == nil {
		t.Error("Input after exit must not run")
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Error("Expected the goodbye message")
	}
}

func TestREPL_RunEndsOnEOF(t *testing.T) {
	repl, _, _ := newTestREPL(t, "pwd\n")

	if err := repl.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestREPL_SavesHistory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	state, _ := core.NewSession(t.TempDir())
	path := filepath.Join(t.TempDir(), "history.json")
	history := storage.NewHistory(path, 10)

	repl := NewREPL(core.NewEngine(nil, nil, zerolog.Nop()), state, history,
		strings.NewReader("pwd\nshow files\n"), &strings.Builder{})
	if err := repl.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	loaded, err := storage.LoadHistory(path, 10)
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("Expected 2 history entries, got %v", loaded.Entries())
	}
}

func TestStyleOutput_KeepsText(t *testing.T) {
	in := "ok\nError: Access denied - nope\nError: 'x' not found"
	out := StyleOutput(in)

	for _, line := range strings.Split(in, "\n") {
		if !strings.Contains(out, line) {
			t.Errorf("Styled output lost %q", line)
		}
	}
}

func TestShortenPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ShortenPath(home); got != "~" {
		t.Errorf("Expected ~, got %s", got)
	}
	if got := ShortenPath(filepath.Join(home, "docs")); got != "~"+string(filepath.Separator)+"docs" {
		t.Errorf("Unexpected %s", got)
	}
	if got := ShortenPath("/opt"); got != "/opt" {
		t.Errorf("Unexpected %s", got)
	}
}
