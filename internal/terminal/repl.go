package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core"
	"github.com/Lin-Jiong-HDU/nlterm/internal/storage"
)

// clearScreen is the ANSI clear-screen sequence.
const clearScreen = "\033[H\033[2J"

// Executor runs one line of input.
type Executor interface {
	Execute(ctx context.Context, line string, state core.SessionState) (core.Outcome, core.SessionState)
}

// REPL is a line-based interactive shell.
type REPL struct {
	engine  Executor
	state   core.SessionState
	history *storage.History
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a REPL.
func NewREPL(engine Executor, state core.SessionState, history *storage.History, in io.Reader, out io.Writer) *REPL {
	if history == nil {
		history = storage.NewHistory("", 0)
	}
	return &REPL{
		engine:  engine,
		state:   state,
		history: history,
		in:      in,
		out:     out,
	}
}

// State returns the current session state.
func (r *REPL) State() core.SessionState {
	return r.state
}

// ProcessInput runs one line and reports whether the session continues.
func (r *REPL) ProcessInput(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}

	r.history.Add(input)

	out, next := r.engine.Execute(ctx, input, r.state)
	r.state = next

	if out.Clear {
		fmt.Fprint(r.out, clearScreen)
	}
	if out.Output != "" {
		fmt.Fprintln(r.out, StyleOutput(out.Output))
	}

	return !out.Exit
}

// Run reads lines until exit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, Subtle("Type 'help' for commands, or just say what you want. 'exit' quits."))

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, FormatPrompt(r.state.Cwd))
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			break
		}
		if !r.ProcessInput(ctx, scanner.Text()) {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if err := r.history.Save(); err != nil {
		return err
	}
	return nil
}
