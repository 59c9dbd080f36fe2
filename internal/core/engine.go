package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Lin-Jiong-HDU/nlterm/internal/nlp"
)

// ClearSentinel is returned by ExecuteCommand when the caller should clear
// its display. Output produced after the clear follows on the next lines.
const ClearSentinel = "CLEAR_TERMINAL"

// ForceNLPPrefix routes the rest of the line through the interpreter even
// when it starts with a known verb.
const ForceNLPPrefix = "!nlp"

// SessionState is the per-caller state threaded through Execute.
type SessionState struct {
	ID     string
	Cwd    string
	Exited bool
}

// NewSession starts a session in cwd. An empty cwd uses the process
// working directory.
func NewSession(cwd string) (SessionState, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return SessionState{}, fmt.Errorf("getting working directory: %w", err)
		}
		cwd = wd
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return SessionState{}, fmt.Errorf("resolving %s: %w", cwd, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return SessionState{}, fmt.Errorf("invalid working directory: %w", err)
	}
	if !info.IsDir() {
		return SessionState{}, fmt.Errorf("invalid working directory: %s is not a directory", abs)
	}
	return SessionState{ID: uuid.NewString(), Cwd: abs}, nil
}

// Outcome is the combined result of one input line.
type Outcome struct {
	Output string
	// Clear is set when a clear ran; Output then holds only what followed it.
	Clear bool
	Exit  bool
	// Commands are the canonical commands that ran, in order.
	Commands []string
}

// String renders the outcome in the single-string form used by ExecuteCommand.
func (o Outcome) String() string {
	if !o.Clear {
		return o.Output
	}
	if o.Output == "" {
		return ClearSentinel
	}
	return ClearSentinel + "\n" + o.Output
}

// Engine routes input lines either straight to the router or through the
// interpreter first.
type Engine struct {
	interpreter *nlp.Interpreter
	router      *Router
	log         zerolog.Logger
}

// NewEngine creates an engine. Nil collaborators get defaults.
func NewEngine(interpreter *nlp.Interpreter, router *Router, log zerolog.Logger) *Engine {
	if interpreter == nil {
		interpreter = nlp.NewInterpreter(zerolog.Nop())
	}
	if router == nil {
		router = NewRouter(RouterOptions{Logger: log})
	}
	return &Engine{
		interpreter: interpreter,
		router:      router,
		log:         log.With().Str("component", "engine").Logger(),
	}
}

// Router returns the router commands are dispatched to.
func (e *Engine) Router() *Router { return e.router }

// Plan returns the canonical commands line expands to without running them.
// Literal segments pass through unchanged; everything else is interpreted.
func (e *Engine) Plan(line string) []string {
	var commands []string
	for _, segment := range SplitChain(line) {
		commands = append(commands, e.expand(segment)...)
	}
	return commands
}

func (e *Engine) expand(segment string) []string {
	if rest, ok := forcedNLP(segment); ok {
		return e.interpreter.Interpret(rest).Commands
	}
	if e.router.IsLiteral(segment) {
		return []string{segment}
	}
	return e.interpreter.Interpret(segment).Commands
}

func forcedNLP(segment string) (string, bool) {
	segment = strings.TrimSpace(segment)
	fields := strings.Fields(segment)
	if len(fields) == 0 || !strings.EqualFold(fields[0], ForceNLPPrefix) {
		return "", false
	}
	return strings.TrimSpace(segment[len(ForceNLPPrefix):]), true
}

// Execute runs line in state and returns the outcome with the updated state.
// Steps run in order; a step that exits the session stops the chain.
func (e *Engine) Execute(ctx context.Context, line string, state SessionState) (Outcome, SessionState) {
	log := e.log.With().Str("session", state.ID).Logger()

	var (
		out     Outcome
		outputs []string
	)
	if state.Exited {
		return out, state
	}

	for _, cmd := range e.Plan(line) {
		if err := ctx.Err(); err != nil {
			outputs = append(outputs, "Error: "+err.Error())
			break
		}

		log.Debug().Str("command", cmd).Str("cwd", state.Cwd).Msg("running step")
		res := e.router.Dispatch(ctx, cmd, state.Cwd)
		out.Commands = append(out.Commands, cmd)

		if res.Clear {
			out.Clear = true
			outputs = outputs[:0]
		}
		if res.Output != "" {
			outputs = append(outputs, res.Output)
		}
		if res.NewDir != "" {
			state.Cwd = res.NewDir
		}
		if res.Exit {
			state.Exited = true
			out.Exit = true
			break
		}
	}

	out.Output = strings.Join(outputs, "\n")
	log.Info().Str("line", line).Strs("commands", out.Commands).Bool("exit", out.Exit).Msg("executed")
	return out, state
}

// ExecuteCommand is the front-end contract: it returns the output, the
// working directory to use next and whether the session continues.
func (e *Engine) ExecuteCommand(ctx context.Context, line, cwd string) (output, newCwd string, shouldContinue bool) {
	out, state := e.Execute(ctx, line, SessionState{Cwd: cwd})
	return out.String(), state.Cwd, !state.Exited
}
