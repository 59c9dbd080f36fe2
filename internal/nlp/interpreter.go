package nlp

import (
	"strings"

	"github.com/rs/zerolog"
)

// Interpreter translates natural-language requests into canonical commands.
type Interpreter struct {
	log zerolog.Logger
}

// NewInterpreter creates an interpreter that logs its decisions to log.
func NewInterpreter(log zerolog.Logger) *Interpreter {
	return &Interpreter{log: log.With().Str("component", "nlp").Logger()}
}

var defaultInterpreter = NewInterpreter(zerolog.Nop())

// Interpret translates text with a silent interpreter.
func Interpret(text string) Interpretation {
	return defaultInterpreter.Interpret(text)
}

// Interpret splits text into steps, classifies and synthesizes each one and
// returns the resulting canonical commands with the full trace.
func (in *Interpreter) Interpret(text string) Interpretation {
	text = strings.TrimSpace(text)
	result := Interpretation{
		Query:    text,
		Entities: ExtractEntities(text),
	}

	if text == "" {
		result.Commands = []string{emptyGuidance}
		return result
	}

	connector, parts := Split(text)
	if connector == "" {
		step := in.interpretStep(text)
		if step.Intent == IntentUnknown {
			step.Command = unrecognized(text)
		}
		result.Steps = []Step{step}
		result.Commands = []string{step.Command}
		return result
	}

	result.Connector = strings.TrimSpace(connector)
	for _, part := range parts {
		step := in.interpretStep(part)
		result.Steps = append(result.Steps, step)
		if step.Command != "" {
			result.Commands = append(result.Commands, step.Command)
		}
	}
	if len(result.Commands) == 0 {
		result.Commands = []string{unparsedSteps(text)}
	}

	in.log.Debug().
		Str("query", text).
		Str("connector", result.Connector).
		Int("steps", len(result.Steps)).
		Str("commands", result.String()).
		Msg("interpreted multi-step request")

	return result
}

func (in *Interpreter) interpretStep(text string) Step {
	c := Classify(text)
	cs := BuildStructure(c.Intent, text)
	step := Step{
		Text:      text,
		Intent:    c.Intent,
		Fuzzy:     c.Fuzzy,
		Score:     c.Score,
		Structure: cs,
		Command:   Synthesize(cs),
	}

	ev := in.log.Debug().Str("step", text).Str("intent", string(c.Intent))
	if c.Fuzzy {
		ev = ev.Float64("score", c.Score)
	}
	ev.Str("command", step.Command).Msg("classified step")

	return step
}
