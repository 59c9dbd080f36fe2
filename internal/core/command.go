package core

import (
	"fmt"
	"strings"
)

// Command is one canonical command: a verb and its arguments.
type Command struct {
	Cmd  string
	Args []string
}

// String renders the command with arguments quoted where needed.
func (c Command) String() string {
	parts := []string{c.Cmd}
	for _, a := range c.Args {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// ParseCommand tokenizes line on whitespace, honoring single and double
// quotes that open a token. The verb is lowercased. A blank line yields a
// zero Command; an unterminated quote is a usage error.
func ParseCommand(line string) (Command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) == 0 {
		return Command{}, nil
	}
	return Command{Cmd: strings.ToLower(tokens[0]), Args: tokens[1:]}, nil
}

// SplitChain splits line on the sequencing operator, dropping empty segments.
func SplitChain(line string) []string {
	var segments []string
	for _, part := range strings.Split(line, "&&") {
		if s := strings.TrimSpace(part); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// tokenize splits line into words. A quote character only starts a quoted
// section at the beginning of a word, so don't.txt is one literal word.
func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
		inToken bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case !inToken && (r == '"' || r == '\''):
			quote = r
			inToken = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, &CommandError{Kind: ErrUsage, Msg: fmt.Sprintf("unterminated %c quote in: %s", quote, strings.TrimSpace(line))}
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// restOfLine returns everything after the verb with surrounding whitespace
// and one pair of matching quotes removed.
func restOfLine(line string) string {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return ""
	}
	rest := strings.TrimSpace(line[i:])
	if len(rest) >= 2 {
		first, last := rest[0], rest[len(rest)-1]
		if (first == '"' || first == '\'') && first == last {
			rest = rest[1 : len(rest)-1]
		}
	}
	return rest
}
