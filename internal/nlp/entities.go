package nlp

import (
	"regexp"
	"strings"
)

var (
	doubleQuoted = regexp.MustCompile(`"([^"]+)"`)
	singleQuoted = regexp.MustCompile(`(?:^|\s)'([^']+)'(?:\s|$|[.,;:!?])`)

	// namedPatterns are tried in order; the first capture that is not a
	// stop word wins.
	namedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bnamed\s+([\w.~/\\-]+(?:'[\w.~/\\-]+)*)`),
		regexp.MustCompile(`(?i)\bcalled\s+([\w.~/\\-]+(?:'[\w.~/\\-]+)*)`),
		regexp.MustCompile(`(?i)\bas\s+([\w.~/\\-]+(?:'[\w.~/\\-]+)*)`),
		regexp.MustCompile(`(?i)\bwith\s+(?:the\s+)?name\s+([\w.~/\\-]+)`),
		regexp.MustCompile(`(?i)\bthe\s+([\w.~/\\-]+)`),
	}

	fileToken   = regexp.MustCompile(`^[\w.-]*(?:'[\w.-]+)*\.[A-Za-z0-9]+$`)
	bareToken   = regexp.MustCompile(`^[\w-]+$`)
	numberToken = regexp.MustCompile(`^\d+$`)
	flagToken   = regexp.MustCompile(`^-{1,2}[A-Za-z][\w-]*$`)
)

// Extract returns the single most likely entity in text. The second result
// is false when nothing qualifies.
func Extract(text string) (string, bool) {
	if e, ok := quoted(text); ok {
		return e, true
	}

	for _, re := range namedPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := cleanToken(m[1])
			if candidate != "" && !isStopWord(candidate) {
				return candidate, true
			}
		}
	}

	tokens := fieldTokens(text)
	for _, tok := range tokens {
		if isFileToken(tok) {
			return tok, true
		}
	}
	for _, tok := range tokens {
		if isPathToken(tok) {
			return tok, true
		}
	}
	for _, tok := range tokens {
		if bareToken.MatchString(tok) && !isStopWord(tok) {
			return tok, true
		}
	}

	return "", false
}

// ExtractEntities lists every file, directory, path, number and flag
// candidate in text, in order of appearance.
func ExtractEntities(text string) ExtractedEntities {
	var e ExtractedEntities

	for _, m := range doubleQuoted.FindAllStringSubmatch(text, -1) {
		e.Paths = append(e.Paths, m[1])
	}
	for _, m := range singleQuoted.FindAllStringSubmatch(text, -1) {
		e.Paths = append(e.Paths, m[1])
	}

	for _, tok := range fieldTokens(text) {
		switch {
		case flagToken.MatchString(tok):
			e.Flags = append(e.Flags, tok)
		case numberToken.MatchString(tok):
			e.Numbers = append(e.Numbers, tok)
		case isPathToken(tok):
			e.Paths = append(e.Paths, tok)
		case isFileToken(tok):
			e.Files = append(e.Files, tok)
		case bareToken.MatchString(tok) && !isStopWord(tok):
			e.Directories = append(e.Directories, tok)
		}
	}

	return e
}

func quoted(text string) (string, bool) {
	if m := doubleQuoted.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := singleQuoted.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// fieldTokens splits text on whitespace and strips surrounding punctuation.
func fieldTokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := cleanToken(f); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func cleanToken(tok string) string {
	tok = strings.TrimLeft(tok, `"'(`)
	if tok == "." || tok == ".." {
		return tok
	}
	return strings.TrimRight(tok, `.,;:!?"')`)
}

func isFileToken(tok string) bool {
	return fileToken.MatchString(tok) && strings.Trim(tok, ".") != ""
}

func isPathToken(tok string) bool {
	return strings.ContainsAny(tok, `/\`)
}
