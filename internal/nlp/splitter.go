package nlp

import (
	"regexp"
	"strings"
)

var connectorPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(connectors))
	for _, c := range connectors {
		m[c] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(c))
	}
	return m
}()

// Split breaks text on the highest-priority connector it contains. Only that
// connector delimits steps; the fragments are not split again. The returned
// connector is empty when text is a single step.
func Split(text string) (string, []string) {
	lower := strings.ToLower(text)
	for _, c := range connectors {
		if !strings.Contains(lower, c) {
			continue
		}

		var steps []string
		for _, part := range connectorPatterns[c].Split(text, -1) {
			if p := strings.TrimSpace(part); p != "" {
				steps = append(steps, p)
			}
		}
		return c, steps
	}

	if t := strings.TrimSpace(text); t != "" {
		return "", []string{t}
	}
	return "", nil
}
