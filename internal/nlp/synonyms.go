package nlp

import (
	"regexp"
	"sort"
	"strings"
)

var (
	synonymPattern   *regexp.Regexp
	synonymCanonical map[string]string
)

func init() {
	synonymCanonical = make(map[string]string)
	var variants []string
	for _, entry := range synonymTable {
		for _, syn := range entry.synonyms {
			synonymCanonical[syn] = entry.canonical
			variants = append(variants, syn)
		}
	}

	// Longest variants first so "get rid of" wins over any shorter overlap.
	sort.SliceStable(variants, func(i, j int) bool {
		return len(variants[i]) > len(variants[j])
	})
	quotedVariants := make([]string, len(variants))
	for i, v := range variants {
		quotedVariants[i] = regexp.QuoteMeta(v)
	}
	synonymPattern = regexp.MustCompile(`\b(?:` + strings.Join(quotedVariants, "|") + `)\b`)
}

// Normalize lowercases text and replaces every informal synonym with its
// canonical keyword in a single left-to-right pass.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	return synonymPattern.ReplaceAllStringFunc(lower, func(m string) string {
		return synonymCanonical[m]
	})
}
