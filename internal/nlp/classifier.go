package nlp

import (
	"regexp"
	"strings"
)

// FuzzyThreshold is the similarity a fuzzy match must exceed.
const FuzzyThreshold = 0.2

var wordPattern = regexp.MustCompile(`[a-z0-9~._/\\-]+`)

// query is the lowercased, tokenized form of a request used by keyword tests.
type query struct {
	text   string
	words  []string
	padded string
}

func newQuery(text string) query {
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if w != "." && w != ".." {
			w = strings.TrimRight(w, ".")
		}
		if w != "" {
			words = append(words, w)
		}
	}
	return query{
		text:   strings.TrimSpace(text),
		words:  words,
		padded: " " + strings.Join(words, " ") + " ",
	}
}

// has reports whether any phrase occurs on word boundaries.
func (q query) has(phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q.padded, " "+p+" ") {
			return true
		}
	}
	return false
}

func (q query) first() string {
	if len(q.words) == 0 {
		return ""
	}
	return q.words[0]
}

// rule pairs an intent with the keyword test that selects it.
type rule struct {
	intent  Intent
	matches func(q query) bool
}

// rules is the classification waterfall. Order is the tie-break: the first
// matching rule wins.
var rules = []rule{
	{IntentCreateFile, func(q query) bool {
		return q.has(createWords) && q.has(fileWords)
	}},
	{IntentCreateDirectory, func(q query) bool {
		return q.has(createWords) && q.has(directoryWords)
	}},
	{IntentDelete, func(q query) bool {
		return q.has(deleteWords)
	}},
	{IntentCopy, func(q query) bool {
		return q.has(copyWords)
	}},
	{IntentMove, func(q query) bool {
		return q.has(moveWords) && !movesIntoPlace(q)
	}},
	{IntentNavigate, func(q query) bool {
		return q.has(navigateWords) || movesIntoPlace(q)
	}},
	{IntentList, func(q query) bool {
		return q.has(listWords) && !q.has(cpuWords) && !q.has(memoryWords) &&
			!q.has(processWords) && !q.has(diskWords) && !q.has(pwdWords) && !q.has(helpWords)
	}},
	{IntentCPU, func(q query) bool { return q.has(cpuWords) }},
	{IntentMemory, func(q query) bool { return q.has(memoryWords) }},
	{IntentProcesses, func(q query) bool { return q.has(processWords) }},
	{IntentDisk, func(q query) bool { return q.has(diskWords) }},
	{IntentPwd, func(q query) bool { return q.has(pwdWords) }},
	{IntentHelp, func(q query) bool { return q.has(helpWords) }},
	{IntentClear, func(q query) bool { return q.has(clearWords) }},
	{IntentExit, func(q query) bool { return q.has(exitWords) }},
}

// movesIntoPlace matches "move to x", "move up" and friends, which describe
// navigation rather than relocating a file.
func movesIntoPlace(q query) bool {
	if q.first() != "move" || len(q.words) < 2 {
		return false
	}
	for _, w := range moveLeadIns {
		if q.words[1] == w {
			return true
		}
	}
	return false
}

// Classification is the outcome of classifying a single step.
type Classification struct {
	Intent Intent
	Fuzzy  bool
	Score  float64
}

// Classify runs the keyword waterfall over text and falls back to fuzzy
// matching against the registered patterns.
func Classify(text string) Classification {
	q := newQuery(text)
	for _, r := range rules {
		if r.matches(q) {
			return Classification{Intent: r.intent}
		}
	}

	intent, score := bestFuzzyMatch(text)
	if score > FuzzyThreshold {
		return Classification{Intent: intent, Fuzzy: true, Score: score}
	}
	return Classification{Intent: IntentUnknown, Score: score}
}

func bestFuzzyMatch(text string) (Intent, float64) {
	best, bestScore := IntentUnknown, 0.0
	for _, p := range fuzzyPatterns {
		for _, kw := range p.keywords {
			if s := Similarity(text, kw); s > bestScore {
				best, bestScore = p.intent, s
			}
		}
	}
	return best, bestScore
}

// Similarity is the Jaccard index of the normalized word sets of a and b,
// boosted by 0.2 for an exact match and capped at 1.
func Similarity(a, b string) float64 {
	wordsA := wordSet(Normalize(a))
	wordsB := wordSet(Normalize(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	shared := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			shared++
		}
	}
	union := len(wordsA) + len(wordsB) - shared

	score := float64(shared) / float64(union)
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}
	return score
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}
