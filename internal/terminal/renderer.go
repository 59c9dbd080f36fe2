package terminal

import (
	"github.com/charmbracelet/glamour"

	"github.com/Lin-Jiong-HDU/nlterm/internal/nlp"
)

// Renderer renders markdown documents such as the pattern catalogue.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer creates a Renderer. With plain set, markdown is returned as is.
func NewRenderer(width int, plain bool) (*Renderer, error) {
	if plain {
		return &Renderer{}, nil
	}

	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &Renderer{term: term}, nil
}

// Render renders markdown, falling back to the raw text on failure.
func (r *Renderer) Render(markdown string) string {
	if r.term == nil {
		return markdown
	}
	out, err := r.term.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// Patterns renders the supported natural-language patterns.
func (r *Renderer) Patterns() string {
	return r.Render(nlp.PatternsMarkdown())
}
