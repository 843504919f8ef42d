package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders bot replies (markdown, link
// syntax included) to ANSI for the chat REPL. Falls back to the raw text
// when rendering fails, so a broken terminal never loses a reply.
func NewRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) string { return markdown }
	}

	return func(markdown string) string {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown
		}
		return out
	}
}
