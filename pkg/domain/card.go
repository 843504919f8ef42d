package domain

import (
	"fmt"
	"strings"
)

// WelcomeCard is the greeting shown once per user, on the first
// members-added event. Transports that support rich cards may render the
// struct natively; text-only channels use Markdown().
type WelcomeCard struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// DefaultWelcomeCard returns the stock greeting.
func DefaultWelcomeCard() WelcomeCard {
	return WelcomeCard{
		Title: "Welcome to the Box support assistant!",
		Body:  "I can help with getting started, sharing, mobile access and more. Ask me a question, or try one of these:",
		Suggestions: []string{
			"How do I set up Box Drive?",
			"How do I share a file with a link?",
			"How do I open Box files on my phone?",
		},
	}
}

// Markdown flattens the card for text-only channels.
func (c WelcomeCard) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n%s", c.Title, c.Body)
	for _, s := range c.Suggestions {
		fmt.Fprintf(&b, "\n- %s", s)
	}
	return b.String()
}
