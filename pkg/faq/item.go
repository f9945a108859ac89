package faq

import (
	"fmt"
	"strings"
)

// Heading opens every rendered FAQ document.
const Heading = "### Frequently Asked Questions\n\n"

// Item is one question/answer pair.
type Item struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Truncate keeps at most n items in their original order. Short lists are
// returned as they are.
func Truncate(items []Item, n int) []Item {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// RenderMarkdown renders items under Heading as numbered bold questions.
func RenderMarkdown(items []Item) string {
	var b strings.Builder
	b.WriteString(Heading)
	for i, it := range items {
		fmt.Fprintf(&b, "**Q%d. %s**\n\n%s\n\n", i+1, it.Question, it.Answer)
	}
	return b.String()
}
