package search

import (
	"html"
	"strings"
)

// StripHTML removes tags from article content so snippets and keyword
// matching operate on visible text. Unclosed tags swallow the rest of
// the input, which is acceptable for the editor-produced HTML here.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return html.UnescapeString(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			// Keep words from running together when tags separate them.
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
