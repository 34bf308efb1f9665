package search

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Search APIs decorate snippets with highlight markup (<b>, &nbsp;, ellipsis
// runs). Strip all of it before any similarity math sees the text.
var snippetPolicy = bluemonday.StrictPolicy()

// CleanSnippet removes markup and normalizes whitespace in a search snippet.
func CleanSnippet(raw string) string {
	clean := snippetPolicy.Sanitize(raw)
	clean = html.UnescapeString(clean)
	clean = strings.ReplaceAll(clean, " ", " ")
	clean = strings.ReplaceAll(clean, "...", " ")
	clean = strings.ReplaceAll(clean, "…", " ")
	return strings.Join(strings.Fields(clean), " ")
}
