package verify

import (
	"sort"
	"strings"
)

// maxFragments bounds outbound search calls regardless of content length.
const maxFragments = 3

const maxQueryWords = 12

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "she": {}, "that": {}, "the": {}, "their": {}, "there": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "were": {}, "which": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}

// ExtractFragments selects up to three representative fragments to use as
// search queries: the longest sentences, stripped of stopwords.
func ExtractFragments(content string) []string {
	sentences := SplitSentences(content)
	if len(sentences) == 0 {
		return nil
	}

	sort.SliceStable(sentences, func(i, j int) bool {
		return len(sentences[i]) > len(sentences[j])
	})

	var fragments []string
	for _, sentence := range sentences {
		query := toQuery(sentence)
		if query == "" {
			continue
		}
		fragments = append(fragments, query)
		if len(fragments) == maxFragments {
			break
		}
	}
	return fragments
}

// SplitSentences splits text into trimmed sentences on terminal punctuation.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); len(s) > 1 {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); len(s) > 1 {
		sentences = append(sentences, s)
	}
	return sentences
}

func toQuery(sentence string) string {
	words := strings.Fields(sentence)
	var kept []string
	for _, w := range words {
		cleaned := strings.Trim(strings.ToLower(w), ".,;:!?\"'()[]")
		if cleaned == "" {
			continue
		}
		if _, skip := stopwords[cleaned]; skip {
			continue
		}
		kept = append(kept, cleaned)
		if len(kept) == maxQueryWords {
			break
		}
	}
	if len(kept) < 3 {
		return ""
	}
	return strings.Join(kept, " ")
}
