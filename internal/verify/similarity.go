package verify

import (
	"strings"

	"detector-backend/internal/search"
)

// similarSourceCutoff is the overlap above which a hit is recorded as a
// similar source.
const similarSourceCutoff = 0.3

// Similarity computes intersection-over-union of the lowercase word sets of
// a and b. Returns a ratio in [0, 1].
func Similarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// AnalyzeSimilarity scores content overlap against each hit snippet.
func AnalyzeSimilarity(content string, hits []search.Hit) SimilarityAnalysis {
	analysis := SimilarityAnalysis{Sources: []SimilarSource{}}
	if len(hits) == 0 {
		return analysis
	}

	var sum float64
	for _, hit := range hits {
		sim := Similarity(content, hit.Snippet)
		sum += sim
		if sim > analysis.Max {
			analysis.Max = sim
		}
		if sim > similarSourceCutoff {
			analysis.Sources = append(analysis.Sources, SimilarSource{
				Title:      hit.Title,
				Link:       hit.Link,
				Similarity: sim,
			})
		}
	}
	analysis.Average = sum / float64(len(hits))
	return analysis
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		cleaned := strings.Trim(w, ".,;:!?\"'()[]")
		if cleaned != "" {
			set[cleaned] = struct{}{}
		}
	}
	return set
}
