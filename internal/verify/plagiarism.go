package verify

import "detector-backend/internal/search"

// plagiarismMatchCutoff is the overlap above which a hit counts as a
// potential verbatim match.
const plagiarismMatchCutoff = 0.5

// AnalyzePlagiarism flags hits that overlap heavily with the content and
// tiers the resulting risk.
func AnalyzePlagiarism(content string, hits []search.Hit) PlagiarismAnalysis {
	analysis := PlagiarismAnalysis{Risk: RiskLow, Matches: []SimilarSource{}}

	var sum float64
	for _, hit := range hits {
		sim := Similarity(content, hit.Snippet)
		if sim > plagiarismMatchCutoff {
			analysis.Matches = append(analysis.Matches, SimilarSource{
				Title:      hit.Title,
				Link:       hit.Link,
				Similarity: sim,
			})
			sum += sim
		}
	}

	if len(analysis.Matches) > 0 {
		analysis.Score = sum / float64(len(analysis.Matches)) * 100
	}

	switch {
	case analysis.Score > 70:
		analysis.Risk = RiskHigh
	case analysis.Score > 40:
		analysis.Risk = RiskMedium
	}
	return analysis
}
