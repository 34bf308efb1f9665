package verify

import (
	"strings"

	"detector-backend/internal/search"
)

const (
	maxClaims         = 3
	claimMinWords     = 5
	claimSupportLevel = 0.4
)

var contradictionMarkers = []string{
	"not true", "false", "incorrect", "debunked", "myth", "no evidence",
	"disputed", "denied", "never happened", "untrue",
}

// ExtractClaims pulls up to three declarative sentences to fact-check.
// Questions and short fragments are skipped.
func ExtractClaims(content string) []string {
	var claims []string
	for _, sentence := range SplitSentences(content) {
		if strings.HasSuffix(sentence, "?") || strings.HasSuffix(sentence, "!") {
			continue
		}
		if len(strings.Fields(sentence)) < claimMinWords {
			continue
		}
		claims = append(claims, sentence)
		if len(claims) == maxClaims {
			break
		}
	}
	return claims
}

// AnalyzeFactCheck checks each extracted claim against the search hits. A
// claim is verified when a hit supports it, contradictory when a supporting
// hit carries contradiction language, and unverified otherwise. With no
// claims to check the score stays neutral.
func AnalyzeFactCheck(content string, hits []search.Hit) FactCheckAnalysis {
	claims := ExtractClaims(content)
	analysis := FactCheckAnalysis{Score: 50, Claims: []ClaimCheck{}}
	if len(claims) == 0 {
		return analysis
	}

	verified := 0
	for _, claim := range claims {
		verdict := checkClaim(claim, hits)
		if verdict == ClaimVerified {
			verified++
		}
		analysis.Claims = append(analysis.Claims, ClaimCheck{Claim: claim, Verdict: verdict})
	}
	analysis.Score = float64(verified) / float64(len(claims)) * 100
	return analysis
}

func checkClaim(claim string, hits []search.Hit) string {
	supported := false
	for _, hit := range hits {
		sim := Similarity(claim, hit.Snippet)
		if sim < claimSupportLevel {
			continue
		}
		if containsContradiction(hit.Snippet) && !containsContradiction(claim) {
			return ClaimContradictory
		}
		supported = true
	}
	if supported {
		return ClaimVerified
	}
	return ClaimUnverified
}

func containsContradiction(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range contradictionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
