package detect

import (
	"fmt"
	"math"
	"strings"
)

const noEvidenceExplanation = "No classification evidence was available (all sources failed or were skipped); defaulting to human-authored with low confidence."

// Fuse combines heterogeneous evidence items into a single verdict. It is
// pure and deterministic: the same evidence list in the same order always
// produces the same result. Zero evidence is a valid low-confidence input,
// never an error.
func Fuse(evidence []EvidenceItem, tun Tunables) AnalysisResult {
	var aiScore, humanScore, confSum float64
	contributing := 0
	var rationales []string

	for _, item := range evidence {
		if item.SourceID == SourceWebSearch {
			ai, human, conf := webSimilaritySplit(item.Similarity, tun.WebSimilarity)
			aiScore += ai
			humanScore += human
			confSum += conf
			contributing++
			if item.Rationale != "" {
				rationales = append(rationales, item.Rationale)
			}
			continue
		}

		switch item.Label {
		case LabelAI:
			aiScore += item.Confidence
			confSum += item.Confidence
		case LabelHuman:
			humanScore += item.Confidence
			confSum += item.Confidence
		default:
			// Unknown adds nothing to either bucket but still dilutes
			// confidence through the denominator.
		}
		contributing++
		if item.Rationale != "" {
			rationales = append(rationales, item.Rationale)
		}
	}

	if contributing == 0 {
		return AnalysisResult{
			Label:               LabelHuman,
			Confidence:          0.2,
			AIProbabilityPct:    50,
			HumanProbabilityPct: 50,
			Explanation:         noEvidenceExplanation,
			Evidence:            []EvidenceItem{},
		}
	}

	ratio := 0.5
	if total := aiScore + humanScore; total > 0 {
		ratio = aiScore / total
	}

	label := LabelHuman
	if ratio > tun.AIThreshold {
		label = LabelAI
	}

	confidence := confSum / float64(contributing)
	if confidence > tun.ConfidenceCap {
		confidence = tun.ConfidenceCap
	}
	if confidence < 0 {
		confidence = 0
	}

	aiPct := int(math.Round(ratio * 100))
	if aiPct < 0 {
		aiPct = 0
	}
	if aiPct > 100 {
		aiPct = 100
	}

	explanation := strings.Join(rationales, "; ")
	if explanation == "" {
		explanation = noEvidenceExplanation
	}

	return AnalysisResult{
		Label:               label,
		Confidence:          confidence,
		AIProbabilityPct:    aiPct,
		HumanProbabilityPct: 100 - aiPct,
		Explanation:         explanation,
		Evidence:            evidence,
	}
}

// webSimilaritySplit maps a lexical-overlap ratio onto an ai/human score
// split. Content found near-verbatim online predates the query and reads as
// human; content with no matches reads as novel and more likely generated.
// A heuristic, not a proof, so the cutoffs and weights live in config.
func webSimilaritySplit(similarity float64, rule WebSimilarityRule) (ai, human, conf float64) {
	switch {
	case similarity > rule.HighCutoff:
		return rule.WeakWeight, rule.StrongWeight, rule.StrongWeight
	case similarity < rule.LowCutoff:
		return rule.StrongWeight, rule.WeakWeight, rule.StrongWeight
	default:
		return 0.5, 0.5, 0.5
	}
}

// WebSearchEvidence builds the web-verification evidence item from an
// observed similarity ratio.
func WebSearchEvidence(similarity float64, matches int) EvidenceItem {
	return EvidenceItem{
		SourceID:   SourceWebSearch,
		Label:      LabelUnknown,
		Similarity: similarity,
		Weight:     1,
		Rationale:  fmt.Sprintf("Web search found %d similar source(s) with max overlap %.0f%%", matches, similarity*100),
	}
}
