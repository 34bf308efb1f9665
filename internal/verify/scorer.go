package verify

import (
	"fmt"
	"math"
)

// Aggregation weights. Similarity and plagiarism are inverted before
// weighting: low overlap with existing sources reads as original content.
const (
	weightSimilarity  = 0.30
	weightCredibility = 0.25
	weightPlagiarism  = 0.25
	weightFactCheck   = 0.20
)

// Risk thresholds for the human-readable risk factor strings.
const (
	riskSimilarityAbove  = 0.5
	riskCredibilityBelow = 50.0
	riskPlagiarismAbove  = 40.0
	riskFactCheckBelow   = 50.0
)

// Inputs carries the per-factor analyses. A nil field means that sub-step
// failed; it contributes a zero-weight factor and the remaining weights are
// renormalized instead of aborting the aggregation.
type Inputs struct {
	Similarity  *SimilarityAnalysis
	Credibility *CredibilityAnalysis
	Plagiarism  *PlagiarismAnalysis
	FactCheck   *FactCheckAnalysis
}

// Score aggregates the factor analyses into one report. Pure and
// deterministic given its inputs.
func Score(in Inputs) Report {
	report := Report{
		RiskFactors:     []string{},
		Recommendations: []string{},
		Factors:         []Factor{},
	}

	var weighted, totalWeight float64

	if in.Similarity != nil {
		simPct := in.Similarity.Average * 100
		weighted += weightSimilarity * (100 - simPct)
		totalWeight += weightSimilarity
		report.Factors = append(report.Factors, Factor{Name: FactorSimilarity, Score: simPct, Weight: weightSimilarity})
		if in.Similarity.Average > riskSimilarityAbove {
			report.RiskFactors = append(report.RiskFactors,
				fmt.Sprintf("High similarity to existing web content (%.0f%% average overlap)", simPct))
			report.Recommendations = append(report.Recommendations,
				"Review the listed similar sources and confirm the content is original.")
		}
	} else {
		report.Factors = append(report.Factors, Factor{Name: FactorSimilarity, Weight: 0})
	}

	if in.Credibility != nil {
		weighted += weightCredibility * in.Credibility.Score
		totalWeight += weightCredibility
		report.Factors = append(report.Factors, Factor{Name: FactorCredibility, Score: in.Credibility.Score, Weight: weightCredibility})
		if in.Credibility.Score < riskCredibilityBelow {
			report.RiskFactors = append(report.RiskFactors,
				fmt.Sprintf("Few credible sources found (%.0f%% of matched domains on the allow-list)", in.Credibility.Score))
			report.Recommendations = append(report.Recommendations,
				"Cross-check the claims against reference or government sources.")
		}
	} else {
		report.Factors = append(report.Factors, Factor{Name: FactorCredibility, Weight: 0})
	}

	if in.Plagiarism != nil {
		weighted += weightPlagiarism * (100 - in.Plagiarism.Score)
		totalWeight += weightPlagiarism
		report.Factors = append(report.Factors, Factor{Name: FactorPlagiarism, Score: in.Plagiarism.Score, Weight: weightPlagiarism})
		if in.Plagiarism.Score > riskPlagiarismAbove {
			report.RiskFactors = append(report.RiskFactors,
				fmt.Sprintf("Potential plagiarism detected (%s risk, score %.0f)", in.Plagiarism.Risk, in.Plagiarism.Score))
			report.Recommendations = append(report.Recommendations,
				"Attribute or rewrite passages that match existing sources.")
		}
	} else {
		report.Factors = append(report.Factors, Factor{Name: FactorPlagiarism, Weight: 0})
	}

	if in.FactCheck != nil {
		weighted += weightFactCheck * in.FactCheck.Score
		totalWeight += weightFactCheck
		report.Factors = append(report.Factors, Factor{Name: FactorFactCheck, Score: in.FactCheck.Score, Weight: weightFactCheck})
		if in.FactCheck.Score < riskFactCheckBelow {
			report.RiskFactors = append(report.RiskFactors,
				fmt.Sprintf("Most extracted claims could not be verified (%.0f%% verified)", in.FactCheck.Score))
			report.Recommendations = append(report.Recommendations,
				"Provide citations for factual claims that search could not confirm.")
		}
	} else {
		report.Factors = append(report.Factors, Factor{Name: FactorFactCheck, Weight: 0})
	}

	overall := 0.0
	if totalWeight > 0 {
		// With all factors present this matches the documented
		// 0.30/0.25/0.25/0.20 weighting exactly; with failures the surviving
		// weights are renormalized.
		overall = weighted / totalWeight
	}
	report.OverallScore = clampScore(int(math.Round(overall)))

	switch {
	case report.OverallScore >= 80:
		report.Status = StatusVerified
	case report.OverallScore >= 60:
		report.Status = StatusPartiallyVerified
	default:
		report.Status = StatusNotVerified
	}
	return report
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
