// Package verify scores how verifiable a piece of content is against
// external web sources: originality, source credibility, plagiarism, and
// fact consistency.
package verify

// Factor names.
const (
	FactorSimilarity  = "similarity"
	FactorCredibility = "sourceCredibility"
	FactorPlagiarism  = "plagiarism"
	FactorFactCheck   = "factCheck"
)

// Status tiers.
const (
	StatusVerified          = "verified"
	StatusPartiallyVerified = "partially_verified"
	StatusNotVerified       = "not_verified"
)

// Plagiarism risk tiers.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Factor is one measurable dimension contributing to the overall score.
// Score is on a 0..100 scale; Weight is its share of the aggregate.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// Report is the composed verification outcome.
type Report struct {
	OverallScore    int      `json:"overallScore"`
	Status          string   `json:"status"`
	RiskFactors     []string `json:"riskFactors"`
	Recommendations []string `json:"recommendations"`
	Factors         []Factor `json:"factors"`
}

// SimilarSource records a search hit that overlaps the content.
type SimilarSource struct {
	Title      string  `json:"title"`
	Link       string  `json:"link"`
	Similarity float64 `json:"similarity"`
}

// SimilarityAnalysis summarizes lexical overlap against search hits.
type SimilarityAnalysis struct {
	Average float64         `json:"average"`
	Max     float64         `json:"max"`
	Sources []SimilarSource `json:"sources"`
}

// PlagiarismAnalysis summarizes potential verbatim reuse.
type PlagiarismAnalysis struct {
	Score   float64         `json:"score"`
	Risk    string          `json:"risk"`
	Matches []SimilarSource `json:"matches"`
}

// Claim verdicts.
const (
	ClaimVerified      = "verified"
	ClaimContradictory = "contradictory"
	ClaimUnverified    = "unverified"
)

// ClaimCheck is the verdict for one extracted claim.
type ClaimCheck struct {
	Claim   string `json:"claim"`
	Verdict string `json:"verdict"`
}

// FactCheckAnalysis summarizes claim verification.
type FactCheckAnalysis struct {
	Score  float64      `json:"score"`
	Claims []ClaimCheck `json:"claims"`
}

// CredibilityAnalysis partitions hit domains into credible vs questionable.
type CredibilityAnalysis struct {
	Score        float64  `json:"score"`
	Credible     []string `json:"credible"`
	Questionable []string `json:"questionable"`
}
