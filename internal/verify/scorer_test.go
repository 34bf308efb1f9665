package verify

import (
	"strings"
	"testing"
)

func TestScoreWeightedAggregation(t *testing.T) {
	report := Score(Inputs{
		Similarity:  &SimilarityAnalysis{Average: 0.9},
		Credibility: &CredibilityAnalysis{Score: 20},
		Plagiarism:  &PlagiarismAnalysis{Score: 80, Risk: RiskHigh},
		FactCheck:   &FactCheckAnalysis{Score: 30},
	})

	// 0.30*10 + 0.25*20 + 0.25*20 + 0.20*30 = 3 + 5 + 5 + 6 = 19
	if report.OverallScore != 19 {
		t.Fatalf("expected overall score 19, got %d", report.OverallScore)
	}
	if report.Status != StatusNotVerified {
		t.Fatalf("expected status %q, got %q", StatusNotVerified, report.Status)
	}
	if len(report.RiskFactors) != 4 {
		t.Fatalf("expected all four risk factors, got %d: %v", len(report.RiskFactors), report.RiskFactors)
	}
	if len(report.Recommendations) != 4 {
		t.Fatalf("expected four recommendations, got %d", len(report.Recommendations))
	}
}

func TestScoreCleanContentVerifies(t *testing.T) {
	report := Score(Inputs{
		Similarity:  &SimilarityAnalysis{Average: 0.1},
		Credibility: &CredibilityAnalysis{Score: 90},
		Plagiarism:  &PlagiarismAnalysis{Score: 5, Risk: RiskLow},
		FactCheck:   &FactCheckAnalysis{Score: 100},
	})

	// 0.30*90 + 0.25*90 + 0.25*95 + 0.20*100 = 27 + 22.5 + 23.75 + 20 = 93.25
	if report.OverallScore != 93 {
		t.Fatalf("expected overall score 93, got %d", report.OverallScore)
	}
	if report.Status != StatusVerified {
		t.Fatalf("expected status %q, got %q", StatusVerified, report.Status)
	}
	if len(report.RiskFactors) != 0 {
		t.Fatalf("expected no risk factors, got %v", report.RiskFactors)
	}
}

func TestScoreRenormalizesMissingFactors(t *testing.T) {
	report := Score(Inputs{
		Credibility: &CredibilityAnalysis{Score: 80},
		FactCheck:   &FactCheckAnalysis{Score: 80},
	})

	// Both surviving factors score 80, so renormalization keeps the
	// aggregate at 80 regardless of their original weights.
	if report.OverallScore != 80 {
		t.Fatalf("expected overall score 80, got %d", report.OverallScore)
	}
	if len(report.Factors) != 4 {
		t.Fatalf("expected 4 factor entries, got %d", len(report.Factors))
	}
	zeroWeight := 0
	for _, f := range report.Factors {
		if f.Weight == 0 {
			zeroWeight++
		}
	}
	if zeroWeight != 2 {
		t.Fatalf("expected 2 zero-weight factors, got %d", zeroWeight)
	}
}

func TestScoreAllFactorsMissing(t *testing.T) {
	report := Score(Inputs{})

	if report.OverallScore != 0 {
		t.Fatalf("expected overall score 0, got %d", report.OverallScore)
	}
	if report.Status != StatusNotVerified {
		t.Fatalf("expected status %q, got %q", StatusNotVerified, report.Status)
	}
}

func TestScoreStatusTiers(t *testing.T) {
	tests := []struct {
		credibility float64
		factCheck   float64
		wantStatus  string
	}{
		{100, 100, StatusVerified},
		{70, 70, StatusPartiallyVerified},
		{30, 30, StatusNotVerified},
	}
	for _, tt := range tests {
		report := Score(Inputs{
			Credibility: &CredibilityAnalysis{Score: tt.credibility},
			FactCheck:   &FactCheckAnalysis{Score: tt.factCheck},
		})
		if report.Status != tt.wantStatus {
			t.Fatalf("credibility=%v factCheck=%v: expected %q, got %q (score %d)",
				tt.credibility, tt.factCheck, tt.wantStatus, report.Status, report.OverallScore)
		}
	}
}

func TestScorePlagiarismRiskFactorNamesTier(t *testing.T) {
	report := Score(Inputs{
		Plagiarism: &PlagiarismAnalysis{Score: 60, Risk: RiskMedium},
	})
	found := false
	for _, risk := range report.RiskFactors {
		if strings.Contains(risk, "medium risk") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected plagiarism risk factor naming the tier, got %v", report.RiskFactors)
	}
}
