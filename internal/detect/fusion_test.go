package detect

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestFuseSingleAIEvidence(t *testing.T) {
	evidence := []EvidenceItem{
		{SourceID: SourceReasoning, Label: LabelAI, Confidence: 0.9, Weight: 1, Rationale: "repetitive phrasing"},
	}

	result := Fuse(evidence, DefaultTunables())

	if result.Label != LabelAI {
		t.Fatalf("expected label %q, got %q", LabelAI, result.Label)
	}
	if math.Abs(result.Confidence-0.9) > 1e-9 {
		t.Fatalf("expected confidence 0.9, got %f", result.Confidence)
	}
	if result.AIProbabilityPct != 100 {
		t.Fatalf("expected aiProbabilityPct 100, got %d", result.AIProbabilityPct)
	}
	if result.HumanProbabilityPct != 0 {
		t.Fatalf("expected humanProbabilityPct 0, got %d", result.HumanProbabilityPct)
	}
}

func TestFuseTieGoesToHuman(t *testing.T) {
	evidence := []EvidenceItem{
		{SourceID: SourceReasoning, Label: LabelAI, Confidence: 0.5, Weight: 1},
		{SourceID: SourcePatterns, Label: LabelHuman, Confidence: 0.5, Weight: 1},
	}

	result := Fuse(evidence, DefaultTunables())

	if result.Label != LabelHuman {
		t.Fatalf("expected tie to resolve to %q, got %q", LabelHuman, result.Label)
	}
	if result.AIProbabilityPct != 50 || result.HumanProbabilityPct != 50 {
		t.Fatalf("expected 50/50 split, got %d/%d", result.AIProbabilityPct, result.HumanProbabilityPct)
	}
}

func TestFuseHighWebSimilarityReadsAsHuman(t *testing.T) {
	evidence := []EvidenceItem{
		WebSearchEvidence(0.85, 3),
	}

	result := Fuse(evidence, DefaultTunables())

	if result.Label != LabelHuman {
		t.Fatalf("expected label %q for high similarity, got %q", LabelHuman, result.Label)
	}
	// 0.2 AI vs 0.8 human gives a 20% AI ratio.
	if result.AIProbabilityPct != 20 {
		t.Fatalf("expected aiProbabilityPct 20, got %d", result.AIProbabilityPct)
	}
}

func TestFuseLowWebSimilarityReadsAsAI(t *testing.T) {
	evidence := []EvidenceItem{
		WebSearchEvidence(0.1, 0),
	}

	result := Fuse(evidence, DefaultTunables())

	if result.Label != LabelAI {
		t.Fatalf("expected label %q for low similarity, got %q", LabelAI, result.Label)
	}
	if result.AIProbabilityPct != 80 {
		t.Fatalf("expected aiProbabilityPct 80, got %d", result.AIProbabilityPct)
	}
}

func TestFuseMidWebSimilarityIsNeutral(t *testing.T) {
	evidence := []EvidenceItem{
		WebSearchEvidence(0.5, 1),
	}

	result := Fuse(evidence, DefaultTunables())

	if result.Label != LabelHuman {
		t.Fatalf("expected neutral split to label %q, got %q", LabelHuman, result.Label)
	}
	if result.AIProbabilityPct != 50 {
		t.Fatalf("expected aiProbabilityPct 50, got %d", result.AIProbabilityPct)
	}
}

func TestFuseZeroEvidence(t *testing.T) {
	result := Fuse(nil, DefaultTunables())

	if result.Label != LabelHuman {
		t.Fatalf("expected label %q, got %q", LabelHuman, result.Label)
	}
	if math.Abs(result.Confidence-0.2) > 1e-9 {
		t.Fatalf("expected confidence 0.2, got %f", result.Confidence)
	}
	if result.AIProbabilityPct != 50 || result.HumanProbabilityPct != 50 {
		t.Fatalf("expected 50/50 split, got %d/%d", result.AIProbabilityPct, result.HumanProbabilityPct)
	}
	if !strings.Contains(result.Explanation, "No classification evidence") {
		t.Fatalf("expected no-evidence explanation, got %q", result.Explanation)
	}
}

func TestFuseConfidenceIsCapped(t *testing.T) {
	evidence := []EvidenceItem{
		{SourceID: SourceReasoning, Label: LabelAI, Confidence: 1.0, Weight: 1},
		{SourceID: SourcePatterns, Label: LabelAI, Confidence: 1.0, Weight: 1},
	}

	result := Fuse(evidence, DefaultTunables())

	if result.Confidence > 0.95 {
		t.Fatalf("expected confidence capped at 0.95, got %f", result.Confidence)
	}
}

func TestFuseUnknownDilutesConfidence(t *testing.T) {
	withUnknown := Fuse([]EvidenceItem{
		{SourceID: SourceReasoning, Label: LabelAI, Confidence: 0.8, Weight: 1},
		{SourceID: SourcePatterns, Label: LabelUnknown, Confidence: 0.9, Weight: 1},
	}, DefaultTunables())
	without := Fuse([]EvidenceItem{
		{SourceID: SourceReasoning, Label: LabelAI, Confidence: 0.8, Weight: 1},
	}, DefaultTunables())

	if withUnknown.Confidence >= without.Confidence {
		t.Fatalf("expected unknown evidence to dilute confidence: %f vs %f", withUnknown.Confidence, without.Confidence)
	}
	if withUnknown.Label != without.Label {
		t.Fatalf("expected unknown evidence not to flip the label")
	}
}

func TestFuseIsDeterministic(t *testing.T) {
	evidence := []EvidenceItem{
		{SourceID: SourceReasoning, Label: LabelAI, Confidence: 0.7, Weight: 1, Rationale: "a"},
		{SourceID: SourcePatterns, Label: LabelHuman, Confidence: 0.4, Weight: 1, Rationale: "b"},
		WebSearchEvidence(0.2, 0),
	}

	first := Fuse(evidence, DefaultTunables())
	second := Fuse(evidence, DefaultTunables())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results for identical evidence:\n%+v\n%+v", first, second)
	}
}

func TestFuseProbabilitiesSumTo100(t *testing.T) {
	cases := [][]EvidenceItem{
		{{SourceID: SourceReasoning, Label: LabelAI, Confidence: 0.63, Weight: 1}},
		{{SourceID: SourceReasoning, Label: LabelAI, Confidence: 0.63, Weight: 1}, {SourceID: SourcePatterns, Label: LabelHuman, Confidence: 0.37, Weight: 1}},
		{WebSearchEvidence(0.44, 2)},
		nil,
	}
	for i, evidence := range cases {
		result := Fuse(evidence, DefaultTunables())
		if result.AIProbabilityPct+result.HumanProbabilityPct != 100 {
			t.Fatalf("case %d: probabilities do not sum to 100: %d + %d", i, result.AIProbabilityPct, result.HumanProbabilityPct)
		}
	}
}
