package reasoning

import (
	"math"
	"testing"
)

func TestParseStructuredJSON(t *testing.T) {
	raw := `{"label":"ai","confidence":0.92,"rationale":"uniform sentence length","indicators":["low burstiness"]}`

	res := Parse(raw)

	if res.Mode != ModeStructured {
		t.Fatalf("expected structured mode, got %q", res.Mode)
	}
	if res.Label != "ai" {
		t.Fatalf("expected label ai, got %q", res.Label)
	}
	if math.Abs(res.Confidence-0.92) > 1e-9 {
		t.Fatalf("expected confidence 0.92, got %f", res.Confidence)
	}
	if res.Rationale != "uniform sentence length" {
		t.Fatalf("unexpected rationale: %q", res.Rationale)
	}
	if len(res.Indicators) != 1 {
		t.Fatalf("expected 1 indicator, got %d", len(res.Indicators))
	}
}

func TestParseStructuredVerdictField(t *testing.T) {
	res := Parse(`{"verdict":"human-written","confidence":75,"reasoning":"colloquial tone"}`)

	if res.Mode != ModeStructured {
		t.Fatalf("expected structured mode, got %q", res.Mode)
	}
	if res.Label != "human" {
		t.Fatalf("expected label human, got %q", res.Label)
	}
	if math.Abs(res.Confidence-0.75) > 1e-9 {
		t.Fatalf("expected percentage confidence normalized to 0.75, got %f", res.Confidence)
	}
	if res.Rationale != "colloquial tone" {
		t.Fatalf("expected reasoning field as rationale, got %q", res.Rationale)
	}
}

func TestParseStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"label\":\"ai\",\"confidence\":0.8}\n```"

	res := Parse(raw)

	if res.Mode != ModeStructured {
		t.Fatalf("expected structured mode after fence strip, got %q", res.Mode)
	}
	if res.Label != "ai" {
		t.Fatalf("expected label ai, got %q", res.Label)
	}
}

func TestParseFreeTextAIVerdict(t *testing.T) {
	raw := "This text appears to be AI-generated. I would say with 85% confidence that a language model wrote it."

	res := Parse(raw)

	if res.Mode != ModeFreeText {
		t.Fatalf("expected free-text mode, got %q", res.Mode)
	}
	if res.Label != "ai" {
		t.Fatalf("expected label ai, got %q", res.Label)
	}
	if math.Abs(res.Confidence-0.85) > 1e-9 {
		t.Fatalf("expected extracted confidence 0.85, got %f", res.Confidence)
	}
}

func TestParseFreeTextHumanVerdict(t *testing.T) {
	res := Parse("The colloquial tone and typos suggest this was written by a human.")

	if res.Label != "human" {
		t.Fatalf("expected label human, got %q", res.Label)
	}
	if res.Confidence != 0.6 {
		t.Fatalf("expected default verdict confidence 0.6, got %f", res.Confidence)
	}
}

func TestParseFreeTextNoVerdict(t *testing.T) {
	res := Parse("The text discusses gardening techniques at some length.")

	if res.Label != "unknown" {
		t.Fatalf("expected label unknown, got %q", res.Label)
	}
	if res.Confidence != 0.3 {
		t.Fatalf("expected low default confidence 0.3, got %f", res.Confidence)
	}
	if res.Rationale == "" {
		t.Fatalf("expected a rationale summary")
	}
}

func TestParseStructuredWithUnknownLabelFallsBack(t *testing.T) {
	// Valid JSON whose label normalizes to nothing drops to free-text.
	res := Parse(`{"label":"banana","confidence":0.9}`)

	if res.Mode != ModeFreeText {
		t.Fatalf("expected free-text fallback, got %q", res.Mode)
	}
}

func TestParseDecimalConfidenceInProse(t *testing.T) {
	res := Parse("Likely AI. Confidence: 0.72 based on phrasing.")

	if res.Label != "ai" {
		t.Fatalf("expected label ai, got %q", res.Label)
	}
	if math.Abs(res.Confidence-0.72) > 1e-9 {
		t.Fatalf("expected confidence 0.72, got %f", res.Confidence)
	}
}

func TestParseZeroConfidenceDefaultsToHalf(t *testing.T) {
	res := Parse(`{"label":"ai"}`)

	if res.Confidence != 0.5 {
		t.Fatalf("expected default confidence 0.5, got %f", res.Confidence)
	}
}
