package detect

import (
	"strings"
	"testing"
)

func TestClassifyHeuristicFlagsStockPhrases(t *testing.T) {
	text := "It is important to note that modern systems evolve. Furthermore, we must delve into the details. In conclusion, progress continues."

	item := ClassifyHeuristic(text)

	if item.SourceID != SourceHeuristic {
		t.Fatalf("expected source %q, got %q", SourceHeuristic, item.SourceID)
	}
	if item.Label != LabelAI {
		t.Fatalf("expected label %q, got %q", LabelAI, item.Label)
	}
	if !strings.Contains(item.Rationale, "stock AI transition phrases") {
		t.Fatalf("expected rationale naming stock phrases, got %q", item.Rationale)
	}
}

func TestClassifyHeuristicReadsColloquialTextAsHuman(t *testing.T) {
	text := "Honestly I don't know, it's kinda weird? Yeah the whole thing was a mess, lol. We're gonna figure it out tho!"

	item := ClassifyHeuristic(text)

	if item.Label != LabelHuman {
		t.Fatalf("expected label %q, got %q", LabelHuman, item.Label)
	}
	if !strings.Contains(item.Rationale, "informal") {
		t.Fatalf("expected rationale naming informal markers, got %q", item.Rationale)
	}
}

func TestClassifyHeuristicFlagsHeavyRepetition(t *testing.T) {
	text := strings.Repeat("optimize synergy leverage ", 20)

	item := ClassifyHeuristic(text)

	if item.Label != LabelAI {
		t.Fatalf("expected repeated text to read as AI, got %q", item.Label)
	}
}

func TestClassifyHeuristicConfidenceBounds(t *testing.T) {
	cases := []string{
		"",
		"plain short sentence with nothing special about it",
		strings.Repeat("word ", 500),
		"However, therefore, consequently, nevertheless, furthermore, moreover, thus, hence, accordingly, subsequently, nonetheless, whereas.",
	}
	for i, text := range cases {
		item := ClassifyHeuristic(text)
		if item.Confidence < 0.3 || item.Confidence > 0.8 {
			t.Fatalf("case %d: confidence %f outside [0.3, 0.8]", i, item.Confidence)
		}
	}
}

func TestClassifyHeuristicNeutralTextDefaultsToHuman(t *testing.T) {
	text := "The meeting covered three topics and ended early. Attendance was normal for a Tuesday."

	item := ClassifyHeuristic(text)

	if item.Label != LabelHuman {
		t.Fatalf("expected neutral text to default to %q, got %q", LabelHuman, item.Label)
	}
}
