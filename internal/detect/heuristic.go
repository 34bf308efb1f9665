package detect

import (
	"fmt"
	"strings"
)

// Stock transition phrases that generated prose leans on.
var aiPhrases = []string{
	"it is important to note",
	"it's worth noting",
	"in conclusion",
	"furthermore",
	"moreover",
	"additionally",
	"delve into",
	"in today's fast-paced world",
	"in the realm of",
	"as an ai",
	"comprehensive overview",
	"plays a crucial role",
	"in summary",
	"ultimately",
}

// Formal connective vocabulary used for the formality ratio.
var formalConnectives = []string{
	"however", "therefore", "consequently", "nevertheless", "furthermore",
	"moreover", "thus", "hence", "accordingly", "subsequently",
	"nonetheless", "whereas", "notwithstanding", "alternatively", "conversely",
}

// Informal markers that read as human.
var colloquialisms = []string{
	"gonna", "wanna", "gotta", "kinda", "sorta", "lol", "omg", "btw",
	"tbh", "yeah", "nope", "stuff", "honestly", "literally",
	"i mean", "you know",
}

var contractions = []string{
	"don't", "can't", "won't", "isn't", "aren't", "i'm", "i've", "it's",
	"that's", "we're", "they're", "didn't", "wasn't", "couldn't",
}

const longTextWords = 300

// ClassifyHeuristic is the rule-based fallback classifier. It needs no
// network and deliberately never reaches the confidence of a successful
// external-service result: confidence is clamped to [0.3, 0.8].
func ClassifyHeuristic(text string) EvidenceItem {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	totalWords := len(words)

	repetition := repetitionRatio(words)
	formality := formalityRatio(lower)
	aiHits := countPhrases(lower, aiPhrases)
	humanHits := countPhrases(lower, colloquialisms) + countPhrases(lower, contractions)
	punctDensity := punctuationDensity(text, totalWords)

	var indicators []string
	if repetition > 0.6 {
		indicators = append(indicators, fmt.Sprintf("high word repetition (%.0f%%)", repetition*100))
	}
	if formality > 0.8 {
		indicators = append(indicators, fmt.Sprintf("very formal connective usage (%.0f%%)", formality*100))
	}
	if aiHits >= 3 {
		indicators = append(indicators, fmt.Sprintf("%d stock AI transition phrases", aiHits))
	}
	longAndFormal := totalWords >= longTextWords && formality > 0.5

	isAI := repetition > 0.6 || formality > 0.8 || aiHits >= 3 || longAndFormal

	label := LabelHuman
	matched := len(indicators)
	if longAndFormal && matched == 0 {
		indicators = append(indicators, "long text with consistently formal register")
		matched = len(indicators)
	}
	if !isAI {
		if humanHits > 0 {
			indicators = append(indicators, fmt.Sprintf("%d informal/colloquial markers", humanHits))
		}
		if punctDensity > 0.05 {
			indicators = append(indicators, "frequent exclamation/question punctuation")
		}
		matched = len(indicators)
	} else {
		label = LabelAI
	}

	confidence := 0.5 + 0.1*float64(matched)
	if confidence < 0.3 {
		confidence = 0.3
	}
	if confidence > 0.8 {
		confidence = 0.8
	}

	rationale := "Local heuristic analysis"
	if len(indicators) > 0 {
		rationale = "Local heuristic analysis: " + strings.Join(indicators, ", ")
	}

	return EvidenceItem{
		SourceID:   SourceHeuristic,
		Label:      label,
		Confidence: confidence,
		Weight:     1,
		Rationale:  rationale,
	}
}

func repetitionRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	repeated := 0
	for _, n := range counts {
		if n > 2 {
			repeated += n
		}
	}
	return float64(repeated) / float64(len(words))
}

func formalityRatio(lower string) float64 {
	found := 0
	for _, conn := range formalConnectives {
		if strings.Contains(lower, conn) {
			found++
		}
	}
	return float64(found) / float64(len(formalConnectives))
}

func countPhrases(lower string, phrases []string) int {
	hits := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			hits++
		}
	}
	return hits
}

func punctuationDensity(text string, totalWords int) float64 {
	if totalWords == 0 {
		return 0
	}
	marks := strings.Count(text, "!") + strings.Count(text, "?")
	return float64(marks) / float64(totalWords)
}
