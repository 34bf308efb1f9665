package reasoning

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

type structuredReply struct {
	Label      string   `json:"label"`
	Verdict    string   `json:"verdict"`
	Confidence float64  `json:"confidence"`
	Rationale  string   `json:"rationale"`
	Reasoning  string   `json:"reasoning"`
	Indicators []string `json:"indicators"`
}

var (
	percentRe    = regexp.MustCompile(`(\d{1,3})\s*(?:%|percent)`)
	confidenceRe = regexp.MustCompile(`confidence[^0-9]{0,12}(0?\.\d+|\d{1,3})`)
)

// Parse normalizes a reasoning reply. Providers sometimes answer with
// structured JSON and sometimes with prose, so structured parsing is tried
// first and a keyword extraction handles the rest. Parse never fails: the
// worst free-text input yields an unknown label at low confidence.
func Parse(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	trimmed = stripCodeFence(trimmed)

	var reply structuredReply
	if err := json.Unmarshal([]byte(trimmed), &reply); err == nil {
		if res, ok := fromStructured(reply); ok {
			return res
		}
	}
	return fromFreeText(trimmed)
}

func fromStructured(reply structuredReply) (Result, bool) {
	label := normalizeLabel(reply.Label)
	if label == "" {
		label = normalizeLabel(reply.Verdict)
	}
	if label == "" {
		return Result{}, false
	}
	conf := reply.Confidence
	if conf > 1 {
		conf = conf / 100
	}
	if conf <= 0 {
		conf = 0.5
	}
	if conf > 1 {
		conf = 1
	}
	rationale := strings.TrimSpace(reply.Rationale)
	if rationale == "" {
		rationale = strings.TrimSpace(reply.Reasoning)
	}
	if rationale == "" {
		rationale = "Reasoning service verdict: " + label
	}
	return Result{
		Label:      label,
		Confidence: conf,
		Rationale:  rationale,
		Indicators: reply.Indicators,
		Mode:       ModeStructured,
	}, true
}

func fromFreeText(text string) Result {
	lower := strings.ToLower(text)

	aiSignals := countAny(lower, []string{
		"ai-generated", "ai generated", "machine-generated", "machine generated",
		"generated by an ai", "generated by a language model", "likely ai",
		"appears to be ai", "synthetic text",
	})
	humanSignals := countAny(lower, []string{
		"human-written", "human written", "human-authored", "written by a human",
		"likely human", "appears to be human", "authentic human",
	})

	label := "unknown"
	switch {
	case aiSignals > humanSignals:
		label = "ai"
	case humanSignals > aiSignals:
		label = "human"
	}

	conf := extractConfidence(lower)
	if conf == 0 {
		if label == "unknown" {
			conf = 0.3
		} else {
			conf = 0.6
		}
	}

	rationale := summarize(text)
	if rationale == "" {
		rationale = "Reasoning service replied without a clear verdict"
	}

	return Result{
		Label:      label,
		Confidence: conf,
		Rationale:  rationale,
		Mode:       ModeFreeText,
	}
}

func normalizeLabel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ai", "ai-generated", "ai_generated", "generated", "machine", "synthetic":
		return "ai"
	case "human", "human-written", "human_written", "human-authored", "authentic":
		return "human"
	case "unknown", "uncertain", "inconclusive":
		return "unknown"
	default:
		return ""
	}
}

func extractConfidence(lower string) float64 {
	if m := confidenceRe.FindStringSubmatch(lower); len(m) == 2 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			if v > 1 {
				v = v / 100
			}
			if v > 0 && v <= 1 {
				return v
			}
		}
	}
	if m := percentRe.FindStringSubmatch(lower); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 && v <= 100 {
			return float64(v) / 100
		}
	}
	return 0
}

func countAny(lower string, terms []string) int {
	hits := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			hits++
		}
	}
	return hits
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func summarize(text string) string {
	clean := strings.Join(strings.Fields(text), " ")
	const maxLen = 240
	if len(clean) > maxLen {
		clean = clean[:maxLen] + "…"
	}
	return clean
}
