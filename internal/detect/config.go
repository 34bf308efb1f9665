package detect

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tunables holds the detection knobs that operators may want to adjust
// without a rebuild. Loaded from an optional YAML file; zero values fall
// back to the defaults below.
type Tunables struct {
	// AIThreshold is the final-ratio cutoff above which content is labeled
	// AI. Kept deliberately above 0.5 to bias against false "AI" positives.
	AIThreshold   float64
	ConfidenceCap float64

	MinTextLength   int
	MaxContentBytes int64

	ReasoningTimeout time.Duration
	PatternsTimeout  time.Duration
	SearchTimeout    time.Duration

	ClassificationTTL time.Duration
	VerificationTTL   time.Duration

	WebSimilarity WebSimilarityRule

	// CredibleDomains overrides the verification allow-list when non-nil.
	CredibleDomains []string
}

// WebSimilarityRule parameterizes the found-online-implies-human heuristic
// so it can be tuned or neutralized without touching the fusion engine.
type WebSimilarityRule struct {
	HighCutoff   float64 `yaml:"highCutoff"`
	LowCutoff    float64 `yaml:"lowCutoff"`
	StrongWeight float64 `yaml:"strongWeight"`
	WeakWeight   float64 `yaml:"weakWeight"`
}

// DefaultTunables returns the shipped defaults.
func DefaultTunables() Tunables {
	return Tunables{
		AIThreshold:       0.6,
		ConfidenceCap:     0.95,
		MinTextLength:     50,
		MaxContentBytes:   10 << 20,
		ReasoningTimeout:  30 * time.Second,
		PatternsTimeout:   15 * time.Second,
		SearchTimeout:     10 * time.Second,
		ClassificationTTL: 5 * time.Minute,
		VerificationTTL:   24 * time.Hour,
		WebSimilarity: WebSimilarityRule{
			HighCutoff:   0.7,
			LowCutoff:    0.3,
			StrongWeight: 0.8,
			WeakWeight:   0.2,
		},
	}
}

// duration accepts both "30s" strings and integer nanoseconds in YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var asInt int64
	if err := value.Decode(&asInt); err == nil {
		*d = duration(asInt)
		return nil
	}
	var asString string
	if err := value.Decode(&asString); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(asString)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", asString, err)
	}
	*d = duration(parsed)
	return nil
}

// tunablesFile is the YAML shape of the tunables file.
type tunablesFile struct {
	AIThreshold       float64           `yaml:"aiThreshold"`
	ConfidenceCap     float64           `yaml:"confidenceCap"`
	MinTextLength     int               `yaml:"minTextLength"`
	MaxContentBytes   int64             `yaml:"maxContentBytes"`
	ReasoningTimeout  duration          `yaml:"reasoningTimeout"`
	PatternsTimeout   duration          `yaml:"patternsTimeout"`
	SearchTimeout     duration          `yaml:"searchTimeout"`
	ClassificationTTL duration          `yaml:"classificationTTL"`
	VerificationTTL   duration          `yaml:"verificationTTL"`
	WebSimilarity     WebSimilarityRule `yaml:"webSimilarity"`
	CredibleDomains   []string          `yaml:"credibleDomains"`
}

// LoadTunables merges a YAML tunables file over the defaults. A missing path
// returns the defaults unchanged.
func LoadTunables(path string) (Tunables, error) {
	tun := DefaultTunables()
	if path == "" {
		return tun, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tun, nil
		}
		return tun, fmt.Errorf("read tunables %s: %w", path, err)
	}
	var file tunablesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return tun, fmt.Errorf("parse tunables %s: %w", path, err)
	}
	tun = Tunables{
		AIThreshold:       file.AIThreshold,
		ConfidenceCap:     file.ConfidenceCap,
		MinTextLength:     file.MinTextLength,
		MaxContentBytes:   file.MaxContentBytes,
		ReasoningTimeout:  time.Duration(file.ReasoningTimeout),
		PatternsTimeout:   time.Duration(file.PatternsTimeout),
		SearchTimeout:     time.Duration(file.SearchTimeout),
		ClassificationTTL: time.Duration(file.ClassificationTTL),
		VerificationTTL:   time.Duration(file.VerificationTTL),
		WebSimilarity:     file.WebSimilarity,
		CredibleDomains:   file.CredibleDomains,
	}
	return tun.normalized(), nil
}

func (t Tunables) normalized() Tunables {
	def := DefaultTunables()
	if t.AIThreshold <= 0 || t.AIThreshold >= 1 {
		t.AIThreshold = def.AIThreshold
	}
	if t.ConfidenceCap <= 0 || t.ConfidenceCap > 1 {
		t.ConfidenceCap = def.ConfidenceCap
	}
	if t.MinTextLength <= 0 {
		t.MinTextLength = def.MinTextLength
	}
	if t.MaxContentBytes <= 0 {
		t.MaxContentBytes = def.MaxContentBytes
	}
	if t.ReasoningTimeout <= 0 {
		t.ReasoningTimeout = def.ReasoningTimeout
	}
	if t.PatternsTimeout <= 0 {
		t.PatternsTimeout = def.PatternsTimeout
	}
	if t.SearchTimeout <= 0 {
		t.SearchTimeout = def.SearchTimeout
	}
	if t.ClassificationTTL <= 0 {
		t.ClassificationTTL = def.ClassificationTTL
	}
	if t.VerificationTTL <= 0 {
		t.VerificationTTL = def.VerificationTTL
	}
	if t.WebSimilarity.HighCutoff <= 0 {
		t.WebSimilarity = def.WebSimilarity
	}
	return t
}
