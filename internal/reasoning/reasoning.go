package reasoning

import (
	"context"
	"errors"
)

// Client abstracts the external reasoning service (an LLM) that judges
// whether content reads as AI-generated.
type Client interface {
	Reason(ctx context.Context, input Input) (Result, error)
}

// Input carries the content under analysis. Image holds raw bytes for
// image-kind requests and is nil otherwise.
type Input struct {
	Text  string
	Image []byte
	Kind  string
}

// Result is the normalized reasoning verdict. Mode records whether it came
// from structured JSON or from the free-text fallback parser.
type Result struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Rationale  string   `json:"rationale"`
	Indicators []string `json:"indicators"`
	Mode       Mode     `json:"-"`
}

// Mode distinguishes the two shapes a reasoning reply can arrive in.
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeFreeText   Mode = "free-text"
)

// ErrNotConfigured is returned when no reasoning provider is wired.
var ErrNotConfigured = errors.New("reasoning client not configured")
