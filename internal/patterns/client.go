// Package patterns talks to an external zero-shot classification service
// that scores text against candidate labels.
package patterns

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client abstracts the pattern-classification collaborator.
type Client interface {
	Classify(ctx context.Context, text string, candidateLabels []string) (Classification, error)
}

// Classification is the raw label/score table a zero-shot model returns.
// Labels and Scores are parallel, ordered best-first.
type Classification struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Top returns the best label/score pair.
func (c Classification) Top() (string, float64, bool) {
	if len(c.Labels) == 0 || len(c.Scores) == 0 {
		return "", 0, false
	}
	return c.Labels[0], c.Scores[0], true
}

// ErrNotConfigured is returned when no classification endpoint is wired.
var ErrNotConfigured = errors.New("patterns client not configured")

// HTTPClient posts text to a classification HTTP service.
type HTTPClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewHTTPClient creates a reusable classification client.
func NewHTTPClient(endpoint, apiKey string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Classify sends the text for zero-shot scoring against candidateLabels.
func (c *HTTPClient) Classify(ctx context.Context, text string, candidateLabels []string) (Classification, error) {
	if c == nil || c.endpoint == "" {
		return Classification{}, ErrNotConfigured
	}

	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"candidate_labels": candidateLabels,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Classification{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Classification{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out Classification
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Classification{}, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Labels) != len(out.Scores) {
		return Classification{}, fmt.Errorf("malformed classification: %d labels, %d scores", len(out.Labels), len(out.Scores))
	}
	return out, nil
}

var _ Client = (*HTTPClient)(nil)
