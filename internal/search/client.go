// Package search wraps the web-search index collaborator.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Hit is one search result.
type Hit struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
}

// Results is a search reply.
type Results struct {
	Hits               []Hit `json:"hits"`
	TotalResultsApprox int64 `json:"totalResultsApprox"`
}

// Client abstracts the web-search collaborator.
type Client interface {
	Search(ctx context.Context, query string, count int) (Results, error)
}

// ErrNotConfigured is returned when no search endpoint is wired.
var ErrNotConfigured = errors.New("search client not configured")

// HTTPClient queries a JSON search API (Google Custom Search wire shape).
type HTTPClient struct {
	endpoint string
	apiKey   string
	engineID string
	http     *http.Client
}

// NewHTTPClient creates a reusable search client.
func NewHTTPClient(endpoint, apiKey, engineID string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		engineID: engineID,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type searchReply struct {
	Items []struct {
		Title       string `json:"title"`
		Snippet     string `json:"snippet"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

// Search runs one query and returns sanitized hits.
func (c *HTTPClient) Search(ctx context.Context, query string, count int) (Results, error) {
	if c == nil || c.endpoint == "" {
		return Results{}, ErrNotConfigured
	}
	if count <= 0 {
		count = 5
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Results{}, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Results{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Results{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var reply searchReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Results{}, fmt.Errorf("decode response: %w", err)
	}

	out := Results{Hits: make([]Hit, 0, len(reply.Items))}
	for _, item := range reply.Items {
		out.Hits = append(out.Hits, Hit{
			Title:       CleanSnippet(item.Title),
			Snippet:     CleanSnippet(item.Snippet),
			Link:        item.Link,
			DisplayLink: item.DisplayLink,
		})
	}
	if total, err := strconv.ParseInt(reply.SearchInformation.TotalResults, 10, 64); err == nil {
		out.TotalResultsApprox = total
	}
	return out, nil
}

var _ Client = (*HTTPClient)(nil)
