package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchParsesReply(t *testing.T) {
	var gotQuery, gotKey, gotCx, gotNum string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotKey = q.Get("key")
		gotCx = q.Get("cx")
		gotNum = q.Get("num")
		_, _ = w.Write([]byte(`{
			"items": [
				{"title": "<b>Example</b> page", "snippet": "Some <b>matching</b> text&nbsp;here...", "link": "https://example.com/a", "displayLink": "example.com"}
			],
			"searchInformation": {"totalResults": "1234"}
		}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "key123", "engine456")
	results, err := client.Search(context.Background(), "some query", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "some query" || gotKey != "key123" || gotCx != "engine456" || gotNum != "5" {
		t.Fatalf("unexpected query params: q=%q key=%q cx=%q num=%q", gotQuery, gotKey, gotCx, gotNum)
	}
	if len(results.Hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(results.Hits))
	}
	hit := results.Hits[0]
	if hit.Title != "Example page" {
		t.Fatalf("expected sanitized title, got %q", hit.Title)
	}
	if hit.Snippet != "Some matching text here" {
		t.Fatalf("expected sanitized snippet, got %q", hit.Snippet)
	}
	if results.TotalResultsApprox != 1234 {
		t.Fatalf("expected total results 1234, got %d", results.TotalResultsApprox)
	}
}

func TestSearchDefaultsCount(t *testing.T) {
	var gotNum string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotNum = r.URL.Query().Get("num")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "k", "c")
	if _, err := client.Search(context.Background(), "q", 0); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotNum != "5" {
		t.Fatalf("expected default num=5, got %q", gotNum)
	}
}

func TestSearchNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "k", "c")
	if _, err := client.Search(context.Background(), "q", 5); err == nil {
		t.Fatalf("expected error for 429")
	}
}

func TestSearchNotConfigured(t *testing.T) {
	client := NewHTTPClient("", "", "")
	if _, err := client.Search(context.Background(), "q", 5); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCleanSnippet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>bold</b> text", "bold text"},
		{"leading&nbsp;space", "leading space"},
		{"trail dots...", "trail dots"},
		{"ellipsis … char", "ellipsis char"},
		{"  collapse \n whitespace ", "collapse whitespace"},
		{"<script>alert(1)</script>safe", "safe"},
	}
	for _, tt := range tests {
		if got := CleanSnippet(tt.in); got != tt.want {
			t.Fatalf("CleanSnippet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
