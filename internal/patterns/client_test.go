package patterns

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassifySendsExpectedPayload(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Classification{
			Labels: []string{"ai-generated", "human-written"},
			Scores: []float64{0.91, 0.09},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "secret")
	cls, err := client.Classify(context.Background(), "sample text", []string{"ai-generated", "human-written"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["inputs"] != "sample text" {
		t.Fatalf("expected inputs field, got %v", gotBody)
	}

	label, score, ok := cls.Top()
	if !ok {
		t.Fatalf("expected top classification")
	}
	if label != "ai-generated" || score != 0.91 {
		t.Fatalf("unexpected top: %s %f", label, score)
	}
}

func TestClassifyRejectsMismatchedTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"labels":["a","b"],"scores":[0.5]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "")
	if _, err := client.Classify(context.Background(), "text", []string{"a", "b"}); err == nil {
		t.Fatalf("expected error for mismatched labels/scores")
	}
}

func TestClassifyNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "")
	if _, err := client.Classify(context.Background(), "text", []string{"a"}); err == nil {
		t.Fatalf("expected error for 503")
	}
}

func TestClassifyNotConfigured(t *testing.T) {
	client := NewHTTPClient("", "")
	if _, err := client.Classify(context.Background(), "text", nil); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestTopEmptyClassification(t *testing.T) {
	if _, _, ok := (Classification{}).Top(); ok {
		t.Fatalf("expected no top for empty classification")
	}
}
