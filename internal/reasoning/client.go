package reasoning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are an AI-content detector. Judge whether the given content was AI-generated or human-authored. Reply with JSON only: {\"label\":\"ai|human|unknown\",\"confidence\":0.0-1.0,\"rationale\":\"...\",\"indicators\":[\"...\"]}."

// OpenAIClient implements Client using an OpenAI-compatible chat completions API.
type OpenAIClient struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewOpenAIClient constructs a reasoning client. baseURL may be empty for
// the default endpoint.
func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("REASONING_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("REASONING_MODEL is required")
	}
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultAPIURL
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("REASONING_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &OpenAIClient{
		apiKey: apiKey,
		model:  model,
		apiURL: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Reason sends content to the reasoning service and normalizes the reply.
// An unstructured reply is parsed with the free-text fallback, never treated
// as a failure.
func (c *OpenAIClient) Reason(ctx context.Context, input Input) (Result, error) {
	messages := []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userContent(input)},
	}

	temp := float32(0)
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: &temp,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return Result{}, fmt.Errorf("reasoning request timeout: %w", err)
		}
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{}, fmt.Errorf("reasoning http status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Result{}, fmt.Errorf("reasoning http status %d", resp.StatusCode)
		}
		return Result{}, fmt.Errorf("reasoning response parse: %w", err)
	}
	if parsed.Error != nil {
		return Result{}, fmt.Errorf("reasoning error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, fmt.Errorf("reasoning response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return Result{}, fmt.Errorf("reasoning response empty content")
	}
	return Parse(content), nil
}

func userContent(input Input) any {
	if len(input.Image) == 0 {
		return input.Text
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(input.Image)
	parts := []chatContentPart{
		{Type: "text", Text: "Analyze this image for signs of AI generation."},
	}
	img := chatContentPart{Type: "image_url"}
	img.ImageURL = &struct {
		URL string `json:"url"`
	}{URL: dataURL}
	return append(parts, img)
}

var _ Client = (*OpenAIClient)(nil)
