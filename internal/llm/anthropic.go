package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// anthropicEndpoint is the Anthropic messages API endpoint.
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	// anthropicVersion is the API version header value.
	anthropicVersion = "2023-06-01"
	// anthropicDefaultMaxTokens applies when the request does not set a limit.
	anthropicDefaultMaxTokens = 2048
)

// AnthropicClient implements Client for the Anthropic messages API. The wire
// envelope diverges from Gemini's; both normalize to the same text contract.
type AnthropicClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(_ *Config, apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey:   apiKey,
		endpoint: anthropicEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// anthropicRequest is the messages API request envelope.
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float32            `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete performs one completion round trip against the messages API.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", &CompletionError{Message: "API key is required"}
	}
	if req.Model == "" {
		return "", &CompletionError{Message: "no model specified"}
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		System:      req.SystemPrompt,
		Temperature: req.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	})
	if err != nil {
		return "", &CompletionError{Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &CompletionError{Message: "failed to build request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &CompletionError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CompletionError{HTTPStatus: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %s", resp.Status)
		}
		return "", &CompletionError{HTTPStatus: resp.StatusCode, Message: msg}
	}

	text := gjson.GetBytes(body, "content.0.text").String()
	if text == "" {
		return "", &CompletionError{HTTPStatus: resp.StatusCode, Message: "no text content in response"}
	}

	return text, nil
}

// Close is a no-op; the client holds no persistent resources.
func (c *AnthropicClient) Close() error {
	return nil
}
