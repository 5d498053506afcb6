// Package llm provides the text-completion capability used by scoring,
// tailoring and analysis. The core pipeline depends only on the
// post-normalization text contract; providers with divergent wire envelopes
// plug in behind the Client interface.
package llm

import (
	"context"
	"fmt"
)

// Request is a single completion round trip.
type Request struct {
	Prompt       string
	Model        string
	Temperature  float32
	MaxTokens    int
	SystemPrompt string
}

// Client is an abstraction over LLM providers.
type Client interface {
	// Complete performs one blocking completion call and returns the raw
	// response text. Failures are reported as *CompletionError.
	Complete(ctx context.Context, req Request) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a provider client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
