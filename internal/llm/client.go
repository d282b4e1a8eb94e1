// Package llm provides text-completion client interfaces and implementations.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// StreamCallback is called for each token during streaming.
type StreamCallback func(token string, index int) error

// CompletionRequest represents a completion request.
type CompletionRequest struct {
	Model       string
	System      string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64

	// Purpose labels the call in logs, metrics and traces.
	Purpose string
}

// ChatMessage represents a chat message for LLM. Role is "user" or
// "assistant"; adapters translate it to the provider's vocabulary.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Client is the interface for LLM providers.
type Client interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// CompleteStream sends a streaming completion request.
	CompleteStream(ctx context.Context, req *CompletionRequest, callback StreamCallback) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string

	// Models returns available models.
	Models() []string
}

// Provider is the type of LLM provider.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// NewClient creates a new LLM client based on provider.
func NewClient(provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderGemini, "":
		return NewGeminiClient(apiKey)
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}

// defaultMaxTokens bounds replies when a request sets no budget. The longest
// reply in this service is a handoff summary, well under this.
const defaultMaxTokens = 2048

// resolve fills the provider's default model and the token budget.
func resolve(req *CompletionRequest, fallbackModel string) (model string, maxTokens int) {
	model, maxTokens = req.Model, req.MaxTokens
	if model == "" {
		model = fallbackModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return model, maxTokens
}

// isAssistant reports whether role names the model side of a conversation.
func isAssistant(role string) bool {
	return role == "assistant" || role == "model"
}

// UserPrompt builds a single-turn request.
func UserPrompt(purpose, prompt string) *CompletionRequest {
	return &CompletionRequest{
		Purpose:  purpose,
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
	}
}

// ErrUnavailable is returned by the client used when no provider could be
// configured.
var ErrUnavailable = errors.New("llm: no provider configured")

// Unavailable returns a client whose calls all fail with ErrUnavailable, so
// the catalog and booking routes keep working without an API key.
func Unavailable(provider Provider) Client {
	return unavailableClient{provider: provider}
}

type unavailableClient struct {
	provider Provider
}

func (u unavailableClient) Name() string     { return string(u.provider) }
func (u unavailableClient) Models() []string { return nil }

func (u unavailableClient) Complete(context.Context, *CompletionRequest) (*CompletionResponse, error) {
	return nil, ErrUnavailable
}

func (u unavailableClient) CompleteStream(context.Context, *CompletionRequest, StreamCallback) (*CompletionResponse, error) {
	return nil, ErrUnavailable
}
