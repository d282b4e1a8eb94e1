package llm

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		for _, p := range []Provider{ProviderGemini, ProviderAnthropic, ProviderOpenAI} {
			_, err := NewClient(p, "")
			assert.Error(t, err, p)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewClient("mystery", "key")
		assert.Error(t, err)
	})

	t.Run("openai", func(t *testing.T) {
		c, err := NewClient(ProviderOpenAI, "key")
		require.NoError(t, err)
		assert.Equal(t, "openai", c.Name())
	})
}

func TestOpenAIRequest_PrependsSystem(t *testing.T) {
	req := openAIRequest(&CompletionRequest{
		System:   "be kind",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	}, false)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "be kind", req.Messages[0].Content)
	assert.Equal(t, defaultOpenAIModel, req.Model)
	assert.Equal(t, defaultMaxTokens, req.MaxTokens)
}

func TestOpenAIRequest_MapsGeminiRole(t *testing.T) {
	req := openAIRequest(&CompletionRequest{
		Model:     "gpt-4o",
		MaxTokens: 300,
		Messages: []ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "model", Content: "hello"},
		},
	}, true)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, "assistant", req.Messages[1].Role)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, 300, req.MaxTokens)
	assert.True(t, req.Stream)
}

func TestAnthropicParams(t *testing.T) {
	params := anthropicParams(&CompletionRequest{
		System:      "be kind",
		Temperature: 0.3,
		Messages: []ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})

	assert.Equal(t, defaultAnthropicModel, params.Model.Value)
	assert.EqualValues(t, defaultMaxTokens, params.MaxTokens.Value)
	require.Len(t, params.Messages.Value, 2)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, params.Messages.Value[1].Role.Value)
	require.Len(t, params.System.Value, 1)
	assert.InDelta(t, 0.3, params.Temperature.Value, 0.0001)
}

func TestGeminiRequest_MapsRoles(t *testing.T) {
	model, contents, config := geminiRequest(&CompletionRequest{
		System:      "be kind",
		MaxTokens:   500,
		Temperature: 0.7,
		Messages: []ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})

	assert.Equal(t, defaultGeminiModel, model)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.EqualValues(t, 500, config.MaxOutputTokens)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.7, *config.Temperature, 0.0001)
	require.NotNil(t, config.SystemInstruction)
}

func TestUserPrompt(t *testing.T) {
	req := UserPrompt("handoff", "summarise")
	assert.Equal(t, "handoff", req.Purpose)
	assert.Equal(t, []ChatMessage{{Role: "user", Content: "summarise"}}, req.Messages)
}

func TestUnavailable(t *testing.T) {
	c := Unavailable(ProviderGemini)

	_, err := c.Complete(context.Background(), UserPrompt("chat", "hi"))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = c.CompleteStream(context.Background(), UserPrompt("chat", "hi"), func(string, int) error { return nil })
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "gemini", c.Name())
}
