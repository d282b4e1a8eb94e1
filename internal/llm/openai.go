package llm

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient requires a non-empty key.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	return &OpenAIClient{client: openai.NewClient(apiKey)}, nil
}

func (c *OpenAIClient) Name() string { return string(ProviderOpenAI) }

func (c *OpenAIClient) Models() []string {
	return []string{defaultOpenAIModel, "gpt-4o"}
}

// Complete returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openAIRequest(req, false))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: response has no choices")
	}

	choice := resp.Choices[0]
	return &CompletionResponse{
		Content:    choice.Message.Content,
		Model:      resp.Model,
		TokensIn:   resp.Usage.PromptTokens,
		TokensOut:  resp.Usage.CompletionTokens,
		StopReason: string(choice.FinishReason),
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}

// CompleteStream forwards content deltas to callback. The stream carries no
// usage block, so token counts are estimated at four bytes a token.
func (c *OpenAIClient) CompleteStream(ctx context.Context, req *CompletionRequest, callback StreamCallback) (*CompletionResponse, error) {
	start := time.Now()
	chatReq := openAIRequest(req, true)

	stream, err := c.client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	out := &CompletionResponse{Model: chatReq.Model}
	var text strings.Builder
	tokens := 0
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		choice := chunk.Choices[0]
		if choice.FinishReason != "" {
			out.StopReason = string(choice.FinishReason)
		}
		if choice.Delta.Content == "" {
			continue
		}
		if err := callback(choice.Delta.Content, tokens); err != nil {
			return nil, err
		}
		text.WriteString(choice.Delta.Content)
		tokens++
	}

	prompt := 0
	for _, m := range chatReq.Messages {
		prompt += len(m.Content)
	}

	out.Content = text.String()
	out.TokensIn = prompt / 4
	out.TokensOut = text.Len() / 4
	out.LatencyMs = time.Since(start).Milliseconds()
	return out, nil
}

func openAIRequest(req *CompletionRequest, stream bool) openai.ChatCompletionRequest {
	model, maxTokens := resolve(req, defaultOpenAIModel)

	turns := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		turns = append(turns, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if isAssistant(m.Role) {
			role = openai.ChatMessageRoleAssistant
		}
		turns = append(turns, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    turns,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
		Stream:      stream,
	}
}
