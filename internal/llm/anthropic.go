package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-3-5-haiku-20241022"

// AnthropicClient talks to the Anthropic Messages API.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient requires a non-empty key.
func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	return &AnthropicClient{client: anthropic.NewClient(option.WithAPIKey(apiKey))}, nil
}

func (c *AnthropicClient) Name() string { return string(ProviderAnthropic) }

func (c *AnthropicClient) Models() []string {
	return []string{defaultAnthropicModel, "claude-3-5-sonnet-20241022"}
}

// Complete joins every text block of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	msg, err := c.client.Messages.New(ctx, anthropicParams(req))
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			text.WriteString(block.Text)
		}
	}

	return &CompletionResponse{
		Content:    text.String(),
		Model:      msg.Model,
		TokensIn:   int(msg.Usage.InputTokens),
		TokensOut:  int(msg.Usage.OutputTokens),
		StopReason: string(msg.StopReason),
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}

// CompleteStream forwards text deltas to callback as they arrive.
func (c *AnthropicClient) CompleteStream(ctx context.Context, req *CompletionRequest, callback StreamCallback) (*CompletionResponse, error) {
	start := time.Now()
	model, _ := resolve(req, defaultAnthropicModel)
	out := &CompletionResponse{Model: model}

	var text strings.Builder
	tokens := 0
	stream := c.client.Messages.NewStreaming(ctx, anthropicParams(req))
	for stream.Next() {
		ev := stream.Current()
		switch ev.Type {
		case anthropic.MessageStreamEventTypeMessageStart:
			out.TokensIn = int(ev.Message.Usage.InputTokens)
		case anthropic.MessageStreamEventTypeMessageDelta:
			out.StopReason = string(ev.Delta.StopReason)
			out.TokensOut = int(ev.Usage.OutputTokens)
		case anthropic.MessageStreamEventTypeContentBlockDelta:
			if ev.Delta.Type != "text_delta" || ev.Delta.Text == "" {
				continue
			}
			if err := callback(ev.Delta.Text, tokens); err != nil {
				return nil, err
			}
			text.WriteString(ev.Delta.Text)
			tokens++
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	out.Content = text.String()
	out.LatencyMs = time.Since(start).Milliseconds()
	return out, nil
}

func anthropicParams(req *CompletionRequest) anthropic.MessageNewParams {
	model, maxTokens := resolve(req, defaultAnthropicModel)

	turns := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := anthropic.MessageParamRoleUser
		if isAssistant(m.Role) {
			role = anthropic.MessageParamRoleAssistant
		}
		turns = append(turns, anthropic.MessageParam{
			Role:    anthropic.F(role),
			Content: anthropic.F([]anthropic.ContentBlockParamUnion{textBlock(m.Content)}),
		})
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.F(model),
		MaxTokens: anthropic.F(int64(maxTokens)),
		Messages:  anthropic.F(turns),
	}
	if req.System != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{textBlock(req.System)})
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.F(req.Temperature)
	}
	return params
}

func textBlock(s string) anthropic.TextBlockParam {
	return anthropic.TextBlockParam{
		Type: anthropic.F(anthropic.TextBlockParamTypeText),
		Text: anthropic.F(s),
	}
}
