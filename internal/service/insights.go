package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/llm"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/pkg/logger"
	"github.com/mentra/group-booking/pkg/metrics"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 500
)

// GroupLister supplies the catalog used to ground prompts.
type GroupLister interface {
	ListGroups(ctx context.Context) ([]model.Group, error)
}

// InsightExtractor runs the intake conversation and turns a finished
// transcript into an InsightProfile.
type InsightExtractor struct {
	llm     llm.Client
	catalog GroupLister
	logger  *logger.Logger
	model   string
}

// NewInsightExtractor creates a new extractor. model may be empty to use the
// provider default.
func NewInsightExtractor(client llm.Client, catalog GroupLister, log *logger.Logger, model string) *InsightExtractor {
	return &InsightExtractor{
		llm:     client,
		catalog: catalog,
		logger:  log.Component("insights"),
		model:   model,
	}
}

// GenerateResponse returns the assistant's next intake message, verbatim.
func (e *InsightExtractor) GenerateResponse(ctx context.Context, message string, history []model.ConversationMessage) (string, error) {
	resp, err := e.llm.Complete(ctx, e.chatRequest(ctx, message, history))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrGeneration)
	}

	return resp.Content, nil
}

// StreamResponse is GenerateResponse delivering the reply through onToken as
// it arrives. The full reply is also returned.
func (e *InsightExtractor) StreamResponse(ctx context.Context, message string, history []model.ConversationMessage, onToken func(token string) error) (string, error) {
	resp, err := e.llm.CompleteStream(ctx, e.chatRequest(ctx, message, history), func(token string, _ int) error {
		return onToken(token)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrGeneration)
	}

	return resp.Content, nil
}

func (e *InsightExtractor) chatRequest(ctx context.Context, message string, history []model.ConversationMessage) *llm.CompletionRequest {
	messages := make([]llm.ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, llm.ChatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	// Clients usually append the new message to the history before sending it.
	last := len(history) - 1
	if last < 0 || history[last].Role != model.RoleUser || history[last].Content != message {
		messages = append(messages, llm.ChatMessage{Role: string(model.RoleUser), Content: message})
	}

	return &llm.CompletionRequest{
		Model:       e.model,
		System:      IntakeSystemPrompt(e.groups(ctx)),
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
		Purpose:     "chat",
	}
}

// ExtractInsights asks the model for a profile of the transcript.
func (e *InsightExtractor) ExtractInsights(ctx context.Context, history []model.ConversationMessage) (*model.InsightProfile, error) {
	req := llm.UserPrompt("insights", insightsPrompt(e.groups(ctx), history))
	req.Model = e.model

	resp, err := e.llm.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	decoded := llm.DecodeObject[model.InsightProfile](resp.Content)
	metrics.RecordJSONDecode("insights", decoded.Parsed())
	if !decoded.Parsed() {
		e.logger.Warn("insight extraction returned malformed output",
			zap.Int("raw_length", len(decoded.Raw)),
			zap.Error(decoded.Err),
		)
		return nil, fmt.Errorf("%w: %v", ErrParse, decoded.Err)
	}

	return &decoded.Value, nil
}

func (e *InsightExtractor) groups(ctx context.Context) []model.Group {
	if e.catalog == nil {
		return nil
	}
	groups, err := e.catalog.ListGroups(ctx)
	if err != nil {
		e.logger.Warn("catalog unavailable for prompt", zap.Error(err))
		return nil
	}
	return groups
}
