package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/llm"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/pkg/logger"
	"github.com/mentra/group-booking/pkg/metrics"
)

const (
	defaultRelevanceScore = 5
	defaultReasoning      = "Default recommendation - this group may be suitable"
)

// GroupRecommender scores every catalog group against a profile.
type GroupRecommender struct {
	llm    llm.Client
	logger *logger.Logger
	model  string
}

// NewGroupRecommender creates a new recommender.
func NewGroupRecommender(client llm.Client, log *logger.Logger, model string) *GroupRecommender {
	return &GroupRecommender{
		llm:    client,
		logger: log.Component("recommender"),
		model:  model,
	}
}

// RecommendGroup returns one recommendation per group, in catalog order. It
// never fails: when the model errors or its output cannot be parsed every
// group gets the default score.
func (r *GroupRecommender) RecommendGroup(ctx context.Context, profile *model.InsightProfile, groups []model.Group) []model.GroupRecommendation {
	if profile == nil {
		profile = &model.InsightProfile{}
	}

	req := llm.UserPrompt("recommendation", recommendationPrompt(profile, groups))
	req.Model = r.model

	resp, err := r.llm.Complete(ctx, req)
	if err != nil {
		r.logger.Warn("recommendation call failed, using defaults", zap.Error(err))
		return DefaultRecommendations(groups)
	}

	decoded := llm.DecodeArray[[]model.GroupRecommendation](resp.Content)
	metrics.RecordJSONDecode("recommendation", decoded.Parsed())
	if !decoded.Parsed() {
		r.logger.Warn("recommendation output malformed, using defaults", zap.Error(decoded.Err))
		return DefaultRecommendations(groups)
	}

	return alignRecommendations(decoded.Value, groups)
}

// DefaultRecommendations scores every group 5/10 with a generic reason.
func DefaultRecommendations(groups []model.Group) []model.GroupRecommendation {
	metrics.RecommendationFallbacksTotal.Inc()
	out := make([]model.GroupRecommendation, len(groups))
	for i, g := range groups {
		out[i] = defaultRecommendation(g)
	}
	return out
}

func defaultRecommendation(g model.Group) model.GroupRecommendation {
	return model.GroupRecommendation{
		GroupID:        g.ID,
		GroupName:      g.Name,
		RelevanceScore: defaultRelevanceScore,
		Reasoning:      defaultReasoning,
	}
}

// alignRecommendations reorders the model's entries to catalog order, drops
// unknown or repeated groups, fills missing ones with the default entry and
// clamps scores to 1..10.
func alignRecommendations(scored []model.GroupRecommendation, groups []model.Group) []model.GroupRecommendation {
	byID := make(map[string]model.GroupRecommendation, len(scored))
	for _, rec := range scored {
		if _, seen := byID[rec.GroupID]; !seen {
			byID[rec.GroupID] = rec
		}
	}

	out := make([]model.GroupRecommendation, len(groups))
	for i, g := range groups {
		rec, ok := byID[g.ID]
		if !ok {
			out[i] = defaultRecommendation(g)
			continue
		}
		rec.GroupName = g.Name
		rec.RelevanceScore = min(max(rec.RelevanceScore, 1), 10)
		if rec.Reasoning == "" {
			rec.Reasoning = defaultReasoning
		}
		out[i] = rec
	}
	return out
}
