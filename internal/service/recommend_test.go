package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentra/group-booking/internal/llm/llmtest"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/pkg/logger"
)

func threeGroups() []model.Group {
	return []model.Group{
		{ID: "anxiety-overthinking", Name: "Anxiety & Overthinking", Description: "worry"},
		{ID: "workplace-stress", Name: "Workplace Stress & Burnout", Description: "work"},
		{ID: "grief-transitions", Name: "Grief & Life Transitions", Description: "loss"},
	}
}

func assertOnePerGroup(t *testing.T, groups []model.Group, recs []model.GroupRecommendation) {
	t.Helper()
	require.Len(t, recs, len(groups))
	for i, g := range groups {
		assert.Equal(t, g.ID, recs[i].GroupID)
		assert.Equal(t, g.Name, recs[i].GroupName)
		assert.GreaterOrEqual(t, recs[i].RelevanceScore, 1)
		assert.LessOrEqual(t, recs[i].RelevanceScore, 10)
	}
}

func TestRecommendGroup_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		reply llmtest.Reply
	}{
		{"service error", llmtest.Fail(errors.New("503"))},
		{"no array", llmtest.Text("All of them look great!")},
		{"invalid array", llmtest.Text(`[{"groupId": anxiety}]`)},
		{"wrong types", llmtest.Text(`[{"groupId":"workplace-stress","relevanceScore":"high"}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := threeGroups()
			r := NewGroupRecommender(llmtest.New(tt.reply), logger.NewNop(), "")

			recs := r.RecommendGroup(context.Background(), &model.InsightProfile{MainConcern: "stress"}, groups)

			assertOnePerGroup(t, groups, recs)
			for _, rec := range recs {
				assert.Equal(t, 5, rec.RelevanceScore)
				assert.Equal(t, defaultReasoning, rec.Reasoning)
			}
		})
	}
}

func TestRecommendGroup_FallbackEmptyCatalog(t *testing.T) {
	r := NewGroupRecommender(llmtest.New(llmtest.Fail(errors.New("down"))), logger.NewNop(), "")

	recs := r.RecommendGroup(context.Background(), nil, nil)

	assert.Empty(t, recs)
}

func TestRecommendGroup_AlignsModelOutput(t *testing.T) {
	reply := `Sure:
[
  {"groupId": "grief-transitions", "groupName": "Grief", "relevanceScore": 2, "reasoning": "no recent loss"},
  {"groupId": "workplace-stress", "groupName": "Work", "relevanceScore": 14, "reasoning": "work is the trigger"},
  {"groupId": "made-up", "groupName": "Imaginary", "relevanceScore": 9, "reasoning": "?"},
  {"groupId": "workplace-stress", "groupName": "Work again", "relevanceScore": 1, "reasoning": "dup"}
]`
	groups := threeGroups()
	fake := llmtest.New(llmtest.Text(reply))
	r := NewGroupRecommender(fake, logger.NewNop(), "")

	recs := r.RecommendGroup(context.Background(), &model.InsightProfile{
		MainConcern:       "stress",
		RecommendedGroups: []model.GroupRecommendation{{GroupID: "stale"}},
	}, groups)

	assertOnePerGroup(t, groups, recs)
	assert.Equal(t, defaultReasoning, recs[0].Reasoning, "missing group gets the default entry")
	assert.Equal(t, 10, recs[1].RelevanceScore, "scores are clamped")
	assert.Equal(t, "work is the trigger", recs[1].Reasoning)
	assert.Equal(t, 2, recs[2].RelevanceScore)

	prompt := fake.Requests()[0].Messages[0].Content
	assert.Contains(t, prompt, "workplace-stress: Workplace Stress & Burnout - work")
	assert.NotContains(t, prompt, "stale")
}
