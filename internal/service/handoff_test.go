package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentra/group-booking/internal/llm/llmtest"
	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/pkg/logger"
)

const handoffReply = `{
  "groupTheme": "Managing anxiety at work",
  "sharedGoals": ["calmer evenings"],
  "participantSummaries": [{"name": "Ann", "keyPoints": ["new to groups"]}],
  "suggestedFocusAreas": ["grounding"],
  "therapistNotes": "Start with introductions."
}`

func TestBuildRoster(t *testing.T) {
	t.Run("no bookings uses synthetic participants", func(t *testing.T) {
		roster := BuildRoster(nil)
		require.Len(t, roster, 2)
		assert.Equal(t, "Alex M.", roster[0].Name)
		assert.Equal(t, "Jordan K.", roster[1].Name)
	})

	t.Run("real bookings come first and the roster is capped", func(t *testing.T) {
		bookings := []model.Booking{{UserName: "Ann"}, {UserName: "Bo"}}
		roster := BuildRoster(bookings)
		require.Len(t, roster, MaxHandoffParticipants)
		assert.Equal(t, []string{"Ann", "Bo", "Alex M."}, []string{roster[0].Name, roster[1].Name, roster[2].Name})
		assert.Equal(t, bookedParticipantConcern, roster[0].Concern)
	})

	t.Run("many bookings", func(t *testing.T) {
		var bookings []model.Booking
		for i := 0; i < 5; i++ {
			bookings = append(bookings, model.Booking{UserName: fmt.Sprintf("u%d", i)})
		}
		roster := BuildRoster(bookings)
		require.Len(t, roster, MaxHandoffParticipants)
		assert.Equal(t, "u2", roster[2].Name)
	})
}

func TestGenerateHandoffSummary(t *testing.T) {
	fake := llmtest.New(llmtest.Text("Summary below\n" + handoffReply))
	s := NewHandoffSummarizer(fake, logger.NewNop(), "")

	participants := []model.Participant{{Name: "Ann", Concern: "sleep"}, {Name: "Alex M.", KeyPoints: []string{"a", "b"}}}
	got, err := s.GenerateHandoffSummary(context.Background(), "g1", participants, "all set")

	require.NoError(t, err)
	assert.Equal(t, "Managing anxiety at work", got.GroupTheme)
	assert.Equal(t, []string{"grounding"}, got.SuggestedFocusAreas)

	prompt := fake.Requests()[0].Messages[0].Content
	assert.Contains(t, prompt, "Group ID: g1")
	assert.Contains(t, prompt, "- Ann: sleep\n- Alex M.: a, b")
	assert.Contains(t, prompt, "all set")
}

func TestGenerateHandoffSummary_NoFallback(t *testing.T) {
	s := NewHandoffSummarizer(llmtest.New(llmtest.Text("cannot comply"), llmtest.Fail(errors.New("down"))), logger.NewNop(), "")

	_, err := s.GenerateHandoffSummary(context.Background(), "g1", nil, "")
	assert.ErrorIs(t, err, ErrGeneration)

	_, err = s.GenerateHandoffSummary(context.Background(), "g1", nil, "")
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestHandoffService_Generate(t *testing.T) {
	files := openStore(t, scenarioGroups())
	catalog := NewGroupCatalog(files)
	pub := &recordingPublisher{}
	bookings := NewBookingStore(files, nil, logger.NewNop())
	fake := llmtest.New(llmtest.Text(handoffReply))
	svc := NewHandoffService(catalog, bookings, NewHandoffSummarizer(fake, logger.NewNop(), ""), pub, logger.NewNop())
	ctx := context.Background()

	_, err := bookings.CreateBooking(ctx, &model.CreateBookingRequest{GroupID: "g1", SessionID: "s2", UserName: "Ann"})
	require.NoError(t, err)

	resp, err := svc.Generate(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", resp.GroupID)
	assert.Equal(t, "Ann", resp.Participants[0].Name)
	assert.Len(t, resp.Participants, 3)
	assert.False(t, resp.GeneratedAt.IsZero())

	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventTypeHandoffGenerated, events[0].Type)

	_, err = svc.Generate(ctx, "unknown-id")
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.Equal(t, 1, fake.Calls(), "unknown groups never reach the model")
}

func TestProfileService_BuildProfile(t *testing.T) {
	catalog := NewGroupCatalog(openStore(t, scenarioGroups()))

	t.Run("keeps extraction pick and adds scores", func(t *testing.T) {
		fake := llmtest.New(
			llmtest.Text(`{"themes":["work"],"mainConcern":"stress","recommendedGroup":{"id":"g2","name":"Work","reasoning":"fits"}}`),
			llmtest.Text(`[{"groupId":"g1","relevanceScore":4,"reasoning":"some"},{"groupId":"g2","relevanceScore":9,"reasoning":"strong"}]`),
		)
		svc := NewProfileService(
			NewInsightExtractor(fake, catalog, logger.NewNop(), ""),
			NewGroupRecommender(fake, logger.NewNop(), ""),
			catalog,
		)

		p, err := svc.BuildProfile(context.Background(), transcript)

		require.NoError(t, err)
		require.NotNil(t, p.RecommendedGroup)
		assert.Equal(t, "g2", p.RecommendedGroup.ID)
		require.Len(t, p.RecommendedGroups, 2)
		assert.Equal(t, 9, p.RecommendedGroups[1].RelevanceScore)
	})

	t.Run("recommender failure still yields a profile", func(t *testing.T) {
		fake := llmtest.New(llmtest.Text(`{"themes":["grief"]}`), llmtest.Fail(errors.New("down")))
		svc := NewProfileService(
			NewInsightExtractor(fake, catalog, logger.NewNop(), ""),
			NewGroupRecommender(fake, logger.NewNop(), ""),
			catalog,
		)

		p, err := svc.BuildProfile(context.Background(), transcript)

		require.NoError(t, err)
		assert.Nil(t, p.RecommendedGroup)
		require.Len(t, p.RecommendedGroups, 2)
		assert.Equal(t, 5, p.RecommendedGroups[0].RelevanceScore)
	})

	t.Run("extraction failure propagates", func(t *testing.T) {
		fake := llmtest.New(llmtest.Text("nothing useful"))
		svc := NewProfileService(
			NewInsightExtractor(fake, catalog, logger.NewNop(), ""),
			NewGroupRecommender(fake, logger.NewNop(), ""),
			catalog,
		)

		_, err := svc.BuildProfile(context.Background(), transcript)

		assert.ErrorIs(t, err, ErrParse)
		assert.Equal(t, 1, fake.Calls())
	})
}
