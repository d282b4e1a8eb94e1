package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleGroup() Group {
	return Group{
		ID:       "g1",
		Name:     "Anxiety & Overthinking",
		Capacity: 2,
		Sessions: []Session{
			{ID: "s1", BookedSeats: 1},
			{ID: "s2", BookedSeats: 2},
			{ID: "s3", BookedSeats: 0},
		},
	}
}

func TestGroup_AvailableSessions(t *testing.T) {
	g := sampleGroup()

	got := g.AvailableSessions()

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s1", "s3"}, ids)
}

func TestGroup_AvailableSessionsEmptyIsNotNil(t *testing.T) {
	g := Group{ID: "g", Capacity: 1, Sessions: []Session{{ID: "s", BookedSeats: 1}}}

	got := g.AvailableSessions()

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGroup_SessionAndSeatsLeft(t *testing.T) {
	g := sampleGroup()

	s, ok := g.Session("s1")
	assert.True(t, ok)
	assert.Equal(t, 1, g.SeatsLeft(*s))

	s.BookedSeats = 5
	assert.Equal(t, 0, g.SeatsLeft(*s))
	assert.Equal(t, 5, g.Sessions[0].BookedSeats, "Session returns a pointer into the group")

	_, ok = g.Session("missing")
	assert.False(t, ok)
}

func TestInsightProfile_BestRecommendation(t *testing.T) {
	t.Run("extraction pick wins", func(t *testing.T) {
		p := &InsightProfile{
			RecommendedGroup: &RecommendedGroup{ID: "grief-transitions", Name: "Grief"},
			RecommendedGroups: []GroupRecommendation{
				{GroupID: "workplace-stress", GroupName: "Work", RelevanceScore: 9},
				{GroupID: "grief-transitions", GroupName: "Grief & Life Transitions", RelevanceScore: 6},
			},
		}
		id, name, ok := p.BestRecommendation()
		assert.True(t, ok)
		assert.Equal(t, "grief-transitions", id)
		assert.Equal(t, "Grief & Life Transitions", name)
	})

	t.Run("unknown pick falls back to top score", func(t *testing.T) {
		p := &InsightProfile{
			RecommendedGroup: &RecommendedGroup{ID: "made-up-group", Name: "Imaginary"},
			RecommendedGroups: []GroupRecommendation{
				{GroupID: "workplace-stress", GroupName: "Work", RelevanceScore: 9},
				{GroupID: "grief-transitions", GroupName: "Grief", RelevanceScore: 6},
			},
		}
		id, _, ok := p.BestRecommendation()
		assert.True(t, ok)
		assert.Equal(t, "workplace-stress", id)
	})

	t.Run("pick without scored groups is not offered", func(t *testing.T) {
		p := &InsightProfile{RecommendedGroup: &RecommendedGroup{ID: "made-up-group"}}
		_, _, ok := p.BestRecommendation()
		assert.False(t, ok)
	})

	t.Run("highest score, first on ties", func(t *testing.T) {
		p := &InsightProfile{RecommendedGroups: []GroupRecommendation{
			{GroupID: "a", RelevanceScore: 5},
			{GroupID: "b", RelevanceScore: 8},
			{GroupID: "c", RelevanceScore: 8},
		}}
		id, _, ok := p.BestRecommendation()
		assert.True(t, ok)
		assert.Equal(t, "b", id)
	})

	t.Run("nothing to recommend", func(t *testing.T) {
		var p *InsightProfile
		_, _, ok := p.BestRecommendation()
		assert.False(t, ok)

		_, _, ok = (&InsightProfile{}).BestRecommendation()
		assert.False(t, ok)
	})
}

func TestParticipant_Summary(t *testing.T) {
	assert.Equal(t, "a, b", Participant{Name: "x", Concern: "c", KeyPoints: []string{"a", "b"}}.Summary())
	assert.Equal(t, "c", Participant{Name: "x", Concern: "c"}.Summary())
}
