package service

import (
	"context"

	"github.com/mentra/group-booking/internal/model"
)

// ProfileService produces the profile returned at the end of intake: the
// extraction result plus a score for every catalog group.
type ProfileService struct {
	extractor   *InsightExtractor
	recommender *GroupRecommender
	catalog     GroupLister
}

// NewProfileService creates a new profile service.
func NewProfileService(extractor *InsightExtractor, recommender *GroupRecommender, catalog GroupLister) *ProfileService {
	return &ProfileService{
		extractor:   extractor,
		recommender: recommender,
		catalog:     catalog,
	}
}

// BuildProfile extracts insights from history and attaches recommendations.
// A recommendedGroup picked by the extraction is kept as is; recommendedGroups
// is always filled in by the recommender.
func (s *ProfileService) BuildProfile(ctx context.Context, history []model.ConversationMessage) (*model.InsightProfile, error) {
	profile, err := s.extractor.ExtractInsights(ctx, history)
	if err != nil {
		return nil, err
	}

	groups, err := s.catalog.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	profile.RecommendedGroups = s.recommender.RecommendGroup(ctx, profile, groups)
	return profile, nil
}
