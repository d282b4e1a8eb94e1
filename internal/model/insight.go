package model

// Preferences captures how and when a user would like to meet.
type Preferences struct {
	Format string `json:"format"`
	Timing string `json:"timing"`
}

// RecommendedGroup is a single group pick emitted by the intake extraction.
type RecommendedGroup struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Reasoning string `json:"reasoning"`
}

// GroupRecommendation scores one catalog group against a profile.
type GroupRecommendation struct {
	GroupID        string `json:"groupId"`
	GroupName      string `json:"groupName"`
	RelevanceScore int    `json:"relevanceScore"`
	Reasoning      string `json:"reasoning"`
}

// InsightProfile is the structured result of an intake conversation.
//
// RecommendedGroup is only present when the extraction itself picked a group;
// RecommendedGroups always carries the per-group scoring. Clients must accept
// either.
type InsightProfile struct {
	Themes            []string              `json:"themes"`
	MainConcern       string                `json:"mainConcern"`
	Goals             []string              `json:"goals"`
	Challenges        []string              `json:"challenges"`
	Preferences       Preferences           `json:"preferences"`
	RecommendedGroup  *RecommendedGroup     `json:"recommendedGroup,omitempty"`
	RecommendedGroups []GroupRecommendation `json:"recommendedGroups,omitempty"`
	IntakeComplete    bool                  `json:"intakeComplete,omitempty"`
}

// BestRecommendation returns the group the client should offer first: the
// extraction's own pick when it is one of the scored groups, otherwise the
// highest scored entry. The scored list is aligned to the catalog, so a pick
// missing from it names no real group.
func (p *InsightProfile) BestRecommendation() (id, name string, ok bool) {
	if p == nil {
		return "", "", false
	}
	best := -1
	for i, r := range p.RecommendedGroups {
		if p.RecommendedGroup != nil && r.GroupID == p.RecommendedGroup.ID {
			return r.GroupID, r.GroupName, true
		}
		if best < 0 || r.RelevanceScore > p.RecommendedGroups[best].RelevanceScore {
			best = i
		}
	}
	if best < 0 {
		return "", "", false
	}
	return p.RecommendedGroups[best].GroupID, p.RecommendedGroups[best].GroupName, true
}
