package model

import (
	"strings"
	"time"
)

// Participant is one roster entry handed to the handoff summarizer. Real
// bookings and synthetic placeholders share this shape.
type Participant struct {
	Name      string   `json:"name"`
	Concern   string   `json:"concern,omitempty"`
	KeyPoints []string `json:"keyPoints,omitempty"`
}

// Summary returns the text shown for the participant.
func (p Participant) Summary() string {
	if len(p.KeyPoints) > 0 {
		return strings.Join(p.KeyPoints, ", ")
	}
	return p.Concern
}

// ParticipantSummary is the model's per-participant digest.
type ParticipantSummary struct {
	Name      string   `json:"name"`
	KeyPoints []string `json:"keyPoints"`
}

// HandoffSummary is the therapist-facing summary for a group.
type HandoffSummary struct {
	GroupTheme           string               `json:"groupTheme"`
	SharedGoals          []string             `json:"sharedGoals"`
	ParticipantSummaries []ParticipantSummary `json:"participantSummaries"`
	SuggestedFocusAreas  []string             `json:"suggestedFocusAreas"`
	TherapistNotes       string               `json:"therapistNotes"`
}

// HandoffResponse is the body of GET /handoff/{groupId}.
type HandoffResponse struct {
	GroupID      string          `json:"groupId"`
	Handoff      *HandoffSummary `json:"handoff"`
	Participants []Participant   `json:"participants"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
