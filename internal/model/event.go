package model

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

const (
	EventTypeBookingCreated   EventType = "booking.created"
	EventTypeHandoffGenerated EventType = "handoff.generated"
)

// Event is published after a state change the rest of the platform may care
// about. Payload carries the booking or handoff that triggered it.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	GroupID   string    `json:"groupId"`
	SessionID string    `json:"sessionId,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
