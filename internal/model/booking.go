package model

import (
	"time"
)

// Booking is a confirmed seat in one session. The group and session fields are
// a snapshot taken when the booking was made.
type Booking struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"groupId"`
	SessionID   string    `json:"sessionId"`
	GroupName   string    `json:"groupName"`
	SessionDate string    `json:"sessionDate"`
	SessionTime string    `json:"sessionTime"`
	Therapist   string    `json:"therapist"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateBookingRequest is the body of POST /booking.
type CreateBookingRequest struct {
	GroupID   string `json:"groupId" validate:"required,max=128"`
	SessionID string `json:"sessionId" validate:"required,max=128"`
	UserName  string `json:"userName" validate:"required,max=200"`
	UserEmail string `json:"userEmail,omitempty" validate:"max=254"`
}

// CreateBookingResponse is returned after a successful booking.
type CreateBookingResponse struct {
	Success        bool     `json:"success"`
	Booking        *Booking `json:"booking"`
	RemainingSeats int      `json:"remainingSeats"`
}
