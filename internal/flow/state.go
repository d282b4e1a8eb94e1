// Package flow holds the booking client's screen state and the transitions
// between screens. Transitions are pure: they take a State and return the
// next one, so the whole flow can be tested without a terminal or a server.
package flow

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/mentra/group-booking/internal/model"
)

// Screen identifies what the client is showing.
type Screen string

const (
	ScreenLanding      Screen = "landing"
	ScreenConsent      Screen = "consent"
	ScreenChat         Screen = "chat"
	ScreenProfile      Screen = "profile"
	ScreenSessions     Screen = "sessions"
	ScreenBooking      Screen = "booking"
	ScreenPayment      Screen = "payment"
	ScreenConfirmation Screen = "confirmation"
	ScreenHandoff      Screen = "handoff"
)

var (
	// ErrNoConsent is returned when the user tries to start the chat without agreeing.
	ErrNoConsent = errors.New("consent is required to continue")
	// ErrSessionUnavailable is returned when selecting an unknown or full session.
	ErrSessionUnavailable = errors.New("session is not available")
	// ErrMissingFields is returned when the booking form is incomplete.
	ErrMissingFields = errors.New("please fill in all required fields")
	// ErrInvalidEmail is returned when the booking email does not parse.
	ErrInvalidEmail = errors.New("please enter a valid email address")
)

// State is everything the client knows about the current user journey.
type State struct {
	Screen         Screen                 `json:"screen"`
	Consent        bool                   `json:"consent"`
	Profile        *model.InsightProfile  `json:"profile,omitempty"`
	Group          *model.Group           `json:"group,omitempty"`
	Session        *model.Session         `json:"session,omitempty"`
	Booking        *model.Booking         `json:"booking,omitempty"`
	RemainingSeats int                    `json:"remainingSeats,omitempty"`
	Handoff        *model.HandoffResponse `json:"handoff,omitempty"`
}

// New returns the state the client starts in.
func New() State {
	return State{Screen: ScreenLanding}
}

// Start moves from the landing page to the consent screen.
func (s State) Start() State {
	s.Screen = ScreenConsent
	return s
}

// Agree records the consent decision. Without consent the screen does not change.
func (s State) Agree(consent bool) (State, error) {
	if !consent {
		return s, ErrNoConsent
	}
	s.Consent = true
	s.Screen = ScreenChat
	return s, nil
}

// WithProfile shows the profile produced at the end of the intake.
func (s State) WithProfile(p *model.InsightProfile) State {
	s.Profile = p
	s.Screen = ScreenProfile
	return s
}

// ViewGroup shows the sessions of g. Any earlier session choice is dropped.
func (s State) ViewGroup(g *model.Group) State {
	s.Group = g
	s.Session = nil
	s.Screen = ScreenSessions
	return s
}

// SelectSession opens the booking form for one of the viewed group's sessions.
func (s State) SelectSession(sessionID string) (State, error) {
	if s.Group == nil {
		return s, ErrSessionUnavailable
	}
	session, ok := s.Group.Session(sessionID)
	if !ok || s.Group.SeatsLeft(*session) <= 0 {
		return s, ErrSessionUnavailable
	}
	s.Session = session
	s.Screen = ScreenBooking
	return s, nil
}

// BookingForm is what the user typed on the booking screen.
type BookingForm struct {
	Name  string
	Email string
}

// Request validates the form against the selected session and builds the
// booking request. Name and email are both required here even though the
// server only insists on the name.
func (s State) Request(form BookingForm) (*model.CreateBookingRequest, error) {
	if s.Group == nil || s.Session == nil {
		return nil, ErrSessionUnavailable
	}
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	return &model.CreateBookingRequest{
		GroupID:   s.Group.ID,
		SessionID: s.Session.ID,
		UserName:  name,
		UserEmail: email,
	}, nil
}

// Booked records a confirmed booking and moves to the payment step.
func (s State) Booked(resp *model.CreateBookingResponse) State {
	s.Booking = resp.Booking
	s.RemainingSeats = resp.RemainingSeats
	s.Screen = ScreenPayment
	return s
}

// Pay is the pass-through payment step. No payment is taken.
func (s State) Pay() (State, error) {
	if s.Booking == nil {
		return s, fmt.Errorf("no booking to pay for")
	}
	s.Screen = ScreenConfirmation
	return s, nil
}

// WithHandoff shows a generated therapist handoff.
func (s State) WithHandoff(h *model.HandoffResponse) State {
	s.Handoff = h
	s.Screen = ScreenHandoff
	return s
}

// RecommendedGroupID is the group the "book recommended" action opens.
func (s State) RecommendedGroupID() (string, bool) {
	if s.Profile == nil {
		return "", false
	}
	id, _, ok := s.Profile.BestRecommendation()
	return id, ok
}

// Browse shows the group list, with or without a profile.
func (s State) Browse() State {
	s.Screen = ScreenProfile
	return s
}
