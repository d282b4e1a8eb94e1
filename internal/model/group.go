// Package model defines the data structures shared by the booking server and
// its clients.
package model

// Group is a recurring therapy cohort with a fixed seat capacity per session.
type Group struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Capacity    int       `json:"capacity" yaml:"capacity"`
	Sessions    []Session `json:"sessions" yaml:"sessions"`
}

// Session is one scheduled occurrence of a Group.
type Session struct {
	ID          string `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	Time        string `json:"time" yaml:"time"`
	Duration    int    `json:"duration" yaml:"duration"`
	Therapist   string `json:"therapist" yaml:"therapist"`
	BookedSeats int    `json:"bookedSeats" yaml:"bookedSeats"`
}

// Session returns the session with the given ID.
func (g *Group) Session(id string) (*Session, bool) {
	for i := range g.Sessions {
		if g.Sessions[i].ID == id {
			return &g.Sessions[i], true
		}
	}
	return nil, false
}

// SeatsLeft returns the number of unbooked seats in s, never negative.
func (g *Group) SeatsLeft(s Session) int {
	left := g.Capacity - s.BookedSeats
	if left < 0 {
		return 0
	}
	return left
}

// AvailableSessions returns the sessions that still have a free seat, in
// catalog order.
func (g *Group) AvailableSessions() []Session {
	out := make([]Session, 0, len(g.Sessions))
	for _, s := range g.Sessions {
		if s.BookedSeats < g.Capacity {
			out = append(out, s)
		}
	}
	return out
}

// SlotsRequest is the body of POST /groups/slots/generate.
type SlotsRequest struct {
	GroupID string `json:"groupId"`
}

// SlotsResponse lists the sessions with free seats.
type SlotsResponse struct {
	AvailableSlots []Session `json:"availableSlots"`
}
