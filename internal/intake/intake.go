// Package intake tracks the client side of the intake conversation: the
// transcript, progress through the intake topics, and the single profile
// extraction at the end.
package intake

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mentra/group-booking/internal/model"
)

// Steps are the intake topics in the order the assistant covers them.
var Steps = []string{"concern", "context", "goals", "challenges", "preferences"}

// LastStep is the index that triggers profile extraction.
var LastStep = len(Steps) - 1

// ErrEmptyMessage is returned for a message with no text.
var ErrEmptyMessage = errors.New("message is empty")

// Chatter sends one intake turn and returns the assistant reply.
type Chatter interface {
	Chat(ctx context.Context, message string, history []model.ConversationMessage) (string, error)
}

// Extractor turns a finished transcript into a profile.
type Extractor interface {
	Insights(ctx context.Context, history []model.ConversationMessage) (*model.InsightProfile, error)
}

// State is a snapshot of the intake progress. The step counter is a progress
// indicator only; the assistant may consider the intake done earlier or later.
type State struct {
	CurrentStep int                         `json:"currentStep"`
	Complete    bool                        `json:"complete"`
	History     []model.ConversationMessage `json:"history"`
}

// Advance returns the state after one user message and whether that message
// should trigger profile extraction. Extraction triggers at most once: the
// Complete latch is set together with the trigger and never cleared.
func (s State) Advance() (State, bool) {
	s.CurrentStep = min(s.CurrentStep+1, LastStep)
	if s.CurrentStep >= LastStep && !s.Complete {
		s.Complete = true
		return s, true
	}
	return s, false
}

// Turn is the outcome of one Send.
type Turn struct {
	Reply string
	// Profile is set on the turn that completed the intake.
	Profile *model.InsightProfile
	// ProfileErr reports a failed extraction. The intake stays complete.
	ProfileErr error
}

// Controller runs the intake conversation. It is safe for concurrent use,
// though turns are meant to be sent one at a time.
type Controller struct {
	chat      Chatter
	extractor Extractor

	mu    sync.Mutex
	state State
}

// NewController creates a controller at step 0.
func NewController(chat Chatter, extractor Extractor) *Controller {
	return &Controller{chat: chat, extractor: extractor}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.History = append([]model.ConversationMessage(nil), c.state.History...)
	return s
}

// Send records a user message, fetches the reply and, on the turn that
// reaches the last step, extracts the profile. A failed chat call is
// returned as an error; the message and progress are kept.
func (c *Controller) Send(ctx context.Context, message string) (*Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.History = append(c.state.History, model.ConversationMessage{Role: model.RoleUser, Content: message})
	next, extract := c.state.Advance()
	c.state.CurrentStep = next.CurrentStep

	reply, err := c.chat.Chat(ctx, message, c.state.History)
	if err != nil {
		return nil, err
	}
	c.state.History = append(c.state.History, model.ConversationMessage{Role: model.RoleAssistant, Content: reply})

	turn := &Turn{Reply: reply}
	if extract {
		c.state.Complete = true
		turn.Profile, turn.ProfileErr = c.extractor.Insights(ctx, c.state.History)
	}
	return turn, nil
}
