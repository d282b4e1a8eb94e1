package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentra/group-booking/internal/flow"
	"github.com/mentra/group-booking/internal/model"
)

type fakeAPI struct {
	chatErr  error
	insights int
	booked   *model.CreateBookingRequest
}

func (f *fakeAPI) Chat(_ context.Context, message string, _ []model.ConversationMessage) (string, error) {
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return "Thanks for sharing: " + message, nil
}

func (f *fakeAPI) Insights(context.Context, []model.ConversationMessage) (*model.InsightProfile, error) {
	f.insights++
	return &model.InsightProfile{
		Themes:      []string{"anxiety"},
		MainConcern: "Overthinking",
		RecommendedGroups: []model.GroupRecommendation{
			{GroupID: "g2", GroupName: "Workplace Stress", RelevanceScore: 4, Reasoning: "partly"},
			{GroupID: "g1", GroupName: "Anxiety & Overthinking", RelevanceScore: 9, Reasoning: "strong fit"},
		},
	}, nil
}

func (f *fakeAPI) Groups(context.Context) ([]model.Group, error) {
	return []model.Group{*testGroup()}, nil
}

func (f *fakeAPI) Group(_ context.Context, id string) (*model.Group, error) {
	if id != "g1" {
		return nil, &flow.APIError{Status: 404, Message: "group not found"}
	}
	return testGroup(), nil
}

func (f *fakeAPI) Book(_ context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	f.booked = req
	return &model.CreateBookingResponse{
		Success: true,
		Booking: &model.Booking{
			ID: "BK-1", GroupID: req.GroupID, SessionID: req.SessionID, GroupName: "Anxiety & Overthinking",
			SessionDate: "2026-11-10", SessionTime: "18:00", Therapist: "Dr. Chen", UserName: req.UserName,
		},
		RemainingSeats: 0,
	}, nil
}

func (f *fakeAPI) Handoff(_ context.Context, groupID string) (*model.HandoffResponse, error) {
	return &model.HandoffResponse{
		GroupID:      groupID,
		Handoff:      &model.HandoffSummary{GroupTheme: "Calming busy minds", TherapistNotes: "Go slow."},
		Participants: []model.Participant{{Name: "Ann", Concern: "Individual concerns from intake process"}},
	}, nil
}

func testGroup() *model.Group {
	return &model.Group{
		ID: "g1", Name: "Anxiety & Overthinking", Capacity: 2,
		Sessions: []model.Session{
			{ID: "s1", Date: "2026-11-03", Time: "18:00", Duration: 90, Therapist: "Dr. Chen", BookedSeats: 2},
			{ID: "s2", Date: "2026-11-10", Time: "18:00", Duration: 90, Therapist: "Dr. Chen", BookedSeats: 1},
		},
	}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// press sends a key and ignores any returned command.
func press(m Model, k tea.KeyMsg) Model {
	next, _ := m.Update(k)
	return next.(Model)
}

// pressRun sends a key and feeds the command's message back into the model.
func pressRun(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	require.NotNil(t, cmd)
	next, _ = next.(Model).Update(cmd())
	return next.(Model)
}

func TestModel_FullJourney(t *testing.T) {
	api := &fakeAPI{}
	dir := t.TempDir()
	m := New(context.Background(), api, dir)
	m.now = func() time.Time { return time.UnixMilli(1700000000000) }

	next, _ := m.Update(m.Init()())
	m = next.(Model)
	require.Len(t, m.groups, 1)
	assert.Contains(t, m.View(), "Find a group that fits you")

	m = press(m, key(tea.KeyEnter))
	assert.Equal(t, flow.ScreenConsent, m.State().Screen)

	m = press(m, runes("n"))
	assert.Equal(t, flow.ScreenConsent, m.State().Screen)
	assert.Contains(t, m.View(), "consent is required")

	m = press(m, runes("y"))
	require.Equal(t, flow.ScreenChat, m.State().Screen)

	for i, msg := range []string{"I overthink", "For a year", "Calm down", "Work"} {
		m = press(m, runes(msg))
		m = pressRun(t, m, key(tea.KeyEnter))
		if i < 3 {
			assert.Equal(t, flow.ScreenChat, m.State().Screen)
			assert.Contains(t, m.View(), "Thanks for sharing: "+msg)
		}
	}
	require.Equal(t, flow.ScreenProfile, m.State().Screen)
	assert.Equal(t, 1, api.insights)
	view := m.View()
	assert.Contains(t, view, "Overthinking")
	assert.Contains(t, view, "relevance 9/10")
	assert.Contains(t, view, "r book Anxiety & Overthinking")

	m = pressRun(t, m, runes("r"))
	require.Equal(t, flow.ScreenSessions, m.State().Screen)
	assert.Contains(t, m.View(), "Fully Booked")
	assert.Contains(t, m.View(), "Nov 10, 2026 · 6:00 PM (90 min)")

	m = press(m, key(tea.KeyEnter))
	assert.ErrorIs(t, m.err, flow.ErrSessionUnavailable)

	m = press(m, runes("j"))
	m = press(m, key(tea.KeyEnter))
	require.Equal(t, flow.ScreenBooking, m.State().Screen)

	m = press(m, runes("Ann"))
	m = press(m, key(tea.KeyEnter))
	assert.ErrorIs(t, m.err, flow.ErrMissingFields)

	m = press(m, key(tea.KeyTab))
	m = press(m, runes("ann@example.com"))
	m = pressRun(t, m, key(tea.KeyEnter))
	require.Equal(t, flow.ScreenPayment, m.State().Screen)
	assert.Equal(t, &model.CreateBookingRequest{GroupID: "g1", SessionID: "s2", UserName: "Ann", UserEmail: "ann@example.com"}, api.booked)

	m = press(m, key(tea.KeyEnter))
	require.Equal(t, flow.ScreenConfirmation, m.State().Screen)
	assert.Contains(t, m.View(), "BK-1")

	m = pressRun(t, m, runes("h"))
	require.Equal(t, flow.ScreenHandoff, m.State().Screen)
	assert.Contains(t, m.View(), "Calming busy minds")

	m = pressRun(t, m, runes("t"))
	path := filepath.Join(dir, "mentra-handoff-g1-1700000000000.txt")
	assert.Contains(t, m.View(), "Saved "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "MENTRA THERAPIST HANDOFF REPORT"))

	m = pressRun(t, m, runes("j"))
	_, err = os.Stat(filepath.Join(dir, "mentra-handoff-g1-1700000000000.json"))
	assert.NoError(t, err)
}

func TestModel_ChatErrorShowsBubble(t *testing.T) {
	m := New(context.Background(), &fakeAPI{chatErr: errors.New("boom")}, t.TempDir())
	m = press(m, key(tea.KeyEnter))
	m = press(m, runes("y"))
	m = press(m, runes("hello"))
	m = pressRun(t, m, key(tea.KeyEnter))

	assert.Equal(t, flow.ScreenChat, m.State().Screen)
	assert.Contains(t, m.View(), chatErrorText)
	assert.NotContains(t, m.View(), "boom")
}

func TestModel_BrowseWithoutProfile(t *testing.T) {
	m := New(context.Background(), &fakeAPI{}, t.TempDir())
	next, _ := m.Update(m.Init()())
	m = next.(Model)
	m = press(m, key(tea.KeyEnter))
	m = press(m, runes("y"))
	m = press(m, key(tea.KeyTab))

	require.Equal(t, flow.ScreenProfile, m.State().Screen)
	assert.Contains(t, m.View(), "Anxiety & Overthinking")
	assert.NotContains(t, m.View(), "Your profile")

	m = pressRun(t, m, key(tea.KeyEnter))
	assert.Equal(t, flow.ScreenSessions, m.State().Screen)

	m = press(m, key(tea.KeyEsc))
	assert.Equal(t, flow.ScreenProfile, m.State().Screen)
}
