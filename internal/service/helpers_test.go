package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// openStore writes groups to a fresh data dir and opens it.
func openStore(t *testing.T, groups []model.Group) *store.Files {
	t.Helper()
	dir := t.TempDir()
	data, err := json.Marshal(groups)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.GroupsFile), data, 0o644))

	files, err := store.Open(dir)
	require.NoError(t, err)
	return files
}

// scenarioGroups is one group g1 with capacity 2 and session s1 holding one booking.
func scenarioGroups() []model.Group {
	return []model.Group{{
		ID:          "g1",
		Name:        "Anxiety & Overthinking",
		Description: "Worry and rumination",
		Capacity:    2,
		Sessions: []model.Session{
			{ID: "s1", Date: "2026-11-03", Time: "18:00", Duration: 90, Therapist: "Dr. Chen", BookedSeats: 1},
			{ID: "s2", Date: "2026-11-10", Time: "18:00", Duration: 90, Therapist: "Dr. Chen", BookedSeats: 0},
		},
	}, {
		ID:          "g2",
		Name:        "Workplace Stress & Burnout",
		Description: "Pressure at work",
		Capacity:    10,
		Sessions: []model.Session{
			{ID: "w1", Date: "2026-11-04", Time: "19:00", Duration: 75, Therapist: "Dr. Natarajan", BookedSeats: 10},
		},
	}}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *e)
	return p.err
}

func (p *recordingPublisher) Events() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Event(nil), p.events...)
}
