package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentra/group-booking/internal/model"
)

func TestOpen_SeedsEmptyDir(t *testing.T) {
	dir := t.TempDir()

	f, err := Open(dir)
	require.NoError(t, err)

	groups, err := f.Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "anxiety-overthinking", groups[0].ID)
	assert.NotEmpty(t, groups[0].Sessions)

	bookings, err := f.Bookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NotNil(t, bookings)
}

func TestOpen_KeepsExistingCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, GroupsFile)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"g1","name":"Only","capacity":2,"sessions":[]}]`), 0o644))

	f, err := Open(dir)
	require.NoError(t, err)

	groups, err := f.Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "g1", groups[0].ID)
}

func TestMutate_WritesBothFiles(t *testing.T) {
	f, err := Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = f.Mutate(ctx, func(s *Snapshot) error {
		s.Groups[0].Sessions[0].BookedSeats++
		s.Bookings = append(s.Bookings, model.Booking{ID: "b1", GroupID: s.Groups[0].ID, CreatedAt: time.Unix(0, 0).UTC()})
		return nil
	})
	require.NoError(t, err)

	groups, err := f.Groups(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, groups[0].Sessions[0].BookedSeats)

	bookings, err := f.Bookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID)
}

func TestMutate_ErrorLeavesFilesUntouched(t *testing.T) {
	f, err := Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	boom := errors.New("boom")

	err = f.Mutate(ctx, func(s *Snapshot) error {
		s.Groups = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	groups, err := f.Groups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 3)
}

func TestSeed_ResetsBookings(t *testing.T) {
	f, err := Open(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, f.Mutate(ctx, func(s *Snapshot) error {
		s.Groups[0].Sessions[0].BookedSeats = 0
		s.Bookings = append(s.Bookings, model.Booking{ID: "b1"})
		return nil
	}))

	require.NoError(t, f.Seed(ctx, false))
	bookings, err := f.Bookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	require.NoError(t, f.Seed(ctx, true))
	bookings, err = f.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	groups, err := f.Groups(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, groups[0].Sessions[0].BookedSeats)
}

func TestGroups_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	f, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, GroupsFile), []byte("{not json"), 0o644))

	_, err = f.Groups(context.Background())
	assert.Error(t, err)
	assert.Error(t, f.Check(context.Background()))
}

func TestGroups_CancelledContext(t *testing.T) {
	f, err := Open(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.Groups(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultCatalog_SeatsWithinCapacity(t *testing.T) {
	groups, err := DefaultCatalog()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, g := range groups {
		assert.False(t, seen[g.ID], "duplicate group id %s", g.ID)
		seen[g.ID] = true
		for _, s := range g.Sessions {
			assert.LessOrEqual(t, s.BookedSeats, g.Capacity, "%s/%s", g.ID, s.ID)
			assert.GreaterOrEqual(t, s.BookedSeats, 0)
		}
	}
}
