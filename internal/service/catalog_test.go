package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCatalog(t *testing.T) {
	catalog := NewGroupCatalog(openStore(t, scenarioGroups()))
	ctx := context.Background()

	t.Run("list keeps order", func(t *testing.T) {
		groups, err := catalog.ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "g1", groups[0].ID)
		assert.Equal(t, "g2", groups[1].ID)
	})

	t.Run("get", func(t *testing.T) {
		g, err := catalog.GetGroup(ctx, "g2")
		require.NoError(t, err)
		assert.Equal(t, 10, g.Capacity)

		_, err = catalog.GetGroup(ctx, "unknown-id")
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("available slots", func(t *testing.T) {
		slots, err := catalog.ListAvailableSlots(ctx, "g1")
		require.NoError(t, err)
		assert.Len(t, slots, 2)

		slots, err = catalog.ListAvailableSlots(ctx, "g2")
		require.NoError(t, err)
		assert.Empty(t, slots)

		_, err = catalog.ListAvailableSlots(ctx, "unknown-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
