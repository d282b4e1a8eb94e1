package service

import (
	"context"

	"github.com/mentra/group-booking/internal/model"
	"github.com/mentra/group-booking/internal/store"
)

// GroupCatalog reads the group catalog.
type GroupCatalog struct {
	files *store.Files
}

// NewGroupCatalog creates a new group catalog.
func NewGroupCatalog(files *store.Files) *GroupCatalog {
	return &GroupCatalog{files: files}
}

// ListGroups returns every group in catalog order.
func (c *GroupCatalog) ListGroups(ctx context.Context) ([]model.Group, error) {
	return c.files.Groups(ctx)
}

// GetGroup returns the group with the given ID.
func (c *GroupCatalog) GetGroup(ctx context.Context, id string) (*model.Group, error) {
	groups, err := c.files.Groups(ctx)
	if err != nil {
		return nil, err
	}
	return findGroup(groups, id)
}

// ListAvailableSlots returns the group's sessions that still have a free seat.
func (c *GroupCatalog) ListAvailableSlots(ctx context.Context, groupID string) ([]model.Session, error) {
	group, err := c.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.AvailableSessions(), nil
}

func findGroup(groups []model.Group, id string) (*model.Group, error) {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i], nil
		}
	}
	return nil, ErrGroupNotFound
}
