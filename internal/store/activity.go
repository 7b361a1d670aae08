package store

import (
	"context"
	"fmt"

	"github.com/erazemk/sledilnik/internal/docstore"
	"github.com/erazemk/sledilnik/internal/model"
)

// LogActivity appends an activity entry for itemID. It is not part of the
// item write; a failure here leaves the item change in place.
func LogActivity(ctx context.Context, ds docstore.Store, itemID, action, detail string) error {
	if !model.ValidAction(action) {
		return fmt.Errorf("unknown activity action %q", action)
	}

	_, err := ds.Insert(ctx, model.ActivityCollection, model.Activity{
		ItemID:    itemID,
		Action:    action,
		Detail:    detail,
		CreatedAt: now(),
	})
	if err != nil {
		return fmt.Errorf("logging %s activity for item %s: %w", action, itemID, err)
	}
	return nil
}

// GetActivity returns the activity trail for itemID in insertion order. The
// item does not need to exist.
func GetActivity(ctx context.Context, ds docstore.Store, itemID string) ([]model.Activity, error) {
	var activity []model.Activity
	if err := ds.Query(ctx, model.ActivityCollection, docstore.Filter{docstore.Eq("item_id", itemID)}, &activity); err != nil {
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	if activity == nil {
		activity = []model.Activity{}
	}
	return activity, nil
}
