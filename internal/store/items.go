package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/sledilnik/internal/docstore"
	"github.com/erazemk/sledilnik/internal/model"
)

// ErrNotFound is returned when an item does not exist or its id is malformed.
var ErrNotFound = docstore.ErrNotFound

// now is the clock used for timestamps. Millisecond precision matches what
// every backend can store.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// CreateItem validates and inserts a new item, then records a created activity.
func CreateItem(ctx context.Context, ds docstore.Store, input model.NewItem) (*model.Item, error) {
	item, err := input.Item()
	if err != nil {
		return nil, err
	}

	ts := now()
	item.CreatedAt = ts
	item.UpdatedAt = ts

	id, err := ds.Insert(ctx, model.ItemCollection, item)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if err := LogActivity(ctx, ds, id, model.ActionCreated, fmt.Sprintf("Item '%s' created", item.Title)); err != nil {
		return nil, err
	}

	return GetItem(ctx, ds, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, ds docstore.Store, id string) (*model.Item, error) {
	var item model.Item
	if err := ds.FindByID(ctx, model.ItemCollection, id, &item); err != nil {
		if err == docstore.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting item: %w", err)
	}
	normalizeItem(&item)
	return &item, nil
}

// ListItems returns items whose title contains q (ignoring case) and whose
// status equals status. Empty arguments do not filter.
func ListItems(ctx context.Context, ds docstore.Store, q, status string) ([]model.Item, error) {
	var filter docstore.Filter
	if q != "" {
		filter = append(filter, docstore.Contains("title", q))
	}
	if status != "" {
		filter = append(filter, docstore.Eq("status", status))
	}

	var items []model.Item
	if err := ds.Query(ctx, model.ItemCollection, filter, &items); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	for i := range items {
		normalizeItem(&items[i])
	}
	return items, nil
}

// UpdateItem applies the fields present in patch. It reports false and does
// nothing when the patch is empty.
func UpdateItem(ctx context.Context, ds docstore.Store, id string, patch model.ItemPatch) (*model.Item, bool, error) {
	if patch.Empty() {
		return nil, false, nil
	}

	changes, err := patch.Changes()
	if err != nil {
		return nil, false, err
	}

	set := make(map[string]any, len(changes)+1)
	fields := make([]string, 0, len(changes)+1)
	for _, c := range changes {
		set[c.Field] = c.Value
		fields = append(fields, c.Field)
	}
	set["updated_at"] = now()
	fields = append(fields, "updated_at")

	if err := ds.UpdateByID(ctx, model.ItemCollection, id, set); err != nil {
		if err == docstore.ErrNotFound {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("updating item: %w", err)
	}

	detail := "Item updated: " + strings.Join(fields, ", ")
	if err := LogActivity(ctx, ds, id, model.ActionUpdated, detail); err != nil {
		return nil, false, err
	}

	item, err := GetItem(ctx, ds, id)
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// DeleteItem removes an item and records a deleted activity. The item's
// activity history is kept.
func DeleteItem(ctx context.Context, ds docstore.Store, id string) error {
	if err := ds.DeleteByID(ctx, model.ItemCollection, id); err != nil {
		if err == docstore.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("deleting item: %w", err)
	}

	return LogActivity(ctx, ds, id, model.ActionDeleted, "Item deleted")
}

func normalizeItem(item *model.Item) {
	if item.Tags == nil {
		item.Tags = []string{}
	}
}
