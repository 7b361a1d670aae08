package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/sledilnik/internal/docstore"
	"github.com/erazemk/sledilnik/internal/model"
)

// failingActivityStore fails every insert into the activity collection.
type failingActivityStore struct {
	docstore.Store
}

var errActivityDown = errors.New("activity collection unavailable")

func (s failingActivityStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	if collection == model.ActivityCollection {
		return "", errActivityDown
	}
	return s.Store.Insert(ctx, collection, record)
}

func TestGetActivityUnknownItem(t *testing.T) {
	ds := newTestStore(t)

	activity, err := GetActivity(context.Background(), ds, "no-such-item")
	require.NoError(t, err)
	assert.NotNil(t, activity)
	assert.Empty(t, activity)
}

func TestGetActivityIsolatedPerItem(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()

	a, err := CreateItem(ctx, ds, model.NewItem{Title: "A"})
	require.NoError(t, err)
	b, err := CreateItem(ctx, ds, model.NewItem{Title: "B"})
	require.NoError(t, err)
	_, _, err = UpdateItem(ctx, ds, a.ID, patch(t, `{"title": "A2"}`))
	require.NoError(t, err)

	activityA, err := GetActivity(ctx, ds, a.ID)
	require.NoError(t, err)
	assert.Len(t, activityA, 2)

	activityB, err := GetActivity(ctx, ds, b.ID)
	require.NoError(t, err)
	assert.Len(t, activityB, 1)
	assert.False(t, activityB[0].CreatedAt.IsZero())
}

func TestLogActivityRejectsUnknownAction(t *testing.T) {
	ds := newTestStore(t)
	assert.Error(t, LogActivity(context.Background(), ds, docstore.NewID(), "archived", ""))
}

func TestActivityFailureLeavesItemWritten(t *testing.T) {
	base := newTestStore(t)
	ds := failingActivityStore{Store: base}
	ctx := context.Background()

	_, err := CreateItem(ctx, ds, model.NewItem{Title: "Orphan"})
	require.ErrorIs(t, err, errActivityDown)

	items, err := ListItems(ctx, base, "", "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	activity, err := GetActivity(ctx, base, items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, activity)
}
