package docstore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/sledilnik/internal/db"
)

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewSQLite(db.NewTestDB(t))
	})
}

func TestSQLiteBodyHasNoID(t *testing.T) {
	database := db.NewTestDB(t)
	s := NewSQLite(database)
	ctx := context.Background()

	id, err := s.Insert(ctx, "notes", note{ID: "ignored", Title: "a"})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", id)

	var body string
	require.NoError(t, database.QueryRow(`SELECT body FROM documents WHERE id = ?`, id).Scan(&body))

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &fields))
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "_id")
	assert.Equal(t, "a", fields["title"])
}

func TestSQLiteQueryEmptyIsNonNil(t *testing.T) {
	s := NewSQLite(db.NewTestDB(t))

	var out []note
	require.NoError(t, s.Query(context.Background(), "notes", nil, &out))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSQLiteContainsFoldsUnicode(t *testing.T) {
	s := NewSQLite(db.NewTestDB(t))
	ctx := context.Background()

	_, err := s.Insert(ctx, "notes", note{Title: "ŽGANCI in Čaj", Kind: "food"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "notes", note{Title: "Kava", Kind: "food"})
	require.NoError(t, err)

	for _, q := range []string{"žganci", "ČAJ", "čaj", "žGaNcI iN"} {
		var out []note
		require.NoError(t, s.Query(ctx, "notes", Filter{Contains("title", q)}, &out), q)
		require.Len(t, out, 1, q)
		assert.Equal(t, "ŽGANCI in Čaj", out[0].Title)
	}

	var food []note
	require.NoError(t, s.Query(ctx, "notes", Filter{Eq("kind", "food")}, &food))
	assert.Len(t, food, 2)
}

func TestOpenSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.sqlite3")
	ctx := context.Background()

	s, err := Open(ctx, "sqlite://"+path, "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", s.Backend())
	require.NoError(t, s.Ping(ctx))

	id, err := s.Insert(ctx, "notes", note{Title: "persisted"})
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))

	s, err = Open(ctx, path, "")
	require.NoError(t, err)
	defer s.Close(ctx)

	var got note
	require.NoError(t, s.FindByID(ctx, "notes", id, &got))
	assert.Equal(t, "persisted", got.Title)
}

func TestSQLiteClosedStoreFails(t *testing.T) {
	database := db.NewTestDB(t)
	s := NewSQLite(database)
	ctx := context.Background()
	require.NoError(t, s.Close(ctx))

	_, err := s.Insert(ctx, "notes", note{Title: "x"})
	assert.Error(t, err)
}
