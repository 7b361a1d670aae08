package docstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoFilter(t *testing.T) {
	query, err := mongoFilter(Filter{Eq("status", "Done"), Contains("title", "a.b")})
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "status", Value: "Done"},
		{Key: "title", Value: primitive.Regex{Pattern: `a\.b`, Options: "i"}},
	}, query)

	_, err = mongoFilter(Filter{{Field: "title", Op: OpContains, Value: 3}})
	assert.Error(t, err)

	_, err = mongoFilter(Filter{Eq("$where", "1")})
	assert.Error(t, err)
}

// TestMongoStore runs against a live server named by SLEDILNIK_TEST_MONGO_URL.
func TestMongoStore(t *testing.T) {
	url := os.Getenv("SLEDILNIK_TEST_MONGO_URL")
	if url == "" {
		t.Skip("SLEDILNIK_TEST_MONGO_URL not set")
	}

	runStoreTests(t, func(t *testing.T) Store {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		name := "sledilnik_test_" + NewID()
		s, err := OpenMongo(ctx, url, name)
		require.NoError(t, err)

		t.Cleanup(func() {
			ctx := context.Background()
			s.db.Drop(ctx)
			s.Close(ctx)
		})
		return s
	})
}
