package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoDatabase is used when no database name is configured.
const DefaultMongoDatabase = "sledilnik"

// MongoStore keeps each collection as a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri, name string) (*MongoStore, error) {
	if name == "" {
		name = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(name)}, nil
}

// Insert stores record; the driver assigns an ObjectID when the id is empty.
func (s *MongoStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", fmt.Errorf("inserting into %s: %w", collection, err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return "", fmt.Errorf("inserting into %s: unexpected id type %T", collection, res.InsertedID)
	}
}

// Query returns matching documents in natural order.
func (s *MongoStore) Query(ctx context.Context, collection string, filter Filter, out any) error {
	query, err := mongoFilter(filter)
	if err != nil {
		return err
	}

	opts := options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}})
	cur, err := s.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("querying %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decoding %s documents: %w", collection, err)
	}
	return nil
}

// FindByID decodes one document into out.
func (s *MongoStore) FindByID(ctx context.Context, collection, id string, out any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("finding %s %s: %w", collection, id, err)
	}
	return nil
}

// UpdateByID applies set with $set.
func (s *MongoStore) UpdateByID(ctx context.Context, collection, id string, set map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	for field := range set {
		if err := validField(field); err != nil {
			return err
		}
	}

	res, err := s.db.Collection(collection).UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes one document.
func (s *MongoStore) DeleteByID(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return names, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Backend() string {
	return "mongodb"
}

// Name returns the database name.
func (s *MongoStore) Name() string {
	return s.db.Name()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func mongoFilter(filter Filter) (bson.D, error) {
	query := bson.D{}
	for _, c := range filter {
		if err := validField(c.Field); err != nil {
			return nil, err
		}
		switch c.Op {
		case OpEq:
			query = append(query, bson.E{Key: c.Field, Value: c.Value})
		case OpContains:
			s, ok := c.Value.(string)
			if !ok {
				return nil, fmt.Errorf("contains filter on %s needs a string, got %T", c.Field, c.Value)
			}
			query = append(query, bson.E{Key: c.Field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}})
		default:
			return nil, fmt.Errorf("unsupported filter op %d", c.Op)
		}
	}
	return query, nil
}
