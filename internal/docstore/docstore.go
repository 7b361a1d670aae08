// Package docstore provides collection-oriented document storage over SQLite
// or MongoDB. Records are Go structs whose identifier is tagged `json:"id"`
// and `bson:"_id,omitempty"`.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no document matches an id, including ids that
// are not well-formed.
var ErrNotFound = errors.New("document not found")

// Store is the document store used by the service layer.
type Store interface {
	// Insert stores record in collection and returns its new id.
	Insert(ctx context.Context, collection string, record any) (string, error)
	// Query decodes every document matching filter into out, a pointer to a slice,
	// in insertion order.
	Query(ctx context.Context, collection string, filter Filter, out any) error
	// FindByID decodes the document with the given id into out.
	FindByID(ctx context.Context, collection, id string, out any) error
	// UpdateByID replaces the given top-level fields of one document.
	UpdateByID(ctx context.Context, collection, id string, set map[string]any) error
	// DeleteByID removes one document.
	DeleteByID(ctx context.Context, collection, id string) error

	Collections(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Backend() string
	Close(ctx context.Context) error
}

// Op is a filter comparison.
type Op int

const (
	// OpEq matches values exactly.
	OpEq Op = iota
	// OpContains matches text fields containing the value, ignoring case.
	OpContains
)

// Condition is one field comparison. Conditions in a Filter are ANDed.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Filter selects documents. An empty filter matches everything.
type Filter []Condition

// Eq matches documents whose field equals value.
func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// Contains matches documents whose text field contains s, case-insensitively.
// s is a literal, not a pattern.
func Contains(field, s string) Condition {
	return Condition{Field: field, Op: OpContains, Value: s}
}

// NewID returns a fresh document id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether id is a well-formed document id.
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// validField rejects names that cannot be used as a document field. The
// identifier is not a field; it is addressed through the *ByID methods.
func validField(name string) error {
	if name == "id" || !fieldPattern.MatchString(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	return nil
}

// IsMongoURL reports whether url selects the MongoDB backend.
func IsMongoURL(url string) bool {
	return strings.HasPrefix(url, "mongodb://") || strings.HasPrefix(url, "mongodb+srv://")
}

// Open connects to the store named by url: a MongoDB connection string or a
// SQLite database path (optionally prefixed with "sqlite://"). name selects the
// MongoDB database and is ignored for SQLite.
func Open(ctx context.Context, url, name string) (Store, error) {
	if IsMongoURL(url) {
		return OpenMongo(ctx, url, name)
	}
	return OpenSQLite(strings.TrimPrefix(url, "sqlite://"))
}
