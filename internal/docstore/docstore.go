package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no document exists for a given id.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned for identifiers that cannot possibly match
	// a stored document. The store is never contacted in that case.
	ErrInvalidID = errors.New("invalid document id")

	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("document store unavailable")
)

// Document is a schema-less document body. No field set is validated or
// guaranteed; callers read and write whatever keys they need.
type Document map[string]interface{}

// InsertResult reports the outcome of an insert.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult reports how many documents an update matched and changed.
// A missing id yields zero counts, not an error.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Store is the contract every document store backend must satisfy.
// Collections are addressed by name per call; each call is a single
// atomic store operation with no state shared between calls.
type Store interface {
	List(ctx context.Context, collection string, window PageWindow) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Insert(ctx context.Context, collection string, doc Document) (InsertResult, error)
	Update(ctx context.Context, collection, id string, fields Document) (UpdateResult, error)
	Delete(ctx context.Context, collection, id string) (DeleteResult, error)
}
