// Package store defines the document collection contract the rest of the
// application persists through. Backends live in sub-packages.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Filter is an equality match on top-level document fields, keyed by the
// bson field name. It is also used as the $set patch in UpdateOne.
type Filter map[string]any

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
}

// Collection is a key-document collection of T.
//
// FindOne returns ErrNotFound on a miss. InsertOne returns an error wrapping
// ErrDuplicate when the document violates a unique index; check and insert
// happen as one atomic step on every backend.
type Collection[T any] interface {
	Find(ctx context.Context, filter Filter) ([]T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	InsertOne(ctx context.Context, doc *T) error
	UpdateOne(ctx context.Context, filter, patch Filter, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter Filter) (int64, error)
}
