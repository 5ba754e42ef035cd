// Package mongostore backs store.Collection with MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/doctors-portal/internal/store"
)

type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

func (c *Collection[T]) Find(ctx context.Context, filter store.Filter) ([]T, error) {
	cursor, err := c.coll.Find(ctx, toBSON(filter))
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, filter store.Filter) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, toBSON(filter)).Decode(&doc); err != nil {
		return nil, translate(c.coll.Name(), "find one", err)
	}
	return &doc, nil
}

// InsertOne relies on the server's unique indexes for atomic
// check-and-insert; see EnsureIndexes.
func (c *Collection[T]) InsertOne(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return translate(c.coll.Name(), "insert", err)
	}
	return nil
}

func (c *Collection[T]) UpdateOne(ctx context.Context, filter, patch store.Filter, upsert bool) (store.UpdateResult, error) {
	res, err := c.coll.UpdateOne(ctx,
		toBSON(filter),
		bson.M{"$set": toBSON(patch)},
		options.Update().SetUpsert(upsert),
	)
	if err != nil {
		return store.UpdateResult{}, translate(c.coll.Name(), "update", err)
	}
	return store.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}, nil
}

func (c *Collection[T]) DeleteOne(ctx context.Context, filter store.Filter) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, toBSON(filter))
	if err != nil {
		return 0, translate(c.coll.Name(), "delete", err)
	}
	return res.DeletedCount, nil
}

func toBSON(f store.Filter) bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M(f)
}

// translate maps driver errors onto the store sentinels.
func translate(coll, op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w: %v", op, coll, store.ErrDuplicate, err)
	default:
		return fmt.Errorf("%s %s: %w", op, coll, err)
	}
}
