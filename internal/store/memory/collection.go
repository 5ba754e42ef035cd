// Package memory is an in-process store.Collection backend used by tests and
// by the server's memory mode. Documents are kept in their bson form so
// filters match on the same field names the mongo backend uses.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/store"
)

type Collection[T any] struct {
	mu     sync.RWMutex
	docs   []bson.M
	unique [][]string
}

// NewCollection returns an empty collection. Each entry of unique is a set of
// fields that behaves like a unique compound index.
func NewCollection[T any](unique ...[]string) *Collection[T] {
	return &Collection[T]{unique: unique}
}

func (c *Collection[T]) Find(ctx context.Context, filter store.Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	match, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, d := range c.docs {
		if !matches(d, match) {
			continue
		}
		v, err := decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, filter store.Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	match, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if matches(d, match) {
			v, err := decode[T](d)
			if err != nil {
				return nil, err
			}
			return &v, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *Collection[T]) InsertOne(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d, err := normalize(doc)
	if err != nil {
		return err
	}
	if _, ok := d["_id"]; !ok {
		d["_id"] = primitive.NewObjectID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkUnique(d, -1); err != nil {
		return err
	}
	c.docs = append(c.docs, d)

	v, err := decode[T](d)
	if err != nil {
		return err
	}
	*doc = v
	return nil
}

func (c *Collection[T]) UpdateOne(ctx context.Context, filter, patch store.Filter, upsert bool) (store.UpdateResult, error) {
	var res store.UpdateResult
	if err := ctx.Err(); err != nil {
		return res, err
	}
	match, err := normalizeFilter(filter)
	if err != nil {
		return res, err
	}
	set, err := normalizeFilter(patch)
	if err != nil {
		return res, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, d := range c.docs {
		if !matches(d, match) {
			continue
		}
		res.MatchedCount = 1
		updated := make(bson.M, len(d)+len(set))
		for k, v := range d {
			updated[k] = v
		}
		for k, v := range set {
			updated[k] = v
		}
		if reflect.DeepEqual(updated, d) {
			return res, nil
		}
		if err := c.checkUnique(updated, i); err != nil {
			return res, err
		}
		c.docs[i] = updated
		res.ModifiedCount = 1
		return res, nil
	}

	if !upsert {
		return res, nil
	}
	created := make(bson.M, len(match)+len(set)+1)
	for k, v := range match {
		created[k] = v
	}
	for k, v := range set {
		created[k] = v
	}
	if _, ok := created["_id"]; !ok {
		created["_id"] = primitive.NewObjectID()
	}
	if err := c.checkUnique(created, -1); err != nil {
		return res, err
	}
	c.docs = append(c.docs, created)
	res.UpsertedCount = 1
	return res, nil
}

func (c *Collection[T]) DeleteOne(ctx context.Context, filter store.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	match, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, d := range c.docs {
		if matches(d, match) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Len reports the number of stored documents.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// checkUnique must be called with c.mu held. skip is the index of the
// document being replaced, or -1.
func (c *Collection[T]) checkUnique(d bson.M, skip int) error {
	for _, keys := range c.unique {
		key := make(bson.M, len(keys))
		complete := true
		for _, k := range keys {
			v, ok := d[k]
			if !ok {
				complete = false
				break
			}
			key[k] = v
		}
		if !complete {
			continue
		}
		for i, other := range c.docs {
			if i != skip && matches(other, key) {
				return fmt.Errorf("%w on %v", store.ErrDuplicate, keys)
			}
		}
	}
	id := d["_id"]
	for i, other := range c.docs {
		if i != skip && reflect.DeepEqual(other["_id"], id) {
			return fmt.Errorf("%w on _id", store.ErrDuplicate)
		}
	}
	return nil
}

func matches(d, filter bson.M) bool {
	for k, want := range filter {
		got, ok := d[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func normalizeFilter(f store.Filter) (bson.M, error) {
	if len(f) == 0 {
		return bson.M{}, nil
	}
	return normalize(bson.M(f))
}

// normalize round-trips v through bson so stored documents and filters share
// one representation.
func normalize(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

func decode[T any](d bson.M) (T, error) {
	var v T
	raw, err := bson.Marshal(d)
	if err != nil {
		return v, fmt.Errorf("marshal document: %w", err)
	}
	if err := bson.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}
