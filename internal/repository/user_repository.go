package repository

import (
	"context"
	"fmt"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type UserRepository struct {
	coll store.Collection[models.User]
}

func NewUserRepository(coll store.Collection[models.User]) *UserRepository {
	return &UserRepository{coll: coll}
}

// FindByEmail returns store.ErrNotFound for unknown users.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.coll.FindOne(ctx, store.Filter{"email": email})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users, err := r.coll.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Upsert creates the user on first sight and otherwise updates the profile
// fields. It never touches the role.
func (r *UserRepository) Upsert(ctx context.Context, email, name string) (store.UpdateResult, error) {
	patch := store.Filter{"email": email}
	if name != "" {
		patch["name"] = name
	}
	res, err := r.coll.UpdateOne(ctx, store.Filter{"email": email}, patch, true)
	if err != nil {
		return res, fmt.Errorf("upsert user: %w", err)
	}
	return res, nil
}

// MakeAdmin promotes an existing user. It returns store.ErrNotFound rather
// than creating a record for an unknown email.
func (r *UserRepository) MakeAdmin(ctx context.Context, email string) (store.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, store.Filter{"email": email}, store.Filter{"role": models.RoleAdmin}, false)
	if err != nil {
		return res, fmt.Errorf("promote user: %w", err)
	}
	if res.MatchedCount == 0 {
		return res, store.ErrNotFound
	}
	return res, nil
}
