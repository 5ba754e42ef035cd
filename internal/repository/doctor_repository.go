package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type DoctorRepository struct {
	coll store.Collection[models.Doctor]
}

func NewDoctorRepository(coll store.Collection[models.Doctor]) *DoctorRepository {
	return &DoctorRepository{coll: coll}
}

func (r *DoctorRepository) List(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := r.coll.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) Insert(ctx context.Context, d *models.Doctor) error {
	d.ID = primitive.NewObjectID()
	if err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

// DeleteByEmail returns store.ErrNotFound when nothing was removed.
func (r *DoctorRepository) DeleteByEmail(ctx context.Context, email string) error {
	n, err := r.coll.DeleteOne(ctx, store.Filter{"email": email})
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
