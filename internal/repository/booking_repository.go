package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type BookingRepository struct {
	coll store.Collection[models.Booking]
}

func NewBookingRepository(coll store.Collection[models.Booking]) *BookingRepository {
	return &BookingRepository{coll: coll}
}

// Insert stores b under a fresh id. A booking that repeats an existing
// (treatment, date, patient) fails with store.ErrDuplicate.
func (r *BookingRepository) Insert(ctx context.Context, b *models.Booking) error {
	b.ID = primitive.NewObjectID()
	if err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// FindByKey returns store.ErrNotFound when no booking holds the key.
func (r *BookingRepository) FindByKey(ctx context.Context, treatment, date, patient string) (*models.Booking, error) {
	b, err := r.coll.FindOne(ctx, store.Filter{
		"treatment": treatment,
		"date":      date,
		"patient":   patient,
	})
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	bookings, err := r.coll.Find(ctx, store.Filter{"date": date})
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", date, err)
	}
	return bookings, nil
}

func (r *BookingRepository) ListByPatient(ctx context.Context, patient string) ([]models.Booking, error) {
	bookings, err := r.coll.Find(ctx, store.Filter{"patient": patient})
	if err != nil {
		return nil, fmt.Errorf("list bookings of patient: %w", err)
	}
	return bookings, nil
}
