// Package booking admits new bookings while keeping at most one booking per
// patient, treatment and date.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

var ErrInvalidBooking = errors.New("invalid booking")

// Store must enforce uniqueness of (treatment, date, patient) on Insert and
// report a violation as store.ErrDuplicate.
type Store interface {
	Insert(ctx context.Context, b *models.Booking) error
	FindByKey(ctx context.Context, treatment, date, patient string) (*models.Booking, error)
}

// Admission is the outcome of Admit. When Accepted is false, Booking is the
// record that already holds the key.
type Admission struct {
	Accepted bool
	Booking  models.Booking
}

type Admitter struct {
	store  Store
	logger *zap.Logger
}

func NewAdmitter(store Store, logger *zap.Logger) *Admitter {
	return &Admitter{store: store, logger: logger}
}

// insertAttempts bounds the retry for the case where the conflicting booking
// disappears between the failed insert and the read-back.
const insertAttempts = 2

// Admit inserts candidate unless another booking shares its treatment, date
// and patient. The store's unique index makes check and insert one step; on
// conflict nothing is written and the existing booking is returned.
func (a *Admitter) Admit(ctx context.Context, candidate models.Booking) (Admission, error) {
	if err := validate(candidate); err != nil {
		return Admission{}, err
	}

	for attempt := 1; ; attempt++ {
		b := candidate
		err := a.store.Insert(ctx, &b)
		if err == nil {
			a.logger.Info("booking accepted",
				zap.String("booking_id", b.ID.Hex()),
				zap.String("treatment", b.Treatment),
				zap.String("date", b.Date),
				zap.String("slot", b.Slot),
			)
			return Admission{Accepted: true, Booking: b}, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return Admission{}, err
		}

		existing, err := a.store.FindByKey(ctx, candidate.Treatment, candidate.Date, candidate.Patient)
		if err == nil {
			a.logger.Info("booking rejected, key already held",
				zap.String("booking_id", existing.ID.Hex()),
				zap.String("treatment", existing.Treatment),
				zap.String("date", existing.Date),
			)
			return Admission{Accepted: false, Booking: *existing}, nil
		}
		if !errors.Is(err, store.ErrNotFound) || attempt >= insertAttempts {
			return Admission{}, fmt.Errorf("resolve booking conflict: %w", err)
		}
	}
}

func validate(b models.Booking) error {
	var missing []string
	fields := []struct{ name, value string }{
		{"treatment", b.Treatment},
		{"date", b.Date},
		{"slot", b.Slot},
		{"patient", b.Patient},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidBooking, strings.Join(missing, ", "))
	}
	return nil
}
