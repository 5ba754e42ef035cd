// Package availability derives the open slots of every service for a date.
package availability

import (
	"context"
	"fmt"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

type ServiceLister interface {
	List(ctx context.Context) ([]models.Service, error)
}

type BookingLister interface {
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
}

// Engine reads the catalog and the day's bookings on every call. Nothing is
// cached, so the store stays the only source of truth.
type Engine struct {
	services ServiceLister
	bookings BookingLister
}

func NewEngine(services ServiceLister, bookings BookingLister) *Engine {
	return &Engine{services: services, bookings: bookings}
}

func (e *Engine) ForDate(ctx context.Context, date string) ([]models.Service, error) {
	services, err := e.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	bookings, err := e.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return Compute(date, services, bookings), nil
}

// Compute returns a copy of services where each slot list has the slots
// booked on date removed, keeping template order. A fully booked service is
// kept with an empty, non-nil slot list. Bookings for other dates are
// ignored. The inputs are not modified.
func Compute(date string, services []models.Service, bookings []models.Booking) []models.Service {
	booked := make(map[string]map[string]struct{})
	for _, b := range bookings {
		if b.Date != date {
			continue
		}
		slots, ok := booked[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			booked[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		taken := booked[s.Name]
		open := make([]string, 0, len(s.Slots))
		for _, slot := range s.Slots {
			if _, ok := taken[slot]; !ok {
				open = append(open, slot)
			}
		}
		s.Slots = open
		out = append(out, s)
	}
	return out
}
