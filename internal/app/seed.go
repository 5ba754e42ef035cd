package app

import (
	"context"
	"fmt"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/repository"
)

var slotTemplate = []string{
	"08.00 AM - 08.30 AM",
	"08.30 AM - 09.00 AM",
	"09.00 AM - 09.30 AM",
	"09.30 AM - 10.00 AM",
	"10.00 AM - 10.30 AM",
	"10.30 AM - 11.00 AM",
	"11.00 AM - 11.30 AM",
	"11.30 AM - 12.00 PM",
	"04.00 PM - 04.30 PM",
	"04.30 PM - 05.00 PM",
	"05.00 PM - 05.30 PM",
	"05.30 PM - 06.00 PM",
}

// DefaultServices is the treatment catalogue loaded into an empty memory
// store.
var DefaultServices = []string{
	"Teeth Orthodontics",
	"Cosmetic Dentistry",
	"Teeth Cleaning",
	"Cavity Protection",
	"Pediatric Dental",
	"Oral Surgery",
}

func SeedServices(ctx context.Context, repo *repository.ServiceRepository) error {
	for _, name := range DefaultServices {
		s := &models.Service{Name: name, Slots: append([]string(nil), slotTemplate...)}
		if err := repo.Insert(ctx, s); err != nil {
			return fmt.Errorf("seed service %q: %w", name, err)
		}
	}
	return nil
}
