package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type ServiceRepository struct {
	coll store.Collection[models.Service]
}

func NewServiceRepository(coll store.Collection[models.Service]) *ServiceRepository {
	return &ServiceRepository{coll: coll}
}

func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	services, err := r.coll.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// Insert is used to seed the catalog; the API itself never writes services.
func (r *ServiceRepository) Insert(ctx context.Context, s *models.Service) error {
	s.ID = primitive.NewObjectID()
	if err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert service %q: %w", s.Name, err)
	}
	return nil
}
