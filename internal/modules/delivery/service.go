package delivery

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes read access to scheduled deliveries. Creation happens
// inside the reservation workflow's arrange-delivery scope.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*Delivery, error)
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]*Delivery, error)
}

type service struct {
	repo Repository
}

// NewService creates a new delivery service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByWarehouse(ctx context.Context, warehouseID int64) ([]*Delivery, error) {
	return s.repo.ListByWarehouse(ctx, warehouseID)
}
