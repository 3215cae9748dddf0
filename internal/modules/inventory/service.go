package inventory

import (
	"context"

	"github.com/freshline/supply-backend/internal/apperr"
)

// Service defines the stock ledger operations exposed over HTTP. The
// transfer workflows use the Store directly inside their own scopes.
type Service interface {
	Quantity(ctx context.Context, fruitID int64, loc Location) (int, error)
	// Receive books incoming stock at a location.
	Receive(ctx context.Context, fruitID int64, loc Location, qty int) (int, error)
	// Set overwrites the quantity at a location, manual correction use case.
	Set(ctx context.Context, fruitID int64, loc Location, qty int) error
	ListAt(ctx context.Context, loc Location) ([]*Record, error)
}

type service struct {
	store Store
}

// NewService creates a new inventory service.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Quantity(ctx context.Context, fruitID int64, loc Location) (int, error) {
	return s.store.Quantity(ctx, fruitID, loc)
}

func (s *service) Receive(ctx context.Context, fruitID int64, loc Location, qty int) (int, error) {
	if qty <= 0 {
		return 0, apperr.Validation("received quantity must be positive, got %d", qty)
	}
	if err := s.store.Adjust(ctx, fruitID, loc, qty); err != nil {
		return 0, err
	}
	return s.store.Quantity(ctx, fruitID, loc)
}

func (s *service) Set(ctx context.Context, fruitID int64, loc Location, qty int) error {
	if qty < 0 {
		return apperr.Validation("quantity must not be negative, got %d", qty)
	}
	return s.store.Set(ctx, fruitID, loc, qty)
}

func (s *service) ListAt(ctx context.Context, loc Location) ([]*Record, error) {
	return s.store.ListAt(ctx, loc)
}
