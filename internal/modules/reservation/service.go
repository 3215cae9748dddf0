package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
	"github.com/freshline/supply-backend/internal/modules/catalog"
	"github.com/freshline/supply-backend/internal/modules/delivery"
	"github.com/freshline/supply-backend/internal/modules/inventory"
)

// Service defines the ordering workflow: a shop reserves a fruit, the
// aggregated demand of a country is approved, shipped from a source
// warehouse to the country's central warehouse, and finally checked out
// to the shop.
type Service interface {
	// Reserve records a demand signal. No stock is checked or moved.
	Reserve(ctx context.Context, fruitID, shopID int64, qty int) (*Reservation, error)
	// NeedsByCountry sums pending demand per fruit for fruits sourced
	// from the given country.
	NeedsByCountry(ctx context.Context, country string) ([]*NeedLine, error)
	// ApproveNeeds bulk-approves the pending reservations of one fruit
	// across the shops of a country and reports how many moved.
	ApproveNeeds(ctx context.Context, fruitID int64, country string) (int64, error)
	// ArrangeDelivery ships the approved demand of a country from the
	// source warehouse to the country's central warehouse.
	ArrangeDelivery(ctx context.Context, fruitID, fromWarehouseID int64, targetCountry string) (*delivery.Delivery, error)
	// Checkout hands a shipped (or approved) reservation's quantity from
	// the central warehouse to the reserving shop.
	Checkout(ctx context.Context, id uuid.UUID, centralWarehouseID int64) (*Reservation, error)
	Get(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListByShop(ctx context.Context, shopID int64) ([]*Reservation, error)
}

type service struct {
	repo       Repository
	stock      inventory.Store
	deliveries delivery.Repository
	fruits     catalog.FruitRepository
	shops      catalog.ShopRepository
	warehouses catalog.WarehouseRepository
	scope      database.Scope
}

// NewService creates a new reservation service.
func NewService(
	repo Repository,
	stock inventory.Store,
	deliveries delivery.Repository,
	fruits catalog.FruitRepository,
	shops catalog.ShopRepository,
	warehouses catalog.WarehouseRepository,
	scope database.Scope,
) Service {
	return &service{
		repo:       repo,
		stock:      stock,
		deliveries: deliveries,
		fruits:     fruits,
		shops:      shops,
		warehouses: warehouses,
		scope:      scope,
	}
}

func (s *service) Reserve(ctx context.Context, fruitID, shopID int64, qty int) (*Reservation, error) {
	if qty <= 0 {
		return nil, apperr.Validation("reserved quantity must be positive, got %d", qty)
	}
	if _, err := s.fruits.GetByID(ctx, fruitID); err != nil {
		return nil, err
	}
	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		return nil, err
	}

	res := &Reservation{
		ID:         uuid.New(),
		FruitID:    fruitID,
		ShopID:     shopID,
		Quantity:   qty,
		ReservedOn: time.Now().UTC(),
		Status:     StatusPending,
	}
	if err := s.repo.Insert(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) NeedsByCountry(ctx context.Context, country string) ([]*NeedLine, error) {
	if strings.TrimSpace(country) == "" {
		return nil, apperr.Validation("country is required")
	}
	return s.repo.NeedsByCountry(ctx, country)
}

func (s *service) ApproveNeeds(ctx context.Context, fruitID int64, country string) (int64, error) {
	if strings.TrimSpace(country) == "" {
		return 0, apperr.Validation("country is required")
	}
	var moved int64
	err := s.scope.Execute(ctx, func(tx database.DBTX) error {
		rows, _, err := s.repo.WithTx(tx).UpdateStatusForCountry(ctx, fruitID, country, StatusPending, StatusApproved)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.NotFound("no pending reservations for fruit %d in %s", fruitID, country)
		}
		moved = rows
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

func (s *service) ArrangeDelivery(ctx context.Context, fruitID, fromWarehouseID int64, targetCountry string) (*delivery.Delivery, error) {
	if strings.TrimSpace(targetCountry) == "" {
		return nil, apperr.Validation("target country is required")
	}
	if _, err := s.fruits.GetByID(ctx, fruitID); err != nil {
		return nil, err
	}
	if _, err := s.warehouses.GetByID(ctx, fromWarehouseID); err != nil {
		return nil, err
	}

	var out *delivery.Delivery
	err := s.scope.Execute(ctx, func(tx database.DBTX) error {
		repo := s.repo.WithTx(tx)
		stock := s.stock.WithTx(tx)

		// The bulk flip runs first and its RETURNING sum is what the
		// delivery covers. A concurrently approved reservation either made
		// it into this statement (and is debited below) or stays APPROVED
		// for the next delivery; the shipped set can never outgrow the
		// debit.
		moved, total, err := repo.UpdateStatusForCountry(ctx, fruitID, targetCountry, StatusApproved, StatusShipped)
		if err != nil {
			return err
		}
		if moved == 0 {
			return apperr.NotFound("no approved reservations for fruit %d in %s", fruitID, targetCountry)
		}

		central, err := s.warehouses.WithTx(tx).CentralInCountry(ctx, targetCountry)
		if err != nil {
			return err
		}

		source := inventory.AtWarehouse(fromWarehouseID)
		if err := stock.Adjust(ctx, fruitID, source, -total); err != nil {
			if errors.Is(err, apperr.ErrInsufficientStock) {
				available, qerr := stock.Quantity(ctx, fruitID, source)
				if qerr == nil {
					return apperr.InsufficientStock("source warehouse holds %d of fruit %d, need %d", available, fruitID, total)
				}
			}
			return err
		}

		d := &delivery.Delivery{
			ID:              uuid.New(),
			FruitID:         fruitID,
			FromWarehouseID: fromWarehouseID,
			ToWarehouseID:   central.ID,
			Quantity:        total,
			ScheduledOn:     time.Now().UTC(),
			Status:          delivery.StatusScheduled,
		}
		if err := s.deliveries.WithTx(tx).Insert(ctx, d); err != nil {
			return err
		}

		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Checkout(ctx context.Context, id uuid.UUID, centralWarehouseID int64) (*Reservation, error) {
	var out *Reservation
	err := s.scope.Execute(ctx, func(tx database.DBTX) error {
		repo := s.repo.WithTx(tx)
		stock := s.stock.WithTx(tx)

		res, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res.Status != StatusApproved && res.Status != StatusShipped {
			return apperr.StateConflict("reservation %s is %s, checkout needs APPROVED or SHIPPED", id, res.Status)
		}

		warehouse := inventory.AtWarehouse(centralWarehouseID)
		if err := stock.Adjust(ctx, res.FruitID, warehouse, -res.Quantity); err != nil {
			if errors.Is(err, apperr.ErrInsufficientStock) {
				available, qerr := stock.Quantity(ctx, res.FruitID, warehouse)
				if qerr == nil {
					return apperr.InsufficientStock("central warehouse holds %d of fruit %d, need %d", available, res.FruitID, res.Quantity)
				}
			}
			return err
		}
		if err := stock.Adjust(ctx, res.FruitID, inventory.AtShop(res.ShopID), res.Quantity); err != nil {
			return err
		}
		if err := repo.UpdateStatus(ctx, id, []Status{StatusApproved, StatusShipped}, StatusFulfilled); err != nil {
			return err
		}
		res.Status = StatusFulfilled
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByShop(ctx context.Context, shopID int64) ([]*Reservation, error) {
	return s.repo.ListByShop(ctx, shopID)
}
