package borrowing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
	"github.com/freshline/supply-backend/internal/modules/catalog"
	"github.com/freshline/supply-backend/internal/modules/inventory"
)

// Service defines the inter-shop lending workflow.
type Service interface {
	// Request records a borrowing for later approval by the lender shop.
	// No stock moves.
	Request(ctx context.Context, fruitID, lenderShopID, borrowerShopID int64, qty int) (*Borrowing, error)
	// Direct transfers stock immediately; the record lands APPROVED.
	Direct(ctx context.Context, fruitID, lenderShopID, borrowerShopID int64, qty int) (*Borrowing, error)
	// Approve moves the stock and marks the borrowing APPROVED. Only the
	// lender shop may approve.
	Approve(ctx context.Context, id uuid.UUID, approvingShopID int64) (*Borrowing, error)
	// Reject marks the borrowing REJECTED. No stock moves. Only the
	// lender shop may reject.
	Reject(ctx context.Context, id uuid.UUID, approvingShopID int64) (*Borrowing, error)
	ListByShop(ctx context.Context, shopID int64) ([]*Borrowing, error)
}

type service struct {
	repo   Repository
	stock  inventory.Store
	fruits catalog.FruitRepository
	shops  catalog.ShopRepository
	scope  database.Scope
}

// NewService creates a new borrowing service.
func NewService(repo Repository, stock inventory.Store, fruits catalog.FruitRepository, shops catalog.ShopRepository, scope database.Scope) Service {
	return &service{repo: repo, stock: stock, fruits: fruits, shops: shops, scope: scope}
}

func (s *service) Request(ctx context.Context, fruitID, lenderShopID, borrowerShopID int64, qty int) (*Borrowing, error) {
	b, err := s.newBorrowing(ctx, fruitID, lenderShopID, borrowerShopID, qty)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Direct(ctx context.Context, fruitID, lenderShopID, borrowerShopID int64, qty int) (*Borrowing, error) {
	b, err := s.newBorrowing(ctx, fruitID, lenderShopID, borrowerShopID, qty)
	if err != nil {
		return nil, err
	}
	err = s.scope.Execute(ctx, func(tx database.DBTX) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Insert(ctx, b); err != nil {
			return err
		}
		if err := s.transfer(ctx, tx, b); err != nil {
			return err
		}
		if err := repo.UpdateStatus(ctx, b.ID, StatusPending, StatusApproved); err != nil {
			return err
		}
		b.Status = StatusApproved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID, approvingShopID int64) (*Borrowing, error) {
	var out *Borrowing
	err := s.scope.Execute(ctx, func(tx database.DBTX) error {
		repo := s.repo.WithTx(tx)
		b, err := s.loadPending(ctx, repo, id, approvingShopID)
		if err != nil {
			return err
		}
		if err := s.transfer(ctx, tx, b); err != nil {
			return err
		}
		if err := repo.UpdateStatus(ctx, id, StatusPending, StatusApproved); err != nil {
			return err
		}
		b.Status = StatusApproved
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, approvingShopID int64) (*Borrowing, error) {
	var out *Borrowing
	err := s.scope.Execute(ctx, func(tx database.DBTX) error {
		repo := s.repo.WithTx(tx)
		b, err := s.loadPending(ctx, repo, id, approvingShopID)
		if err != nil {
			return err
		}
		if err := repo.UpdateStatus(ctx, id, StatusPending, StatusRejected); err != nil {
			return err
		}
		b.Status = StatusRejected
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ListByShop(ctx context.Context, shopID int64) ([]*Borrowing, error) {
	return s.repo.ListByShop(ctx, shopID)
}

// newBorrowing runs the shared creation guards and builds a PENDING record.
func (s *service) newBorrowing(ctx context.Context, fruitID, lenderShopID, borrowerShopID int64, qty int) (*Borrowing, error) {
	if qty <= 0 {
		return nil, apperr.Validation("borrowed quantity must be positive, got %d", qty)
	}
	if lenderShopID == borrowerShopID {
		return nil, apperr.Validation("a shop cannot borrow from itself")
	}
	if _, err := s.fruits.GetByID(ctx, fruitID); err != nil {
		return nil, err
	}
	if _, err := s.shops.GetByID(ctx, lenderShopID); err != nil {
		return nil, err
	}
	if _, err := s.shops.GetByID(ctx, borrowerShopID); err != nil {
		return nil, err
	}
	return &Borrowing{
		ID:             uuid.New(),
		FruitID:        fruitID,
		LenderShopID:   lenderShopID,
		BorrowerShopID: borrowerShopID,
		Quantity:       qty,
		RequestedOn:    time.Now().UTC(),
		Status:         StatusPending,
	}, nil
}

// loadPending loads a borrowing and checks the approval guards: the record
// must exist, the caller must be the lender, and the status must still be
// PENDING.
func (s *service) loadPending(ctx context.Context, repo Repository, id uuid.UUID, approvingShopID int64) (*Borrowing, error) {
	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.LenderShopID != approvingShopID {
		return nil, apperr.Forbidden("shop %d is not the lender of borrowing %s", approvingShopID, id)
	}
	if b.Status != StatusPending {
		return nil, apperr.StateConflict("borrowing %s is already %s", id, b.Status)
	}
	return b, nil
}

// transfer moves the borrowed quantity from lender to borrower. Both
// adjustments run in the caller's scope so a failed credit rolls back the
// debit.
func (s *service) transfer(ctx context.Context, tx database.DBTX, b *Borrowing) error {
	stock := s.stock.WithTx(tx)
	lender := inventory.AtShop(b.LenderShopID)

	if err := stock.Adjust(ctx, b.FruitID, lender, -b.Quantity); err != nil {
		if errors.Is(err, apperr.ErrInsufficientStock) {
			available, qerr := stock.Quantity(ctx, b.FruitID, lender)
			if qerr == nil {
				return apperr.InsufficientStock("lending shop stock changed, available: %d", available)
			}
		}
		return err
	}
	return stock.Adjust(ctx, b.FruitID, inventory.AtShop(b.BorrowerShopID), b.Quantity)
}
