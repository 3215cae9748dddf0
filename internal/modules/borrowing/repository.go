package borrowing

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/database"
)

// Repository defines borrowing record storage.
type Repository interface {
	WithTx(tx database.DBTX) Repository
	Insert(ctx context.Context, b *Borrowing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Borrowing, error)
	// UpdateStatus flips the status only when the record still holds the
	// expected current status. Zero rows affected means a concurrent
	// caller got there first and yields ErrStateConflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	// ListByShop returns borrowings where the shop is lender or borrower.
	ListByShop(ctx context.Context, shopID int64) ([]*Borrowing, error)
}
