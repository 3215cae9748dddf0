package inventory

import (
	"context"

	"github.com/freshline/supply-backend/internal/database"
)

// Store is the keyed quantity ledger. Mutations are single conditional
// statements, never read-then-write, so concurrent callers serialize at
// the database row and stock can never go negative.
type Store interface {
	// WithTx rebinds the store to a transaction scope.
	WithTx(tx database.DBTX) Store

	// Quantity returns the stock of a fruit at a location. A missing row
	// is quantity zero, never an error.
	Quantity(ctx context.Context, fruitID int64, loc Location) (int, error)

	// Adjust adds delta (which may be negative) to the stock of a fruit
	// at a location. A positive delta creates the row when absent. A
	// negative delta that would drop the quantity below zero affects no
	// rows and returns ErrInsufficientStock.
	Adjust(ctx context.Context, fruitID int64, loc Location, delta int) error

	// Set writes an absolute non-negative quantity, creating the row when
	// absent. Manual correction use case.
	Set(ctx context.Context, fruitID int64, loc Location, qty int) error

	// ListAt returns every inventory record held at a location.
	ListAt(ctx context.Context, loc Location) ([]*Record, error)
}
