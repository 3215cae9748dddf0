package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/database"
)

// Repository defines reservation record storage. Bulk transitions are
// single conditional statements so concurrent scopes serialize at the
// database rather than in application code.
type Repository interface {
	WithTx(tx database.DBTX) Repository
	Insert(ctx context.Context, res *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListByShop(ctx context.Context, shopID int64) ([]*Reservation, error)

	// NeedsByCountry sums pending quantities per fruit for fruits whose
	// source country matches. Fruits with a non-positive sum are excluded.
	NeedsByCountry(ctx context.Context, country string) ([]*NeedLine, error)

	// UpdateStatusForCountry bulk-flips matching reservations of a fruit
	// in a country from one status to the next. It reports how many rows
	// moved and their summed quantity, so the caller debits exactly what
	// this statement flipped even when reservations are approved
	// concurrently.
	UpdateStatusForCountry(ctx context.Context, fruitID int64, country string, from, to Status) (moved int64, total int, err error)

	// UpdateStatus flips one reservation to the target status provided it
	// currently holds one of the expected statuses. Zero rows affected
	// yields ErrStateConflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from []Status, to Status) error
}
