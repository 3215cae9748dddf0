package delivery

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/database"
)

// Repository defines delivery record storage. Records are inserted by the
// reservation workflow's arrange-delivery step and read back here.
type Repository interface {
	WithTx(tx database.DBTX) Repository
	Insert(ctx context.Context, d *Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*Delivery, error)
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]*Delivery, error)
}
