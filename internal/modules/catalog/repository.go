package catalog

import (
	"context"

	"github.com/freshline/supply-backend/internal/database"
)

// FruitRepository defines fruit reference data storage.
type FruitRepository interface {
	WithTx(tx database.DBTX) FruitRepository
	Create(ctx context.Context, f *Fruit) error
	GetByID(ctx context.Context, id int64) (*Fruit, error)
	List(ctx context.Context) ([]*Fruit, error)
}

// ShopRepository defines shop reference data storage.
type ShopRepository interface {
	WithTx(tx database.DBTX) ShopRepository
	Create(ctx context.Context, s *Shop) error
	GetByID(ctx context.Context, id int64) (*Shop, error)
	List(ctx context.Context) ([]*Shop, error)
}

// WarehouseRepository defines warehouse reference data storage.
type WarehouseRepository interface {
	WithTx(tx database.DBTX) WarehouseRepository
	Create(ctx context.Context, w *Warehouse) error
	GetByID(ctx context.Context, id int64) (*Warehouse, error)
	List(ctx context.Context) ([]*Warehouse, error)
	// CentralInCountry returns the non-source warehouse serving a country.
	CentralInCountry(ctx context.Context, country string) (*Warehouse, error)
}
