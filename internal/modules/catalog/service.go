package catalog

import (
	"context"
	"strings"

	"github.com/freshline/supply-backend/internal/apperr"
)

// Service defines catalog business logic for fruits, shops, and warehouses.
type Service interface {
	CreateFruit(ctx context.Context, name, sourceCountry string) (*Fruit, error)
	GetFruit(ctx context.Context, id int64) (*Fruit, error)
	ListFruits(ctx context.Context) ([]*Fruit, error)

	CreateShop(ctx context.Context, name, city, country string) (*Shop, error)
	GetShop(ctx context.Context, id int64) (*Shop, error)
	ListShops(ctx context.Context) ([]*Shop, error)

	CreateWarehouse(ctx context.Context, name, city, country string, isSource bool) (*Warehouse, error)
	GetWarehouse(ctx context.Context, id int64) (*Warehouse, error)
	ListWarehouses(ctx context.Context) ([]*Warehouse, error)
}

type service struct {
	fruits     FruitRepository
	shops      ShopRepository
	warehouses WarehouseRepository
}

// NewService creates a new catalog service.
func NewService(fruits FruitRepository, shops ShopRepository, warehouses WarehouseRepository) Service {
	return &service{fruits: fruits, shops: shops, warehouses: warehouses}
}

func (s *service) CreateFruit(ctx context.Context, name, sourceCountry string) (*Fruit, error) {
	name = strings.TrimSpace(name)
	sourceCountry = strings.TrimSpace(sourceCountry)
	if name == "" {
		return nil, apperr.Validation("fruit name is required")
	}
	if sourceCountry == "" {
		return nil, apperr.Validation("source country is required")
	}
	f := &Fruit{Name: name, SourceCountry: sourceCountry}
	if err := s.fruits.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetFruit(ctx context.Context, id int64) (*Fruit, error) {
	return s.fruits.GetByID(ctx, id)
}

func (s *service) ListFruits(ctx context.Context) ([]*Fruit, error) {
	return s.fruits.List(ctx)
}

func (s *service) CreateShop(ctx context.Context, name, city, country string) (*Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("shop name is required")
	}
	if strings.TrimSpace(country) == "" {
		return nil, apperr.Validation("country is required")
	}
	sh := &Shop{Name: name, City: city, Country: country}
	if err := s.shops.Create(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *service) GetShop(ctx context.Context, id int64) (*Shop, error) {
	return s.shops.GetByID(ctx, id)
}

func (s *service) ListShops(ctx context.Context) ([]*Shop, error) {
	return s.shops.List(ctx)
}

func (s *service) CreateWarehouse(ctx context.Context, name, city, country string, isSource bool) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("warehouse name is required")
	}
	if strings.TrimSpace(country) == "" {
		return nil, apperr.Validation("country is required")
	}
	w := &Warehouse{Name: name, City: city, Country: country, IsSource: isSource}
	if err := s.warehouses.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) GetWarehouse(ctx context.Context, id int64) (*Warehouse, error) {
	return s.warehouses.GetByID(ctx, id)
}

func (s *service) ListWarehouses(ctx context.Context) ([]*Warehouse, error) {
	return s.warehouses.List(ctx)
}
