package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
)

type mockFruitRepo struct {
	mu     sync.Mutex
	nextID int64
	fruits map[int64]*Fruit
}

func newMockFruitRepo() *mockFruitRepo {
	return &mockFruitRepo{fruits: make(map[int64]*Fruit)}
}

func (m *mockFruitRepo) WithTx(tx database.DBTX) FruitRepository { return m }

func (m *mockFruitRepo) Create(ctx context.Context, f *Fruit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	f.ID = m.nextID
	cp := *f
	m.fruits[f.ID] = &cp
	return nil
}

func (m *mockFruitRepo) GetByID(ctx context.Context, id int64) (*Fruit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fruits[id]
	if !ok {
		return nil, apperr.NotFound("fruit %d does not exist", id)
	}
	cp := *f
	return &cp, nil
}

func (m *mockFruitRepo) List(ctx context.Context) ([]*Fruit, error) { return nil, nil }

type mockShopRepo struct{}

func (mockShopRepo) WithTx(tx database.DBTX) ShopRepository { return mockShopRepo{} }
func (mockShopRepo) Create(ctx context.Context, s *Shop) error { return nil }
func (mockShopRepo) GetByID(ctx context.Context, id int64) (*Shop, error) {
	return nil, apperr.NotFound("shop %d does not exist", id)
}
func (mockShopRepo) List(ctx context.Context) ([]*Shop, error) { return nil, nil }

type mockWarehouseRepo struct{}

func (mockWarehouseRepo) WithTx(tx database.DBTX) WarehouseRepository { return mockWarehouseRepo{} }
func (mockWarehouseRepo) Create(ctx context.Context, w *Warehouse) error { return nil }
func (mockWarehouseRepo) GetByID(ctx context.Context, id int64) (*Warehouse, error) {
	return nil, apperr.NotFound("warehouse %d does not exist", id)
}
func (mockWarehouseRepo) List(ctx context.Context) ([]*Warehouse, error) { return nil, nil }
func (mockWarehouseRepo) CentralInCountry(ctx context.Context, country string) (*Warehouse, error) {
	return nil, apperr.NotFound("no central warehouse in %s", country)
}

func newTestService(fruits *mockFruitRepo) Service {
	return NewService(fruits, mockShopRepo{}, mockWarehouseRepo{})
}

func TestCreateFruit(t *testing.T) {
	repo := newMockFruitRepo()
	svc := newTestService(repo)

	f, err := svc.CreateFruit(context.Background(), "  banana  ", "EC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID == 0 {
		t.Error("expected an assigned id")
	}
	if f.Name != "banana" {
		t.Errorf("expected trimmed name, got %q", f.Name)
	}

	got, err := svc.GetFruit(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SourceCountry != "EC" {
		t.Errorf("expected EC, got %q", got.SourceCountry)
	}
}

func TestCreateFruit_RequiresNameAndCountry(t *testing.T) {
	svc := newTestService(newMockFruitRepo())

	if _, err := svc.CreateFruit(context.Background(), "   ", "EC"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank name: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateFruit(context.Background(), "banana", ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank country: expected ErrValidation, got %v", err)
	}
}

func TestCreateShop_RequiresCountry(t *testing.T) {
	svc := newTestService(newMockFruitRepo())

	if _, err := svc.CreateShop(context.Background(), "corner shop", "Paris", " "); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestGetFruit_Missing(t *testing.T) {
	svc := newTestService(newMockFruitRepo())

	if _, err := svc.GetFruit(context.Background(), 99); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
