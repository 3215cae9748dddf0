package borrowing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/database"
	"github.com/freshline/supply-backend/internal/modules/catalog"
	"github.com/freshline/supply-backend/internal/modules/inventory"
)

// Mock borrowing repository

type mockRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Borrowing
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Borrowing)}
}

func (m *mockRepo) WithTx(tx database.DBTX) Repository { return m }

func (m *mockRepo) Insert(ctx context.Context, b *Borrowing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.records[b.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Borrowing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.records[id]
	if !ok {
		return nil, apperr.NotFound("borrowing %s does not exist", id)
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.records[id]
	if !ok || b.Status != from {
		return apperr.StateConflict("borrowing %s is no longer %s", id, from)
	}
	b.Status = to
	return nil
}

func (m *mockRepo) ListByShop(ctx context.Context, shopID int64) ([]*Borrowing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Borrowing
	for _, b := range m.records {
		if b.LenderShopID == shopID || b.BorrowerShopID == shopID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Mock inventory store

type stockKey struct {
	fruitID int64
	loc     inventory.Location
}

type mockStock struct {
	mu  sync.Mutex
	qty map[stockKey]int
}

func newMockStock() *mockStock {
	return &mockStock{qty: make(map[stockKey]int)}
}

func (m *mockStock) WithTx(tx database.DBTX) inventory.Store { return m }

func (m *mockStock) Quantity(ctx context.Context, fruitID int64, loc inventory.Location) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.qty[stockKey{fruitID, loc}], nil
}

func (m *mockStock) Adjust(ctx context.Context, fruitID int64, loc inventory.Location, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := stockKey{fruitID, loc}
	if m.qty[key]+delta < 0 {
		return apperr.InsufficientStock("fruit %d at %s", fruitID, loc)
	}
	m.qty[key] += delta
	return nil
}

func (m *mockStock) Set(ctx context.Context, fruitID int64, loc inventory.Location, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qty[stockKey{fruitID, loc}] = qty
	return nil
}

func (m *mockStock) ListAt(ctx context.Context, loc inventory.Location) ([]*inventory.Record, error) {
	return nil, nil
}

// Mock catalog repositories

type mockFruits struct{ ids map[int64]bool }

func (m *mockFruits) WithTx(tx database.DBTX) catalog.FruitRepository { return m }
func (m *mockFruits) Create(ctx context.Context, f *catalog.Fruit) error {
	return nil
}
func (m *mockFruits) GetByID(ctx context.Context, id int64) (*catalog.Fruit, error) {
	if !m.ids[id] {
		return nil, apperr.NotFound("fruit %d does not exist", id)
	}
	return &catalog.Fruit{ID: id, Name: "banana", SourceCountry: "EC"}, nil
}
func (m *mockFruits) List(ctx context.Context) ([]*catalog.Fruit, error) { return nil, nil }

type mockShops struct{ ids map[int64]bool }

func (m *mockShops) WithTx(tx database.DBTX) catalog.ShopRepository { return m }
func (m *mockShops) Create(ctx context.Context, s *catalog.Shop) error {
	return nil
}
func (m *mockShops) GetByID(ctx context.Context, id int64) (*catalog.Shop, error) {
	if !m.ids[id] {
		return nil, apperr.NotFound("shop %d does not exist", id)
	}
	return &catalog.Shop{ID: id, Name: "shop", Country: "FR"}, nil
}
func (m *mockShops) List(ctx context.Context) ([]*catalog.Shop, error) { return nil, nil }

func newTestService(stock *mockStock, repo *mockRepo) Service {
	fruits := &mockFruits{ids: map[int64]bool{5: true}}
	shops := &mockShops{ids: map[int64]bool{1: true, 2: true}}
	return NewService(repo, stock, fruits, shops, database.NoOpScope{})
}

func TestDirect_TransfersStock(t *testing.T) {
	stock := newMockStock()
	repo := newMockRepo()
	svc := newTestService(stock, repo)

	lender := inventory.AtShop(1)
	borrower := inventory.AtShop(2)
	stock.qty[stockKey{5, lender}] = 100
	stock.qty[stockKey{5, borrower}] = 10

	b, err := svc.Direct(context.Background(), 5, 1, 2, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusApproved {
		t.Errorf("expected APPROVED, got %s", b.Status)
	}

	lenderQty, _ := stock.Quantity(context.Background(), 5, lender)
	borrowerQty, _ := stock.Quantity(context.Background(), 5, borrower)
	if lenderQty != 70 {
		t.Errorf("lender quantity: expected 70, got %d", lenderQty)
	}
	if borrowerQty != 40 {
		t.Errorf("borrower quantity: expected 40, got %d", borrowerQty)
	}
	if lenderQty+borrowerQty != 110 {
		t.Errorf("transfer must conserve total quantity, got %d", lenderQty+borrowerQty)
	}
}

func TestDirect_InsufficientStock(t *testing.T) {
	stock := newMockStock()
	repo := newMockRepo()
	svc := newTestService(stock, repo)

	lender := inventory.AtShop(1)
	stock.qty[stockKey{5, lender}] = 20

	_, err := svc.Direct(context.Background(), 5, 1, 2, 30)
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	lenderQty, _ := stock.Quantity(context.Background(), 5, lender)
	borrowerQty, _ := stock.Quantity(context.Background(), 5, inventory.AtShop(2))
	if lenderQty != 20 || borrowerQty != 0 {
		t.Errorf("failed transfer must not move stock, got lender=%d borrower=%d", lenderQty, borrowerQty)
	}
}

func TestDirect_RejectsSelfBorrow(t *testing.T) {
	svc := newTestService(newMockStock(), newMockRepo())

	_, err := svc.Direct(context.Background(), 5, 1, 1, 10)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDirect_RejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(newMockStock(), newMockRepo())

	for _, qty := range []int{0, -5} {
		if _, err := svc.Direct(context.Background(), 5, 1, 2, qty); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("quantity %d: expected ErrValidation, got %v", qty, err)
		}
	}
}

func TestRequest_DoesNotMoveStock(t *testing.T) {
	stock := newMockStock()
	repo := newMockRepo()
	svc := newTestService(stock, repo)

	lender := inventory.AtShop(1)
	stock.qty[stockKey{5, lender}] = 100

	b, err := svc.Request(context.Background(), 5, 1, 2, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusPending {
		t.Errorf("expected PENDING, got %s", b.Status)
	}

	qty, _ := stock.Quantity(context.Background(), 5, lender)
	if qty != 100 {
		t.Errorf("request must not move stock, lender has %d", qty)
	}
}

func TestApprove_TransfersAndApproves(t *testing.T) {
	stock := newMockStock()
	repo := newMockRepo()
	svc := newTestService(stock, repo)

	stock.qty[stockKey{5, inventory.AtShop(1)}] = 50

	b, err := svc.Request(context.Background(), 5, 1, 2, 20)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	approved, err := svc.Approve(context.Background(), b.ID, 1)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("expected APPROVED, got %s", approved.Status)
	}

	lenderQty, _ := stock.Quantity(context.Background(), 5, inventory.AtShop(1))
	borrowerQty, _ := stock.Quantity(context.Background(), 5, inventory.AtShop(2))
	if lenderQty != 30 || borrowerQty != 20 {
		t.Errorf("expected lender=30 borrower=20, got lender=%d borrower=%d", lenderQty, borrowerQty)
	}
}

func TestApprove_OnlyLenderMay(t *testing.T) {
	stock := newMockStock()
	svc := newTestService(stock, newMockRepo())

	b, err := svc.Request(context.Background(), 5, 1, 2, 20)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if _, err := svc.Approve(context.Background(), b.ID, 2); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApprove_RequiresPending(t *testing.T) {
	stock := newMockStock()
	svc := newTestService(stock, newMockRepo())

	stock.qty[stockKey{5, inventory.AtShop(1)}] = 100

	b, err := svc.Request(context.Background(), 5, 1, 2, 20)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Approve(context.Background(), b.ID, 1); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	if _, err := svc.Approve(context.Background(), b.ID, 1); !errors.Is(err, apperr.ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict on second approve, got %v", err)
	}
}

func TestReject_NoStockMovement(t *testing.T) {
	stock := newMockStock()
	svc := newTestService(stock, newMockRepo())

	stock.qty[stockKey{5, inventory.AtShop(1)}] = 100

	b, err := svc.Request(context.Background(), 5, 1, 2, 20)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	rejected, err := svc.Reject(context.Background(), b.ID, 1)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Errorf("expected REJECTED, got %s", rejected.Status)
	}

	qty, _ := stock.Quantity(context.Background(), 5, inventory.AtShop(1))
	if qty != 100 {
		t.Errorf("reject must not move stock, lender has %d", qty)
	}
}

func TestApprove_MissingRecord(t *testing.T) {
	svc := newTestService(newMockStock(), newMockRepo())

	if _, err := svc.Approve(context.Background(), uuid.New(), 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
