package user

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/freshline/supply-backend/internal/apperr"
)

type mockRepo struct {
	mu    sync.Mutex
	users map[string]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[string]*User)}
}

func (m *mockRepo) CreateUser(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *mockRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, apperr.NotFound("user %s does not exist", email)
	}
	return u, nil
}

func (m *mockRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user %s does not exist", id)
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	u, err := svc.RegisterUser(context.Background(), "keeper@example.com", "long-enough", "Ada", "Keeper", RoleShopkeeper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.PasswordHash == "long-enough" {
		t.Error("password must not be stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long-enough")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}

	stored, err := repo.GetUserByEmail(context.Background(), "keeper@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.Role != RoleShopkeeper {
		t.Errorf("expected SHOPKEEPER, got %s", stored.Role)
	}
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.RegisterUser(context.Background(), "keeper@example.com", "short", "", "", RoleShopkeeper)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegisterUser_UnknownRole(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.RegisterUser(context.Background(), "keeper@example.com", "long-enough", "", "", Role("DRIVER"))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleShopkeeper, RoleWarehouseman} {
		got, err := ParseRole(string(role))
		if err != nil || got != role {
			t.Errorf("ParseRole(%s) = %s, %v", role, got, err)
		}
	}
	if _, err := ParseRole("driver"); err == nil {
		t.Error("expected error for unknown role")
	}
}
