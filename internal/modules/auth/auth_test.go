package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/modules/user"
)

type mockUserRepo struct {
	users map[string]*user.User
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, apperr.NotFound("user %s does not exist", email)
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range m.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user %s does not exist", id)
}

func newTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	id := uuid.New()
	repo := &mockUserRepo{users: map[string]*user.User{
		"keeper@example.com": {
			ID:           id,
			Email:        "keeper@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleShopkeeper,
		},
	}}
	return NewService(repo, "test-secret", time.Hour), id
}

func TestLoginAndParseToken(t *testing.T) {
	svc, id := newTestService(t)

	token, err := svc.Login(context.Background(), "keeper@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != id.String() {
		t.Errorf("expected subject %s, got %s", id, claims.UserID)
	}
	if claims.Role != user.RoleShopkeeper {
		t.Errorf("expected SHOPKEEPER, got %s", claims.Role)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Login(context.Background(), "keeper@example.com", "wrong"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	svc, _ := newTestService(t)
	other := NewService(&mockUserRepo{}, "different-secret", time.Hour)

	token, err := svc.Login(context.Background(), "keeper@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPermissions_Allows(t *testing.T) {
	perms := DefaultPermissions()

	cases := []struct {
		role user.Role
		path string
		want bool
	}{
		{user.RoleAdmin, "/api/v1/deliveries", true},
		{user.RoleAdmin, "/api/v1/borrowings", true},
		{user.RoleShopkeeper, "/api/v1/borrowings", true},
		{user.RoleShopkeeper, "/api/v1/reservations", true},
		{user.RoleShopkeeper, "/api/v1/deliveries", false},
		{user.RoleWarehouseman, "/api/v1/deliveries", true},
		{user.RoleWarehouseman, "/api/v1/borrowings", false},
		{user.RoleWarehouseman, "/api/v1/analytics/forecast", true},
	}
	for _, c := range cases {
		if got := perms.Allows(c.role, c.path); got != c.want {
			t.Errorf("Allows(%s, %s) = %v, want %v", c.role, c.path, got, c.want)
		}
	}
}

func TestMiddleware(t *testing.T) {
	svc, _ := newTestService(t)
	perms := DefaultPermissions()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Role != user.RoleShopkeeper {
			t.Error("expected shopkeeper claims in context")
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(svc, perms)(next)

	token, err := svc.Login(context.Background(), "keeper@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	cases := []struct {
		name   string
		header string
		path   string
		want   int
	}{
		{"valid token", "Bearer " + token, "/api/v1/borrowings", http.StatusOK},
		{"missing token", "", "/api/v1/borrowings", http.StatusUnauthorized},
		{"malformed header", token, "/api/v1/borrowings", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", "/api/v1/borrowings", http.StatusUnauthorized},
		{"role not permitted", "Bearer " + token, "/api/v1/deliveries", http.StatusForbidden},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, c.path, nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != c.want {
				t.Errorf("expected %d, got %d", c.want, rec.Code)
			}
		})
	}
}
