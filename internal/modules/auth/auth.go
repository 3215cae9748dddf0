package auth

import (
	"context"
	"strings"

	"github.com/freshline/supply-backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	// ParseToken validates a signed token and returns its claims.
	ParseToken(token string) (*Claims, error)
}

// Claims is the authenticated identity carried by a token.
type Claims struct {
	UserID string
	Role   user.Role
}

// Permissions maps each role to the API path prefixes it may call. It is
// built once at startup and never mutated afterwards; handlers receive it
// explicitly instead of consulting a global table.
type Permissions struct {
	byRole map[user.Role][]string
}

// DefaultPermissions returns the standard role grants: admins reach
// everything, shopkeepers run the shop-side workflows, warehousemen run
// the warehouse-side ones.
func DefaultPermissions() Permissions {
	return Permissions{byRole: map[user.Role][]string{
		user.RoleAdmin: {"/api/v1/"},
		user.RoleShopkeeper: {
			"/api/v1/catalog",
			"/api/v1/inventory",
			"/api/v1/borrowings",
			"/api/v1/reservations",
			"/api/v1/analytics",
		},
		user.RoleWarehouseman: {
			"/api/v1/catalog",
			"/api/v1/inventory",
			"/api/v1/reservations",
			"/api/v1/deliveries",
			"/api/v1/analytics",
		},
	}}
}

// Allows reports whether the role may call the given request path.
func (p Permissions) Allows(role user.Role, path string) bool {
	for _, prefix := range p.byRole[role] {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
