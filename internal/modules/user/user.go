package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is a closed set; permission checks switch on it exhaustively
// instead of comparing literal strings scattered through handlers.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleShopkeeper   Role = "SHOPKEEPER"
	RoleWarehouseman Role = "WAREHOUSEMAN"
)

// ParseRole converts a stored or submitted value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleShopkeeper, RoleWarehouseman:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User represents an account in the system.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
