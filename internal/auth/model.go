package auth

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleRider    Role = "rider"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleRider, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is what a verified bearer token resolves to. Every role-gated
// call downstream works off this, never off the raw token.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}
