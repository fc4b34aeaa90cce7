package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned for unknown emails, wrong passwords and
// deactivated admins alike, so login responses never reveal which it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginRequest struct {
	Email    string
	Password string
}

// Principal is an authenticated admin plus their session token.
type Principal struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Principal, error)
}
