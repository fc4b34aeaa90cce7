package auth

import (
	"context"

	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
)

// Repository defines DB operations against the admin allow-list.
type Repository interface {
	GetAdminByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	// IsActiveAdmin reports whether the id is on the allow-list and active;
	// the guard re-checks it on every admin request so a revoked admin's
	// token stops working immediately.
	IsActiveAdmin(ctx context.Context, id uuid.UUID) (bool, error)
}
