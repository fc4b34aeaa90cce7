package product

import (
	"context"

	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
)

// Repository defines DB operations for products.
type Repository interface {
	CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Product, error)
	// ListActiveByIDs returns active products for the exact requested ids;
	// callers compare counts to detect inactive or deleted products.
	ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
}
