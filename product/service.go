package product

import (
	"context"
	"errors"

	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

type CreateProductRequest struct {
	Name        string
	Description *string
	PriceCents  int64
}

type UpdateProductRequest struct {
	Name        *string
	Description *string
	PriceCents  *int64
	IsActive    *bool
}

type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*entity.Product, error)
}
