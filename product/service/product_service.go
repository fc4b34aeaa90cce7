package service

import (
	"context"
	"fmt"

	"github.com/cornellb28/orderbbs-app/entity"
	productpkg "github.com/cornellb28/orderbbs-app/product"
	"github.com/google/uuid"
)

type productService struct {
	repo productpkg.Repository
}

func NewProductService(repo productpkg.Repository) productpkg.Service {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(ctx context.Context, req productpkg.CreateProductRequest) (*entity.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.PriceCents <= 0 {
		return nil, fmt.Errorf("price_cents must be positive")
	}
	p := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		IsActive:    true,
	}
	return s.repo.CreateProduct(ctx, p)
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, productpkg.ErrNotFound
	}
	return p, nil
}

func (s *productService) ListProducts(ctx context.Context, activeOnly bool) ([]entity.Product, error) {
	return s.repo.ListProducts(ctx, activeOnly)
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req productpkg.UpdateProductRequest) (*entity.Product, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents <= 0 {
			return nil, fmt.Errorf("price_cents must be positive")
		}
		fields["price_cents"] = *req.PriceCents
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return s.GetProduct(ctx, id)
	}
	p, err := s.repo.UpdateProduct(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, productpkg.ErrNotFound
	}
	return p, nil
}
