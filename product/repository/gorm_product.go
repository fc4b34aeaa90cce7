package repository

import (
	"context"

	"github.com/cornellb28/orderbbs-app/entity"
	productpkg "github.com/cornellb28/orderbbs-app/product"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormProductRepo struct{ db *gorm.DB }

func NewGormProductRepo(db *gorm.DB) productpkg.Repository { return &GormProductRepo{db: db} }

func (r *GormProductRepo) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *GormProductRepo) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepo) ListProducts(ctx context.Context, activeOnly bool) ([]entity.Product, error) {
	var list []entity.Product
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormProductRepo) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Product, error) {
	res := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetProductByID(ctx, id)
}

func (r *GormProductRepo) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var list []entity.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
