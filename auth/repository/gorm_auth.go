package repository

import (
	"context"

	authpkg "github.com/cornellb28/orderbbs-app/auth"
	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormAuthRepo struct{ db *gorm.DB }

func NewGormAuthRepo(db *gorm.DB) authpkg.Repository { return &GormAuthRepo{db: db} }

func (r *GormAuthRepo) GetAdminByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	var a entity.AdminUser
	if err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *GormAuthRepo) IsActiveAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.AdminUser{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}
