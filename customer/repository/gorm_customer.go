package repository

import (
	"context"

	customerpkg "github.com/cornellb28/orderbbs-app/customer"
	"github.com/cornellb28/orderbbs-app/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCustomerRepo struct{ db *gorm.DB }

func NewGormCustomerRepo(db *gorm.DB) customerpkg.Repository { return &GormCustomerRepo{db: db} }

func (r *GormCustomerRepo) GetProfile(ctx context.Context, email string) (*entity.CustomerProfile, error) {
	var p entity.CustomerProfile
	if err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormCustomerRepo) UpsertProfile(ctx context.Context, p *entity.CustomerProfile) (*entity.CustomerProfile, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		UpdateAll: true,
	}).Create(p).Error
	if err != nil {
		return nil, err
	}
	return r.GetProfile(ctx, p.Email)
}

func (r *GormCustomerRepo) ListProfiles(ctx context.Context) ([]entity.CustomerProfile, error) {
	var list []entity.CustomerProfile
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormCustomerRepo) GetSubscriber(ctx context.Context, email string) (*entity.Subscriber, error) {
	var s entity.Subscriber
	if err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormCustomerRepo) UpsertSubscriber(ctx context.Context, s *entity.Subscriber) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "sms_opt_in"}),
	}).Create(s).Error
}

func (r *GormCustomerRepo) ListSubscribers(ctx context.Context) ([]entity.Subscriber, error) {
	var list []entity.Subscriber
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
