package repository

import (
	"context"

	"github.com/cornellb28/orderbbs-app/entity"
	eventpkg "github.com/cornellb28/orderbbs-app/event"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormEventRepo struct{ db *gorm.DB }

func NewGormEventRepo(db *gorm.DB) eventpkg.Repository { return &GormEventRepo{db: db} }

func (r *GormEventRepo) CreateEvent(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (r *GormEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var e entity.Event
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *GormEventRepo) ListEvents(ctx context.Context) ([]entity.Event, error) {
	var list []entity.Event
	if err := r.db.WithContext(ctx).Order("pickup_date DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormEventRepo) UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Event, error) {
	res := r.db.WithContext(ctx).Model(&entity.Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetEventByID(ctx, id)
}

func (r *GormEventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Event{}, "id = ?", id).Error
}

func (r *GormEventRepo) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *GormEventRepo) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("id = ?", id).
		Update("is_active", true).Error
}

func (r *GormEventRepo) GetActiveEvent(ctx context.Context) (*entity.Event, error) {
	var e entity.Event
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("pickup_date ASC").
		First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *GormEventRepo) ListActiveMenu(ctx context.Context, eventID uuid.UUID) ([]entity.Product, error) {
	var list []entity.Product
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*").
		Joins("JOIN event_products ON event_products.product_id = products.id").
		Where("event_products.event_id = ? AND event_products.is_active = ? AND products.is_active = ?", eventID, true, true).
		Order("event_products.sort_order ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormEventRepo) ListAllowedProductIDs(ctx context.Context, eventID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var rows []entity.EventProduct
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = event_products.product_id AND products.is_active = ?", true).
		Where("event_products.event_id = ? AND event_products.is_active = ? AND event_products.product_id IN ?", eventID, true, productIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]struct{}, len(rows))
	for i := range rows {
		m[rows[i].ProductID] = struct{}{}
	}
	return m, nil
}

func (r *GormEventRepo) ReplaceEventProducts(ctx context.Context, eventID uuid.UUID, rows []entity.EventProduct) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.EventProduct{}, "event_id = ?", eventID).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *GormEventRepo) ListEventProducts(ctx context.Context, eventID uuid.UUID) ([]entity.EventProduct, error) {
	var rows []entity.EventProduct
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("sort_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
