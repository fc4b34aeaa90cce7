package repository

import (
	"context"
	"time"

	"github.com/cornellb28/orderbbs-app/entity"
	orderpkg "github.com/cornellb28/orderbbs-app/order"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormOrderRepo struct{ db *gorm.DB }

func NewGormOrderRepo(db *gorm.DB) orderpkg.Repository { return &GormOrderRepo{db: db} }

func reminderColumn(kind entity.ReminderKind) string {
	if kind == entity.ReminderDayOf {
		return "pickup_reminder_day_of_sent_at"
	}
	return "pickup_reminder_day_before_sent_at"
}

func (r *GormOrderRepo) CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

func (r *GormOrderRepo) CreateOrderItems(ctx context.Context, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *GormOrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var o entity.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepo) GetOrderByIDAndToken(ctx context.Context, id uuid.UUID, token string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND public_token = ?", id, token).
		First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepo) SetStripeSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("stripe_session_id", sessionID).Error
}

func (r *GormOrderRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentIntentID *string) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"paid":                     true,
		"status":                   entity.OrderConfirmed,
		"stripe_payment_intent_id": paymentIntentID,
	}).Error
}

func (r *GormOrderRepo) StampConfirmationEmail(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("confirmation_email_sent_at", at).Error
}

func (r *GormOrderRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Order, error) {
	var list []entity.Order
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormOrderRepo) StatsByEvent(ctx context.Context) (map[uuid.UUID]entity.EventStats, error) {
	var rows []struct {
		EventID           uuid.UUID
		OrdersTotal       int64
		OrdersPaid        int64
		RevenueTotalCents int64
		RevenuePaidCents  int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select(`event_id,
			count(*) AS orders_total,
			count(*) FILTER (WHERE paid) AS orders_paid,
			coalesce(sum(total_cents), 0) AS revenue_total_cents,
			coalesce(sum(total_cents) FILTER (WHERE paid), 0) AS revenue_paid_cents`).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]entity.EventStats, len(rows))
	for _, row := range rows {
		m[row.EventID] = entity.EventStats{
			OrdersTotal:       row.OrdersTotal,
			OrdersPaid:        row.OrdersPaid,
			OrdersUnpaid:      row.OrdersTotal - row.OrdersPaid,
			RevenueTotalCents: row.RevenueTotalCents,
			RevenuePaidCents:  row.RevenuePaidCents,
		}
	}
	return m, nil
}

func (r *GormOrderRepo) ListReminderTargets(ctx context.Context, eventID uuid.UUID, kind entity.ReminderKind) ([]entity.Order, error) {
	var list []entity.Order
	col := reminderColumn(kind)
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND paid = ? AND status = ?", eventID, true, entity.OrderConfirmed).
		Where("phone IS NOT NULL").
		Where(col + " IS NULL").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormOrderRepo) StampReminder(ctx context.Context, id uuid.UUID, kind entity.ReminderKind, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update(reminderColumn(kind), at).Error
}

func (r *GormOrderRepo) GetSummary(ctx context.Context, id uuid.UUID) (*orderpkg.Summary, error) {
	o, err := r.GetOrderByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}

	var e entity.Event
	if err := r.db.WithContext(ctx).First(&e, "id = ?", o.EventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	var lines []struct {
		entity.OrderItem
		ProductName string
	}
	err = r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.*, products.name AS product_name").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", id).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	sum := &orderpkg.Summary{
		ID:           o.ID,
		Status:       o.Status,
		Paid:         o.Paid,
		TotalCents:   o.TotalCents,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		CreatedAt:    o.CreatedAt,
		PublicToken:  o.PublicToken,
		Event: orderpkg.SummaryEvent{
			Title:           e.Title,
			PickupDate:      string(e.PickupDate),
			PickupStart:     e.PickupStart,
			PickupEnd:       e.PickupEnd,
			LocationName:    e.LocationName,
			LocationAddress: e.LocationAddress,
		},
	}
	for _, l := range lines {
		name := l.ProductName
		if name == "" {
			name = "Item"
		}
		sum.Items = append(sum.Items, orderpkg.SummaryItem{
			Qty:            l.Qty,
			UnitPriceCents: l.UnitPriceCents,
			LineTotalCents: l.LineTotalCents,
			ProductName:    name,
		})
	}
	return sum, nil
}

func (r *GormOrderRepo) ListAll(ctx context.Context) ([]entity.Order, error) {
	var list []entity.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormOrderRepo) LatestByEmail(ctx context.Context, email string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).
		Where("lower(email) = ?", email).
		Order("created_at DESC").
		First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepo) FirstByEmail(ctx context.Context, email string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).
		Where("lower(email) = ?", email).
		Order("created_at ASC").
		First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepo) CountByEmail(ctx context.Context, email string) (int64, int64, error) {
	var total, paid int64
	if err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("lower(email) = ?", email).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("lower(email) = ? AND paid = ?", email, true).
		Count(&paid).Error; err != nil {
		return 0, 0, err
	}
	return total, paid, nil
}
