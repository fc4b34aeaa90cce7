package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single pre-order drop: customers order against its menu until
// the deadline, then pick up at the stated place and time window.
type Event struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Title      string    `json:"title" gorm:"type:text;not null"`
	PickupDate CivilDate `json:"pickup_date" gorm:"type:date;not null"`
	// Time-of-day strings in HH:MM:SS, interpreted in America/Chicago.
	PickupStart     string    `json:"pickup_start" gorm:"type:time;not null"`
	PickupEnd       string    `json:"pickup_end" gorm:"type:time;not null"`
	LocationName    string    `json:"location_name" gorm:"type:text;not null"`
	LocationAddress string    `json:"location_address" gorm:"type:text;not null"`
	Deadline        time.Time `json:"deadline" gorm:"not null"`
	// At most one event is active at a time; enforced by the activation
	// sequence in the event service, not by a stored constraint.
	IsActive  bool      `json:"is_active" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventProduct joins an event to a product, forming the per-event menu
// allow-list. A product is orderable for an event only if both this row and
// the product itself are active.
type EventProduct struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;index;not null"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventStats aggregates order counts and revenue for one event.
type EventStats struct {
	OrdersTotal       int64 `json:"orders_total"`
	OrdersPaid        int64 `json:"orders_paid"`
	OrdersUnpaid      int64 `json:"orders_unpaid"`
	RevenueTotalCents int64 `json:"revenue_total_cents"`
	RevenuePaidCents  int64 `json:"revenue_paid_cents"`
}
