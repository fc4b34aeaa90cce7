package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the lifecycle of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"   // created, awaiting payment
	OrderConfirmed OrderStatus = "confirmed" // payment completed via webhook
)

// ReminderKind selects which pickup reminder a sweep sends. The two kinds
// are independent one-way transitions, each gated by its own timestamp.
type ReminderKind string

const (
	ReminderDayBefore ReminderKind = "day-before"
	ReminderDayOf     ReminderKind = "day-of"
)

// Order captures a customer's pre-order for one event. Created pending and
// unpaid by checkout; flipped to confirmed/paid exactly once by the payment
// webhook. The nullable *SentAt columns are idempotency markers: a non-null
// value means the side effect already happened and must not repeat.
type Order struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID      uuid.UUID `json:"event_id" gorm:"type:uuid;index;not null"`
	CustomerName string    `json:"customer_name" gorm:"type:text;not null"`
	Email        string    `json:"email" gorm:"type:text;index;not null"`
	// E.164 US phone, normalized at checkout. Null when not supplied.
	Phone      *string     `json:"phone,omitempty" gorm:"type:text"`
	SMSOptIn   bool        `json:"sms_opt_in" gorm:"default:false"`
	TotalCents int64       `json:"total_cents" gorm:"type:bigint;not null"`
	Paid       bool        `json:"paid" gorm:"default:false;index"`
	Status     OrderStatus `json:"status" gorm:"type:text;index;not null;default:'pending'"`
	// Opaque bearer credential for unauthenticated receipt lookup.
	PublicToken             string     `json:"public_token" gorm:"type:uuid;not null;default:uuid_generate_v4()"`
	StripeSessionID         *string    `json:"stripe_session_id,omitempty" gorm:"type:text;index"`
	StripePaymentIntentID   *string    `json:"stripe_payment_intent_id,omitempty" gorm:"type:text"`
	ConfirmationEmailSentAt *time.Time `json:"confirmation_email_sent_at,omitempty"`
	PickupReminderDayBefore *time.Time `json:"pickup_reminder_day_before_sent_at,omitempty" gorm:"column:pickup_reminder_day_before_sent_at"`
	PickupReminderDayOf     *time.Time `json:"pickup_reminder_day_of_sent_at,omitempty" gorm:"column:pickup_reminder_day_of_sent_at"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// ReminderSentAt returns the idempotency timestamp for the given kind.
func (o *Order) ReminderSentAt(kind ReminderKind) *time.Time {
	if kind == ReminderDayOf {
		return o.PickupReminderDayOf
	}
	return o.PickupReminderDayBefore
}

// OrderItem snapshots one cart line at order time. Unit price and line total
// are captured from the authoritative product row and never recomputed.
type OrderItem struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderID        uuid.UUID `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID      uuid.UUID `json:"product_id" gorm:"type:uuid;index;not null"`
	Qty            int64     `json:"qty" gorm:"not null"`
	UnitPriceCents int64     `json:"unit_price_cents" gorm:"type:bigint;not null"`
	LineTotalCents int64     `json:"line_total_cents" gorm:"type:bigint;not null"`
	CreatedAt      time.Time `json:"created_at"`
}
