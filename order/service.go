package order

import (
	"context"
	"errors"
	"time"

	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("order not found")

// SummaryEvent is the pickup block shown on receipts and emails.
type SummaryEvent struct {
	Title           string `json:"title"`
	PickupDate      string `json:"pickup_date"`
	PickupStart     string `json:"pickup_start"`
	PickupEnd       string `json:"pickup_end"`
	LocationName    string `json:"location_name"`
	LocationAddress string `json:"location_address"`
}

// SummaryItem is one receipt line with the product name denormalized.
type SummaryItem struct {
	Qty            int64  `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
	ProductName    string `json:"product_name"`
}

// Summary is the full receipt view of an order.
type Summary struct {
	ID           uuid.UUID          `json:"id"`
	Status       entity.OrderStatus `json:"status"`
	Paid         bool               `json:"paid"`
	TotalCents   int64              `json:"total_cents"`
	CustomerName string             `json:"customer_name"`
	Email        string             `json:"email"`
	Phone        *string            `json:"phone,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	PublicToken  string             `json:"public_token"`
	Event        SummaryEvent       `json:"event"`
	Items        []SummaryItem      `json:"items"`
}

// EventOrderTotals aggregates one event's order listing for the admin view.
type EventOrderTotals struct {
	CountTotal        int64 `json:"count_total"`
	CountPaid         int64 `json:"count_paid"`
	CountUnpaid       int64 `json:"count_unpaid"`
	RevenueTotalCents int64 `json:"revenue_total_cents"`
	RevenuePaidCents  int64 `json:"revenue_paid_cents"`
}

type Service interface {
	// GetReceipt looks an order up by id plus public token; ErrNotFound on
	// any mismatch.
	GetReceipt(ctx context.Context, id uuid.UUID, token string) (*Summary, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Order, EventOrderTotals, error)

	// StatsByEvent returns order counts and revenue keyed by event id.
	StatsByEvent(ctx context.Context) (map[uuid.UUID]entity.EventStats, error)
}
