package order

import (
	"context"
	"time"

	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
)

// Repository defines DB operations for orders and order items.
type Repository interface {
	CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error)
	// CreateOrderItems inserts the snapshot rows for an order in one call.
	CreateOrderItems(ctx context.Context, items []entity.OrderItem) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetOrderByIDAndToken matches both id and public token; nil when either
	// is wrong, so callers cannot distinguish a bad token from a bad id.
	GetOrderByIDAndToken(ctx context.Context, id uuid.UUID, token string) (*entity.Order, error)

	SetStripeSession(ctx context.Context, id uuid.UUID, sessionID string) error
	// MarkPaid sets paid=true, status=confirmed and stores the payment
	// intent id in one update.
	MarkPaid(ctx context.Context, id uuid.UUID, paymentIntentID *string) error
	StampConfirmationEmail(ctx context.Context, id uuid.UUID, at time.Time) error

	// ListByEvent returns the event's orders newest first.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Order, error)
	// StatsByEvent aggregates order counts and revenue per event id.
	StatsByEvent(ctx context.Context) (map[uuid.UUID]entity.EventStats, error)

	// ListReminderTargets returns paid, confirmed orders for the event with
	// a non-null phone and a null timestamp for the given reminder kind.
	ListReminderTargets(ctx context.Context, eventID uuid.UUID, kind entity.ReminderKind) ([]entity.Order, error)
	StampReminder(ctx context.Context, id uuid.UUID, kind entity.ReminderKind, at time.Time) error

	// GetSummary assembles the receipt view: order, owning event block and
	// item lines with product names.
	GetSummary(ctx context.Context, id uuid.UUID) (*Summary, error)

	// Directory queries, keyed by normalized email.
	ListAll(ctx context.Context) ([]entity.Order, error)
	LatestByEmail(ctx context.Context, email string) (*entity.Order, error)
	FirstByEmail(ctx context.Context, email string) (*entity.Order, error)
	CountByEmail(ctx context.Context, email string) (total int64, paid int64, err error)
}
