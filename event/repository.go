package event

import (
	"context"

	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
)

// Repository defines DB operations for events and their menu allow-lists.
type Repository interface {
	CreateEvent(ctx context.Context, e *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	// ListEvents returns all events ordered by pickup_date DESC.
	ListEvents(ctx context.Context) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// DeactivateAll flips is_active off on every currently active event.
	DeactivateAll(ctx context.Context) error
	// Activate sets is_active on the target row; relies on the write's own
	// row-match semantics when the id is unknown.
	Activate(ctx context.Context, id uuid.UUID) error
	// GetActiveEvent returns the single active event, or nil when none.
	GetActiveEvent(ctx context.Context) (*entity.Event, error)

	// ListActiveMenu returns the event's active products (join row active AND
	// product active) ordered by sort_order.
	ListActiveMenu(ctx context.Context, eventID uuid.UUID) ([]entity.Product, error)
	// ListAllowedProductIDs filters the given ids down to those on the
	// event's active allow-list.
	ListAllowedProductIDs(ctx context.Context, eventID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)

	// Menu management: ReplaceEventProducts swaps the event's join rows for
	// the submitted set; ListEventProducts returns the raw join rows.
	ReplaceEventProducts(ctx context.Context, eventID uuid.UUID, rows []entity.EventProduct) error
	ListEventProducts(ctx context.Context, eventID uuid.UUID) ([]entity.EventProduct, error)
}
