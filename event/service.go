package event

import (
	"context"
	"errors"
	"time"

	"github.com/cornellb28/orderbbs-app/entity"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("event not found")

type CreateEventRequest struct {
	Title           string
	PickupDate      string // YYYY-MM-DD
	PickupStart     string // HH:MM or HH:MM:SS
	PickupEnd       string
	LocationName    string
	LocationAddress string
	Deadline        time.Time
}

type UpdateEventRequest struct {
	Title           *string
	PickupDate      *string
	PickupStart     *string
	PickupEnd       *string
	LocationName    *string
	LocationAddress *string
	Deadline        *time.Time
}

// EventWithMenu is an event plus its resolved, sorted active menu.
type EventWithMenu struct {
	entity.Event
	Menu []entity.Product `json:"menu"`
}

type MenuItem struct {
	ProductID uuid.UUID
	SortOrder int
	IsActive  bool
}

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	ListEvents(ctx context.Context) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// Activate enforces the single-active-event invariant: deactivate every
	// active event, then activate the target. Two sequential writes; a crash
	// in between leaves zero active events, never two.
	Activate(ctx context.Context, id uuid.UUID) error

	// ActiveEventWithMenu returns the current drop and its menu, or nil when
	// no event is active.
	ActiveEventWithMenu(ctx context.Context) (*EventWithMenu, error)

	SetMenu(ctx context.Context, eventID uuid.UUID, items []MenuItem) error
	ListMenu(ctx context.Context, eventID uuid.UUID) ([]entity.EventProduct, error)
}
