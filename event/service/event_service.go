package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cornellb28/orderbbs-app/entity"
	eventpkg "github.com/cornellb28/orderbbs-app/event"
	"github.com/google/uuid"
)

type eventService struct {
	repo eventpkg.Repository
}

func NewEventService(repo eventpkg.Repository) eventpkg.Service { return &eventService{repo: repo} }

// normalizeTime pads "H:M" style inputs to HH:MM:SS.
func normalizeTime(t string) string {
	parts := strings.Split(t, ":")
	for len(parts) < 3 {
		parts = append(parts, "00")
	}
	for i, p := range parts {
		if len(p) < 2 {
			parts[i] = "0" + p
		}
	}
	return strings.Join(parts[:3], ":")
}

func (s *eventService) CreateEvent(ctx context.Context, req eventpkg.CreateEventRequest) (*entity.Event, error) {
	if req.Title == "" || req.PickupDate == "" {
		return nil, fmt.Errorf("title and pickup_date are required")
	}
	e := &entity.Event{
		Title:           req.Title,
		PickupDate:      entity.CivilDate(req.PickupDate),
		PickupStart:     normalizeTime(req.PickupStart),
		PickupEnd:       normalizeTime(req.PickupEnd),
		LocationName:    req.LocationName,
		LocationAddress: req.LocationAddress,
		Deadline:        req.Deadline,
		IsActive:        false,
	}
	return s.repo.CreateEvent(ctx, e)
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	e, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, eventpkg.ErrNotFound
	}
	return e, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]entity.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, req eventpkg.UpdateEventRequest) (*entity.Event, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.PickupDate != nil {
		fields["pickup_date"] = *req.PickupDate
	}
	if req.PickupStart != nil {
		fields["pickup_start"] = normalizeTime(*req.PickupStart)
	}
	if req.PickupEnd != nil {
		fields["pickup_end"] = normalizeTime(*req.PickupEnd)
	}
	if req.LocationName != nil {
		fields["location_name"] = *req.LocationName
	}
	if req.LocationAddress != nil {
		fields["location_address"] = *req.LocationAddress
	}
	if req.Deadline != nil {
		fields["deadline"] = *req.Deadline
	}
	if len(fields) == 0 {
		return s.GetEvent(ctx, id)
	}
	e, err := s.repo.UpdateEvent(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, eventpkg.ErrNotFound
	}
	return e, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEvent(ctx, id)
}

// Activate deactivates every active event before activating the target.
// Not wrapped in one transaction: a crash between the writes leaves zero
// active events, which the storefront treats as "no active drop".
func (s *eventService) Activate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateAll(ctx); err != nil {
		return err
	}
	return s.repo.Activate(ctx, id)
}

func (s *eventService) ActiveEventWithMenu(ctx context.Context) (*eventpkg.EventWithMenu, error) {
	e, err := s.repo.GetActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	menu, err := s.repo.ListActiveMenu(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return &eventpkg.EventWithMenu{Event: *e, Menu: menu}, nil
}

func (s *eventService) SetMenu(ctx context.Context, eventID uuid.UUID, items []eventpkg.MenuItem) error {
	rows := make([]entity.EventProduct, 0, len(items))
	for _, it := range items {
		rows = append(rows, entity.EventProduct{
			EventID:   eventID,
			ProductID: it.ProductID,
			SortOrder: it.SortOrder,
			IsActive:  it.IsActive,
		})
	}
	return s.repo.ReplaceEventProducts(ctx, eventID, rows)
}

func (s *eventService) ListMenu(ctx context.Context, eventID uuid.UUID) ([]entity.EventProduct, error) {
	return s.repo.ListEventProducts(ctx, eventID)
}
