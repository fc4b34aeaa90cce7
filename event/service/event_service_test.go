package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornellb28/orderbbs-app/entity"
	eventpkg "github.com/cornellb28/orderbbs-app/event"
)

type memEventRepo struct {
	eventpkg.Repository
	events map[uuid.UUID]*entity.Event
	calls  []string
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[uuid.UUID]*entity.Event)}
}

func (r *memEventRepo) CreateEvent(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	e.ID = uuid.New()
	r.events[e.ID] = e
	return e, nil
}

func (r *memEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.events[id], nil
}

func (r *memEventRepo) DeactivateAll(ctx context.Context) error {
	r.calls = append(r.calls, "deactivate-all")
	for _, e := range r.events {
		e.IsActive = false
	}
	return nil
}

func (r *memEventRepo) Activate(ctx context.Context, id uuid.UUID) error {
	r.calls = append(r.calls, "activate")
	if e, ok := r.events[id]; ok {
		e.IsActive = true
	}
	return nil
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "11:00:00", normalizeTime("11:00"))
	assert.Equal(t, "09:05:00", normalizeTime("9:5"))
	assert.Equal(t, "11:00:30", normalizeTime("11:00:30"))
}

func TestCreateEventNormalizesWindowAndStartsInactive(t *testing.T) {
	repo := newMemEventRepo()
	svc := NewEventService(repo)

	e, err := svc.CreateEvent(context.Background(), eventpkg.CreateEventRequest{
		Title:       "March Ramen Drop",
		PickupDate:  "2025-03-15",
		PickupStart: "11:00",
		PickupEnd:   "1:00",
		Deadline:    time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00:00", e.PickupStart)
	assert.Equal(t, "01:00:00", e.PickupEnd)
	assert.False(t, e.IsActive)
}

func TestActivateReplacesCurrentActive(t *testing.T) {
	repo := newMemEventRepo()
	svc := NewEventService(repo)

	old := &entity.Event{Title: "Old Drop", IsActive: true}
	old, _ = repo.CreateEvent(context.Background(), old)
	next, _ := repo.CreateEvent(context.Background(), &entity.Event{Title: "New Drop"})

	require.NoError(t, svc.Activate(context.Background(), next.ID))

	assert.False(t, repo.events[old.ID].IsActive)
	assert.True(t, repo.events[next.ID].IsActive)
	// Deactivation must run first so two events are never active at once.
	assert.Equal(t, []string{"deactivate-all", "activate"}, repo.calls)
}

func TestGetEventNotFound(t *testing.T) {
	svc := NewEventService(newMemEventRepo())
	_, err := svc.GetEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, eventpkg.ErrNotFound)
}
