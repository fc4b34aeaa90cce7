package customer

import (
	"context"

	"github.com/cornellb28/orderbbs-app/entity"
)

// Repository defines DB operations for customer profiles and subscribers.
// All email keys are expected pre-normalized (lowercase, trimmed).
type Repository interface {
	GetProfile(ctx context.Context, email string) (*entity.CustomerProfile, error)
	UpsertProfile(ctx context.Context, p *entity.CustomerProfile) (*entity.CustomerProfile, error)
	ListProfiles(ctx context.Context) ([]entity.CustomerProfile, error)

	GetSubscriber(ctx context.Context, email string) (*entity.Subscriber, error)
	// UpsertSubscriber inserts or updates by unique email.
	UpsertSubscriber(ctx context.Context, s *entity.Subscriber) error
	ListSubscribers(ctx context.Context) ([]entity.Subscriber, error)
}
