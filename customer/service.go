package customer

import (
	"context"
	"errors"
	"time"

	"github.com/cornellb28/orderbbs-app/entity"
)

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidPhone = errors.New("phone number must be a valid US number (10 digits)")
)

type SubscribeRequest struct {
	Name     string
	Email    string
	Phone    string
	SMSOptIn bool
}

type UpdateProfileRequest struct {
	Name     *string
	Phone    *string
	SMSOptIn *bool
	VIP      *bool
	Notes    *string
}

// Detail is the admin single-customer view: merged fields plus order
// counters and a tag naming which sources the customer appears in.
type Detail struct {
	Email    string  `json:"email"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	SMSOptIn *bool   `json:"sms_opt_in"`
	VIP      bool    `json:"vip"`
	Notes    *string `json:"notes"`

	FirstSeen *time.Time `json:"first_seen"`
	LastSeen  *time.Time `json:"last_seen"`

	OrderCount      int64   `json:"order_count"`
	PaidOrderCount  int64   `json:"paid_order_count"`
	LastOrderStatus *string `json:"last_order_status"`
	LastOrderPaid   *bool   `json:"last_order_paid"`

	Source string `json:"source"` // both | orders | subscribers | unknown
}

type Service interface {
	// Subscribe upserts a mailing-list entry by normalized email. A typed
	// but invalid phone is rejected even when SMS opt-in is off.
	Subscribe(ctx context.Context, req SubscribeRequest) error

	// ListUnified recomputes the directory from all three sources and
	// applies the filter.
	ListUnified(ctx context.Context, f Filter) ([]Unified, error)

	GetDetail(ctx context.Context, email string) (*Detail, error)
	UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (*entity.CustomerProfile, error)
}
