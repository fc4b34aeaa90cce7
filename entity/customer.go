package entity

import (
	"time"

	"github.com/google/uuid"
)

// CustomerProfile is the admin-editable view of a customer, keyed by email.
// It exists only once an admin has edited the customer and is the highest
// precedence source when unifying customer records.
type CustomerProfile struct {
	Email string  `json:"email" gorm:"type:text;primaryKey"`
	Name  *string `json:"name,omitempty" gorm:"type:text"`
	Phone *string `json:"phone,omitempty" gorm:"type:text"`
	// Nullable on purpose: an explicit false overrides order-derived opt-in,
	// while null means the profile carries no opinion.
	SMSOptIn  *bool     `json:"sms_opt_in,omitempty"`
	VIP       bool      `json:"vip" gorm:"default:false"`
	Notes     *string   `json:"notes,omitempty" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscriber is a mailing-list contact, upserted by email.
type Subscriber struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email     string    `json:"email" gorm:"type:text;uniqueIndex;not null"`
	Name      *string   `json:"name,omitempty" gorm:"type:text"`
	Phone     *string   `json:"phone,omitempty" gorm:"type:text"`
	SMSOptIn  bool      `json:"sms_opt_in" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
