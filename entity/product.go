package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a menu item owned independently of events; events reference it
// through EventProduct rows.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	// Unit price in minor currency units (cents).
	PriceCents int64     `json:"price_cents" gorm:"type:bigint;not null"`
	IsActive   bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
