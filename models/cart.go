package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is owned by either a registered user or an anonymous session,
// never both. Exactly one of UserID/SessionID is set.
type CartItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    *string   `gorm:"index;size:36;uniqueIndex:idx_cart_owner_product" json:"user_id,omitempty"`
	SessionID *string   `gorm:"index;size:64;uniqueIndex:idx_cart_owner_product" json:"session_id,omitempty"`
	ProductID string    `gorm:"index;size:36;not null;uniqueIndex:idx_cart_owner_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
