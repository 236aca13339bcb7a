package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

type Order struct {
	ID                    string      `gorm:"primaryKey;size:36" json:"id"`
	UserID                string      `gorm:"index;size:36;not null" json:"user_id"`
	User                  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items                 []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total                 float64     `gorm:"not null" json:"total"`
	Status                OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	StripeSessionID       string      `json:"stripe_session_id,omitempty"`
	StripePaymentIntentID string      `json:"stripe_payment_intent_id,omitempty"`
	PaidAt                *time.Time  `json:"paid_at,omitempty"`

	// Shipping contact, denormalized from the checkout request.
	ShippingFirstName string `json:"shipping_first_name,omitempty"`
	ShippingLastName  string `json:"shipping_last_name,omitempty"`
	ShippingEmail     string `json:"shipping_email,omitempty"`
	ShippingPhone     string `json:"shipping_phone,omitempty"`
	ShippingAddress   string `json:"shipping_address,omitempty"`
	ShippingCity      string `json:"shipping_city,omitempty"`
	ShippingState     string `json:"shipping_state,omitempty"`
	ShippingZipCode   string `json:"shipping_zip_code,omitempty"`
	ShippingCountry   string `json:"shipping_country,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem freezes the unit price at purchase time. Later product price
// changes never touch it.
type OrderItem struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string   `gorm:"index;size:36;not null" json:"order_id"`
	ProductID string   `gorm:"index;size:36;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

// ValidOrderStatus reports whether s is one of the known status values.
func ValidOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return OrderStatus(s), true
	}
	return "", false
}
