package models

import "time"

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ReviewableStatuses are the order statuses that count as a completed
// purchase when gating product reviews.
var ReviewableStatuses = []string{OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered}

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	Total         float64 `gorm:"not null" json:"total"`
	PaymentMethod string  `gorm:"size:50;not null" json:"payment_method"`
	Status        string  `gorm:"default:'pending';size:20" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a snapshot of the product at purchase time. Name and price
// are copied, not referenced, so later catalog changes never alter the
// historical order.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	OrderID uint `gorm:"index;not null" json:"-"`

	ProductID   uint    `gorm:"not null" json:"product_id"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Subtotal    float64 `gorm:"not null" json:"subtotal"`
}
