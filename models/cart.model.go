package models

import "time"

// Cart is 1:1 with its owner; the unique index on UserID enforces it.
type Cart struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem holds one line per product; adding an existing product
// increments Quantity instead of appending a second line.
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	CartID    uint `gorm:"index;not null" json:"-"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"` // >= 1

	// Relations
	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}
