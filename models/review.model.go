package models

import "time"

// Review is capped at one per (user, product) by the composite unique index.
type Review struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"product_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `gorm:"type:text;not null" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
