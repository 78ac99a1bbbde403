package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"` // >= 0
	Stock       int     `gorm:"not null;default:0" json:"stock"`

	CategoryID uint `gorm:"index;not null" json:"category_id"`

	// Rating summary kept denormalized for quick reads; no write path
	// maintains these, the live numbers come from /resenas/top.
	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	ReviewCount   int     `gorm:"default:0" json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
