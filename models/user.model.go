package models

import (
	"time"
)

// Roles recognized by the authorization middleware
const (
	RoleCustomer      = "customer"
	RoleAdministrator = "administrator"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialized

	// Optional contact info
	Address string  `gorm:"type:text" json:"address,omitempty"`
	Phone   *string `gorm:"size:20" json:"phone,omitempty"`

	Role string `gorm:"default:'customer';size:20" json:"role"` // customer, administrator

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
