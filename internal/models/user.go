package models

import "time"

// Admin roles. "admin" may do everything; "editor" manages content but may
// not delete business entities or contact messages.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type AdminUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:60;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // hashé (bcrypt)
	Role      string    `gorm:"size:20;not null;default:'editor'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
