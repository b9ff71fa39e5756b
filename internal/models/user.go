package models

import "time"

// User is an account that can log in to the dashboard.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      string    `json:"role" gorm:"type:varchar(32);not null;default:user"`
	CreatedAt time.Time `json:"created_at"`
}

// Role values.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
