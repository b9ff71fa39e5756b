package models

import "time"

// Customer is a contact owned by a dashboard user.
type Customer struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstName" gorm:"column:firstname;not null" validate:"required,max=100"`
	LastName  string    `json:"lastName" gorm:"column:lastname;not null" validate:"required,max=100"`
	Email     string    `json:"email" gorm:"not null" validate:"required,email"`
	Phone     string    `json:"phone" gorm:"not null" validate:"required,max=32"`
	Priority  int16     `json:"priority" gorm:"type:smallint;not null" validate:"gte=0,lte=10"`
	OwnerID   int64     `json:"-" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerName is the id/label pair used by customer pickers.
type CustomerName struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
}

// CustomerChange sets one column of a customer to a new value.
type CustomerChange struct {
	Column   string `json:"columnname" validate:"required"`
	NewValue string `json:"new_value"`
}
