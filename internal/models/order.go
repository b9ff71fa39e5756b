package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultOrderName tags orders created without an explicit name.
const DefaultOrderName = "order"

// Order is a free-form JSON document with a name tag. Its shape is owned by
// the client.
type Order struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Data      datatypes.JSON `json:"data" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
}
