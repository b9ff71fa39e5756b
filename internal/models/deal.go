package models

import "time"

// Deal statuses.
const (
	DealOpen = "open"
	DealWon  = "won"
	DealLost = "lost"
)

// Deal is a sales opportunity with one of the owner's customers.
type Deal struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	OwnerID       int64      `json:"-" gorm:"index;not null"`
	CustomerID    int64      `json:"customer_id" gorm:"index;not null" validate:"required,gt=0"`
	Status        string     `json:"status" gorm:"type:varchar(16);not null;default:open" validate:"omitempty,oneof=open won lost"`
	EstimateWorth int64      `json:"estimate_worth" validate:"gte=0"`
	ActualWorth   *int64     `json:"actual_worth,omitempty" validate:"omitempty,gte=0"`
	ClosingDate   *time.Time `json:"closing_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DealStatusChange is the body of a deal edit.
type DealStatusChange struct {
	Status      string `json:"status" validate:"required,oneof=open won lost"`
	ActualWorth *int64 `json:"actual_worth" validate:"omitempty,gte=0"`
}

// DashboardSummary aggregates a user's pipeline.
type DashboardSummary struct {
	Customers int64 `json:"customers"`
	OpenDeals int64 `json:"open_deals"`
	Revenue   int64 `json:"revenue"`
}
