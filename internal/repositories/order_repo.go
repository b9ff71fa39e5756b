package repositories

import (
	"context"

	"bizprofile/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
}
