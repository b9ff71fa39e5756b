package repositories

import (
	"context"

	"bizprofile/internal/models"
)

// CustomerRepository defines the interface for customer data access. Every
// call is scoped to the owning account.
type CustomerRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Customer, error)
	NamesByOwner(ctx context.Context, ownerID int64) ([]models.CustomerName, error)
	GetByID(ctx context.Context, ownerID, id int64) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	UpdateColumn(ctx context.Context, ownerID, id int64, column string, value interface{}) error
	Delete(ctx context.Context, ownerID, id int64) error
}
