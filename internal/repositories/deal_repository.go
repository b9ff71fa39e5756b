package repositories

import (
	"context"

	"bizprofile/internal/models"
)

// DealRepository defines the interface for deal data access.
type DealRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Deal, error)
	GetByID(ctx context.Context, ownerID, id int64) (*models.Deal, error)
	Create(ctx context.Context, deal *models.Deal) error
	UpdateStatus(ctx context.Context, ownerID, id int64, change models.DealStatusChange) error
	Delete(ctx context.Context, ownerID, id int64) error
	Summary(ctx context.Context, ownerID int64) (*models.DashboardSummary, error)
}
