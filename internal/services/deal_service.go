package services

import (
	"context"
	"time"

	"bizprofile/internal/models"
	"bizprofile/internal/repositories"
)

// DealService handles business logic related to deals and the dashboard.
type DealService struct {
	repo repositories.DealRepository
}

// NewDealService creates a new DealService.
func NewDealService(repo repositories.DealRepository) *DealService {
	return &DealService{repo: repo}
}

func (s *DealService) GetAllDeals(ctx context.Context, ownerID int64) ([]models.Deal, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *DealService) GetDealByID(ctx context.Context, ownerID, id int64) (*models.Deal, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// CreateDeal opens a deal against one of the owner's customers.
func (s *DealService) CreateDeal(ctx context.Context, ownerID int64, deal *models.Deal) error {
	deal.ID = 0
	deal.OwnerID = ownerID
	if deal.Status == "" {
		deal.Status = models.DealOpen
	}
	deal.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, deal)
}

func (s *DealService) UpdateDealStatus(ctx context.Context, ownerID, id int64, change models.DealStatusChange) error {
	return s.repo.UpdateStatus(ctx, ownerID, id, change)
}

func (s *DealService) DeleteDeal(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// Dashboard summarises the owner's customers and pipeline.
func (s *DealService) Dashboard(ctx context.Context, ownerID int64) (*models.DashboardSummary, error) {
	return s.repo.Summary(ctx, ownerID)
}
