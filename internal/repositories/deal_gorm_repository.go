package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
)

// GORMDealRepository is a GORM implementation of DealRepository.
type GORMDealRepository struct {
	db *gorm.DB
}

// NewGORMDealRepository creates a new instance of GORMDealRepository.
func NewGORMDealRepository(db *gorm.DB) *GORMDealRepository {
	return &GORMDealRepository{db: db}
}

func (r *GORMDealRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Deal, error) {
	deals := []models.Deal{}
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&deals).Error; err != nil {
		return nil, apperror.Database("failed to get deals", err)
	}
	return deals, nil
}

func (r *GORMDealRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.WithContext(ctx).First(&deal, "owner_id = ? AND id = ?", ownerID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("deal", strconv.FormatInt(id, 10))
		}
		return nil, apperror.Database(fmt.Sprintf("failed to get deal %d", id), err)
	}
	return &deal, nil
}

// Create inserts a deal. The customer must belong to the same owner, which
// is checked by the insert itself.
func (r *GORMDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	res := r.db.WithContext(ctx).Raw(
		`INSERT INTO deals (owner_id, customer_id, status, estimate_worth, actual_worth, closing_date, created_at)
		 SELECT ?, id, ?, ?, ?, ?, ? FROM customers WHERE id = ? AND owner_id = ?
		 RETURNING id`,
		deal.OwnerID, deal.Status, deal.EstimateWorth, deal.ActualWorth, deal.ClosingDate, deal.CreatedAt,
		deal.CustomerID, deal.OwnerID,
	).Scan(&deal.ID)
	if res.Error != nil {
		return apperror.Database("failed to create deal", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("customer", strconv.FormatInt(deal.CustomerID, 10))
	}
	return nil
}

func (r *GORMDealRepository) UpdateStatus(ctx context.Context, ownerID, id int64, change models.DealStatusChange) error {
	updates := map[string]interface{}{"status": change.Status}
	if change.ActualWorth != nil {
		updates["actual_worth"] = *change.ActualWorth
	}
	res := r.db.WithContext(ctx).Model(&models.Deal{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Updates(updates)
	if res.Error != nil {
		return apperror.Database("failed to update deal", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("deal", strconv.FormatInt(id, 10))
	}
	return nil
}

func (r *GORMDealRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Deal{}, "owner_id = ? AND id = ?", ownerID, id)
	if res.Error != nil {
		return apperror.Database("failed to delete deal", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("deal", strconv.FormatInt(id, 10))
	}
	return nil
}

// Summary computes the dashboard figures in a single statement.
func (r *GORMDealRepository) Summary(ctx context.Context, ownerID int64) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	err := r.db.WithContext(ctx).Raw(
		`SELECT
			(SELECT COUNT(*) FROM customers WHERE owner_id = ?) AS customers,
			(SELECT COUNT(*) FROM deals WHERE owner_id = ? AND status = ?) AS open_deals,
			(SELECT COALESCE(SUM(COALESCE(actual_worth, estimate_worth)), 0) FROM deals WHERE owner_id = ? AND status = ?) AS revenue`,
		ownerID, ownerID, models.DealOpen, ownerID, models.DealWon,
	).Scan(&summary).Error
	if err != nil {
		return nil, apperror.Database("failed to load dashboard", err)
	}
	return &summary, nil
}
