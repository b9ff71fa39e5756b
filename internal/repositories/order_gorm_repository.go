package repositories

import (
	"context"

	"gorm.io/gorm"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll returns every stored order, oldest first.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, apperror.Database("failed to get orders", err)
	}
	return orders, nil
}

// Create stores an order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return apperror.Database("failed to create order", err)
	}
	return nil
}
