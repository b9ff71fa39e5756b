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

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// ListByOwner retrieves all customers of an owner.
func (r *GORMCustomerRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&customers).Error; err != nil {
		return nil, apperror.Database("failed to get customers", err)
	}
	return customers, nil
}

// NamesByOwner returns id and display name for each of an owner's customers.
func (r *GORMCustomerRepository) NamesByOwner(ctx context.Context, ownerID int64) ([]models.CustomerName, error) {
	names := []models.CustomerName{}
	err := r.db.WithContext(ctx).Model(&models.Customer{}).
		Select("id, firstname || ' ' || lastname AS customer_name").
		Where("owner_id = ?", ownerID).
		Order("id").
		Scan(&names).Error
	if err != nil {
		return nil, apperror.Database("failed to get customer names", err)
	}
	return names, nil
}

// GetByID retrieves a single customer.
func (r *GORMCustomerRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "owner_id = ? AND id = ?", ownerID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("customer", strconv.FormatInt(id, 10))
		}
		return nil, apperror.Database(fmt.Sprintf("failed to get customer %d", id), err)
	}
	return &customer, nil
}

// Create creates a new customer in the database.
func (r *GORMCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return apperror.Database("failed to create customer", err)
	}
	return nil
}

// UpdateColumn sets a single column. column must already be validated
// against the editable set; GORM quotes it as an identifier.
func (r *GORMCustomerRepository) UpdateColumn(ctx context.Context, ownerID, id int64, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update(column, value)
	if res.Error != nil {
		return apperror.Database("failed to update customer", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("customer", strconv.FormatInt(id, 10))
	}
	return nil
}

// Delete deletes a customer.
func (r *GORMCustomerRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, "owner_id = ? AND id = ?", ownerID, id)
	if res.Error != nil {
		return apperror.Database("failed to delete customer", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("customer", strconv.FormatInt(id, 10))
	}
	return nil
}
