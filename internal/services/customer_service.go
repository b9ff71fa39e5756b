package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
	"bizprofile/internal/repositories"
)

// editableCustomerColumns maps the column names clients may send to the
// database identifiers they are allowed to change, and the rules the new
// value must pass. The rules match the tags on models.Customer.
var editableCustomerColumns = map[string]struct {
	column string
	rules  string
}{
	"firstname": {column: "firstname", rules: "required,max=100"},
	"lastname":  {column: "lastname", rules: "required,max=100"},
	"email":     {column: "email", rules: "required,email"},
	"phone":     {column: "phone", rules: "required,max=32"},
	"priority":  {column: "priority", rules: "gte=0,lte=10"},
}

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	validate *validator.Validate
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetAllCustomers retrieves the owner's customers.
func (s *CustomerService) GetAllCustomers(ctx context.Context, ownerID int64) ([]models.Customer, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetCustomerNames retrieves id and display name of the owner's customers.
func (s *CustomerService) GetCustomerNames(ctx context.Context, ownerID int64) ([]models.CustomerName, error) {
	return s.repo.NamesByOwner(ctx, ownerID)
}

// GetCustomerByID retrieves a single customer.
func (s *CustomerService) GetCustomerByID(ctx context.Context, ownerID, id int64) (*models.Customer, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// CreateCustomer creates a customer owned by ownerID.
func (s *CustomerService) CreateCustomer(ctx context.Context, ownerID int64, customer *models.Customer) error {
	customer.ID = 0
	customer.OwnerID = ownerID
	return s.repo.Create(ctx, customer)
}

// EditCustomer changes one column of a customer. Only the columns in the
// editable set are accepted.
func (s *CustomerService) EditCustomer(ctx context.Context, ownerID, id int64, change models.CustomerChange) error {
	editable, ok := editableCustomerColumns[strings.ToLower(strings.TrimSpace(change.Column))]
	if !ok {
		return apperror.Validation(fmt.Sprintf("column '%s' cannot be edited", change.Column))
	}

	var value interface{} = change.NewValue
	if editable.column == "priority" {
		priority, err := strconv.ParseInt(strings.TrimSpace(change.NewValue), 10, 16)
		if err != nil {
			return apperror.Validation(fmt.Sprintf("priority must be an integer, got '%s'", change.NewValue))
		}
		value = int16(priority)
	}

	if err := s.validate.Var(value, editable.rules); err != nil {
		return apperror.New(apperror.ErrValidation, fmt.Sprintf("invalid value for %s", editable.column), err)
	}

	return s.repo.UpdateColumn(ctx, ownerID, id, editable.column, value)
}

// DeleteCustomer deletes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}
