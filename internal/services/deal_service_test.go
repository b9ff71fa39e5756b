package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizprofile/internal/models"
	"bizprofile/internal/services"
)

// MockDealRepository is a mock implementation of repositories.DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Deal, error) {
	args := m.Called(ownerID)
	return args.Get(0).([]models.Deal), args.Error(1)
}

func (m *MockDealRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.Deal, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deal), args.Error(1)
}

func (m *MockDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	return m.Called(deal).Error(0)
}

func (m *MockDealRepository) UpdateStatus(ctx context.Context, ownerID, id int64, change models.DealStatusChange) error {
	return m.Called(ownerID, id, change).Error(0)
}

func (m *MockDealRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return m.Called(ownerID, id).Error(0)
}

func (m *MockDealRepository) Summary(ctx context.Context, ownerID int64) (*models.DashboardSummary, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

func TestDealService_CreateDealDefaults(t *testing.T) {
	repo := new(MockDealRepository)
	svc := services.NewDealService(repo)
	repo.On("Create", mock.AnythingOfType("*models.Deal")).Return(nil).Once()

	deal := &models.Deal{ID: 12, OwnerID: 99, CustomerID: 4, EstimateWorth: 100}
	require.NoError(t, svc.CreateDeal(context.Background(), 7, deal))

	assert.Zero(t, deal.ID)
	assert.Equal(t, int64(7), deal.OwnerID)
	assert.Equal(t, models.DealOpen, deal.Status)
	assert.False(t, deal.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestDealService_Dashboard(t *testing.T) {
	repo := new(MockDealRepository)
	svc := services.NewDealService(repo)
	want := &models.DashboardSummary{Customers: 3, OpenDeals: 2, Revenue: 900}
	repo.On("Summary", int64(7)).Return(want, nil).Once()

	got, err := svc.Dashboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
