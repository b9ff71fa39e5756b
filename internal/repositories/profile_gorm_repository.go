package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{db: db}
}

func (r *GORMProfileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := r.db.WithContext(ctx).Order("id").Find(&profiles).Error; err != nil {
		return nil, apperror.Database("failed to get users", err)
	}
	return profiles, nil
}

func (r *GORMProfileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, apperror.Database("failed to check username", err)
	}
	return count > 0, nil
}

func (r *GORMProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(fmt.Sprintf("username '%s' already taken", profile.Username))
		}
		return apperror.Database("failed to create user", err)
	}
	return nil
}

// Update replaces every mutable column of the profile, JSON columns
// included, and returns the stored row.
func (r *GORMProfileRepository) Update(ctx context.Context, username string, profile *models.Profile) (*models.Profile, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Profile{}).
		Where("username = ?", username).
		Select("*").
		Omit("id", "created_at", "username").
		Updates(profile)
	if res.Error != nil {
		return nil, apperror.Database("failed to update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("user", username)
	}

	var updated models.Profile
	if err := db.First(&updated, "username = ?", username).Error; err != nil {
		return nil, apperror.Database("failed to reload user", err)
	}
	return &updated, nil
}

func (r *GORMProfileRepository) Delete(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).Delete(&models.Profile{}, "username = ?", username)
	if res.Error != nil {
		return apperror.Database("failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("user", username)
	}
	return nil
}
