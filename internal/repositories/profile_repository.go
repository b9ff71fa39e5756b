package repositories

import (
	"context"

	"bizprofile/internal/models"
)

// ProfileRepository defines the interface for profile data access. It is
// backed by the profiles database, not the primary one.
type ProfileRepository interface {
	GetAll(ctx context.Context) ([]models.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, username string, profile *models.Profile) (*models.Profile, error)
	Delete(ctx context.Context, username string) error
}
