package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
	"bizprofile/internal/services"
	"bizprofile/internal/storage"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 24)...)
	pngB64   = base64.StdEncoding.EncodeToString(pngBytes)
	buckets  = services.Buckets{Photo: "profile-images", Cover: "cover-media"}
)

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	args := m.Called()
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockProfileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, username string, profile *models.Profile) (*models.Profile, error) {
	args := m.Called(username, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Delete(ctx context.Context, username string) error {
	return m.Called(username).Error(0)
}

// MockObjectStore is a mock implementation of services.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, bucket string, data []byte) (storage.Object, error) {
	args := m.Called(bucket, data)
	return args.Get(0).(storage.Object), args.Error(1)
}

func (m *MockObjectStore) Overwrite(ctx context.Context, publicURL string, data []byte) (storage.Object, error) {
	args := m.Called(publicURL, data)
	return args.Get(0).(storage.Object), args.Error(1)
}

func TestPlanSlot(t *testing.T) {
	const old = "https://cdn.test/object/public/profile-images/a.png"

	tests := []struct {
		name    string
		old     string
		payload string
		want    services.SlotAction
		wantErr error
	}{
		{name: "empty payload keeps old", old: old, payload: "", want: services.KeepLink{URL: old}},
		{name: "nothing at all", want: services.KeepLink{URL: ""}},
		{name: "link without old is kept", payload: "https://img.example.com/me.png", want: services.KeepLink{URL: "https://img.example.com/me.png"}},
		{name: "bytes with old overwrite", old: old, payload: pngB64, want: services.OverwriteObject{URL: old, Data: pngBytes}},
		{name: "data uri without old is created", payload: "data:image/png;base64," + pngB64, want: services.CreateObject{Bucket: "profile-images", Data: pngBytes}},
		{name: "link with old fails decoding", old: old, payload: "https://img.example.com/me.png", wantErr: apperror.ErrDecode},
		{name: "garbage fails decoding", payload: "***", wantErr: apperror.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.PlanSlot("profile-images", tt.old, tt.payload)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileService_CreateProfileGeneratesUsername(t *testing.T) {
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo, new(MockObjectStore), buckets)

	repo.On("UsernameExists", mock.Anything).Return(true, nil).Once()
	repo.On("UsernameExists", mock.Anything).Return(false, nil).Once()
	repo.On("Create", mock.AnythingOfType("*models.Profile")).Return(nil).Once()

	profile := &models.Profile{FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, svc.CreateProfile(context.Background(), profile))

	assert.True(t, strings.HasPrefix(profile.Username, "Jane.Doe."), profile.Username)
	assert.Len(t, strings.TrimPrefix(profile.Username, "Jane.Doe."), 5)
	assert.NotNil(t, profile.Media)
	assert.NotNil(t, profile.Social)
	repo.AssertExpectations(t)
}

func TestProfileService_CreateProfileGivesUp(t *testing.T) {
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo, new(MockObjectStore), buckets)
	repo.On("UsernameExists", mock.Anything).Return(true, nil)

	err := svc.CreateProfile(context.Background(), &models.Profile{FirstName: "Jane", LastName: "Doe"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	repo.AssertNotCalled(t, "Create", mock.Anything)
	repo.AssertNumberOfCalls(t, "UsernameExists", 10)
}

func TestProfileService_CreateProfileKeepsGivenUsername(t *testing.T) {
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo, new(MockObjectStore), buckets)
	repo.On("Create", mock.AnythingOfType("*models.Profile")).Return(nil).Once()

	profile := &models.Profile{Username: "jane", FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, svc.CreateProfile(context.Background(), profile))
	assert.Equal(t, "jane", profile.Username)
	repo.AssertNotCalled(t, "UsernameExists", mock.Anything)
}

func TestProfileService_UpdateProfileUploadsNewPhoto(t *testing.T) {
	repo := new(MockProfileRepository)
	store := new(MockObjectStore)
	svc := services.NewProfileService(repo, store, buckets)

	uploaded := storage.Object{URL: "https://cdn.test/object/public/profile-images/new.png", MIME: "image/png"}
	store.On("Upload", "profile-images", pngBytes).Return(uploaded, nil).Once()
	repo.On("Update", "jane", mock.MatchedBy(func(p *models.Profile) bool {
		return p.Photo == uploaded.URL && p.FirstName == "Jane" && p.Media != nil && p.Social != nil
	})).Return(&models.Profile{Username: "jane", Photo: uploaded.URL}, nil).Once()

	got, err := svc.UpdateProfile(context.Background(), "jane", models.ProfileUpdate{
		FirstName: "Jane",
		LastName:  "Doe",
		Photo:     "data:image/png;base64," + pngB64,
	})
	require.NoError(t, err)
	assert.Equal(t, uploaded.URL, got.Photo)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Overwrite", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestProfileService_UpdateProfileOverwritesCover(t *testing.T) {
	repo := new(MockProfileRepository)
	store := new(MockObjectStore)
	svc := services.NewProfileService(repo, store, buckets)

	oldCover := "https://cdn.test/object/public/cover-media/c.png"
	store.On("Overwrite", oldCover, pngBytes).Return(storage.Object{URL: oldCover, MIME: "image/png"}, nil).Once()

	var saved *models.Profile
	repo.On("Update", "jane", mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Profile) }).
		Return(&models.Profile{Username: "jane"}, nil).Once()

	_, err := svc.UpdateProfile(context.Background(), "jane", models.ProfileUpdate{
		FirstName: "Jane",
		LastName:  "Doe",
		Photo:     "https://img.example.com/me.png",
		Cover:     &models.CoverUpdate{Info: "hero", Type: "video", Payload: pngB64, Old: oldCover},
		Media: []models.Media{
			{Info: "gallery", Type: "image", URL: "https://img.example.com/1.png"},
			{Info: "stale cover", Type: "image", URL: oldCover},
		},
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)

	require.NotNil(t, saved)
	assert.Equal(t, "https://img.example.com/me.png", saved.Photo)
	require.Len(t, saved.Media, 2)
	// The detected type wins over the claimed one.
	assert.Equal(t, models.Media{Info: "hero", Type: "image", URL: oldCover}, saved.Media[0])
	assert.Equal(t, "https://img.example.com/1.png", saved.Media[1].URL)
}

func TestProfileService_UpdateProfileEmptyCoverKeepsMedia(t *testing.T) {
	repo := new(MockProfileRepository)
	store := new(MockObjectStore)
	svc := services.NewProfileService(repo, store, buckets)

	var saved *models.Profile
	repo.On("Update", "jane", mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Profile) }).
		Return(&models.Profile{Username: "jane"}, nil).Once()

	existing := []models.Media{
		{Info: "caption only", Type: "image", URL: ""},
		{Info: "gallery", Type: "image", URL: "https://img.example.com/1.png"},
	}
	_, err := svc.UpdateProfile(context.Background(), "jane", models.ProfileUpdate{
		FirstName: "Jane",
		LastName:  "Doe",
		Cover:     &models.CoverUpdate{Info: "hero", Type: "image"},
		Media:     existing,
	})
	require.NoError(t, err)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Overwrite", mock.Anything, mock.Anything)

	require.NotNil(t, saved)
	assert.Equal(t, existing, []models.Media(saved.Media))
}

func TestProfileService_UpdateProfileStorageFailure(t *testing.T) {
	repo := new(MockProfileRepository)
	store := new(MockObjectStore)
	svc := services.NewProfileService(repo, store, buckets)

	store.On("Upload", "profile-images", pngBytes).
		Return(storage.Object{}, apperror.Upload("profile-images", errors.New("503"))).Once()

	_, err := svc.UpdateProfile(context.Background(), "jane", models.ProfileUpdate{
		FirstName: "Jane",
		LastName:  "Doe",
		Photo:     pngB64,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpload))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfileWithoutStore(t *testing.T) {
	repo := new(MockProfileRepository)
	svc := services.NewProfileService(repo, nil, buckets)

	_, err := svc.UpdateProfile(context.Background(), "jane", models.ProfileUpdate{
		FirstName: "Jane",
		LastName:  "Doe",
		Photo:     pngB64,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpload))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
