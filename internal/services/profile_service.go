package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"bizprofile/internal/apperror"
	"bizprofile/internal/media"
	"bizprofile/internal/models"
	"bizprofile/internal/repositories"
	"bizprofile/internal/storage"
)

const (
	usernameSuffixLen  = 5
	usernameMaxAttempt = 10
	alphanumerics      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ObjectStore is the part of the storage client the profile flow needs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket string, data []byte) (storage.Object, error)
	Overwrite(ctx context.Context, publicURL string, data []byte) (storage.Object, error)
}

// Buckets names the storage bucket of each media slot.
type Buckets struct {
	Photo string
	Cover string
}

// SlotAction is what has to happen to one media slot of a profile edit.
// It is one of KeepLink, OverwriteObject or CreateObject.
type SlotAction interface {
	slotAction()
}

// KeepLink stores URL as is. An empty URL clears the slot.
type KeepLink struct {
	URL string
}

// OverwriteObject replaces the bytes behind an already stored object.
type OverwriteObject struct {
	URL  string
	Data []byte
}

// CreateObject uploads bytes as a new object.
type CreateObject struct {
	Bucket string
	Data   []byte
}

func (KeepLink) slotAction()        {}
func (OverwriteObject) slotAction() {}
func (CreateObject) slotAction()    {}

// PlanSlot decides how a media slot is resolved. A previously stored
// reference is always overwritten in place; otherwise a link is kept and
// embedded bytes are uploaded to bucket.
func PlanSlot(bucket, old, payload string) (SlotAction, error) {
	old = strings.TrimSpace(old)
	payload = strings.TrimSpace(payload)

	switch {
	case payload == "":
		return KeepLink{URL: old}, nil
	case old != "":
		data, err := media.Decode(payload)
		if err != nil {
			return nil, err
		}
		return OverwriteObject{URL: old, Data: data}, nil
	case media.IsURL(payload):
		return KeepLink{URL: payload}, nil
	default:
		data, err := media.Decode(payload)
		if err != nil {
			return nil, err
		}
		return CreateObject{Bucket: bucket, Data: data}, nil
	}
}

// ResolvedSlot is the outcome of a slot action. MIME is empty for kept links.
type ResolvedSlot struct {
	URL  string
	MIME string
}

// ProfileService manages business card profiles and their media.
type ProfileService struct {
	repo    repositories.ProfileRepository
	store   ObjectStore
	buckets Buckets
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repositories.ProfileRepository, store ObjectStore, buckets Buckets) *ProfileService {
	return &ProfileService{
		repo:    repo,
		store:   store,
		buckets: buckets,
	}
}

// GetAllProfiles lists every profile.
func (s *ProfileService) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	return s.repo.GetAll(ctx)
}

// CreateProfile stores a new profile, generating a username when none is
// given. The existence check is best effort: two concurrent creates can
// pick the same name, in which case the unique index rejects the second.
func (s *ProfileService) CreateProfile(ctx context.Context, profile *models.Profile) error {
	profile.ID = 0
	if profile.Username == "" {
		username, err := s.generateUsername(ctx, profile.FirstName, profile.LastName)
		if err != nil {
			return err
		}
		profile.Username = username
	}
	if profile.Media == nil {
		profile.Media = datatypes.JSONSlice[models.Media]{}
	}
	if profile.Social == nil {
		profile.Social = datatypes.JSONSlice[models.Social]{}
	}
	return s.repo.Create(ctx, profile)
}

func (s *ProfileService) generateUsername(ctx context.Context, firstName, lastName string) (string, error) {
	for i := 0; i < usernameMaxAttempt; i++ {
		candidate := fmt.Sprintf("%s.%s.%s", firstName, lastName, randomSuffix(usernameSuffixLen))
		exists, err := s.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", apperror.Conflict("could not generate a unique username")
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumerics[rand.Intn(len(alphanumerics))]
	}
	return string(b)
}

// UpdateProfile resolves the photo and cover slots against object storage
// and then replaces the stored profile in one statement. A storage failure
// aborts before the database is touched; an object written before a later
// failure is left behind.
func (s *ProfileService) UpdateProfile(ctx context.Context, username string, req models.ProfileUpdate) (*models.Profile, error) {
	photo, err := s.resolve(ctx, s.buckets.Photo, req.OldPhoto, req.Photo)
	if err != nil {
		return nil, err
	}

	mediaList := req.Media
	if req.Cover != nil {
		cover, err := s.resolve(ctx, s.buckets.Cover, req.Cover.Old, req.Cover.Payload)
		if err != nil {
			return nil, err
		}
		mediaList = withCover(req.Media, req.Cover, cover)
	}

	profile := &models.Profile{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Title:        req.Title,
		Bio:          req.Bio,
		Photo:        photo.URL,
		QRCode:       req.QRCode,
		Theme:        req.Theme,
		Media:        datatypes.JSONSlice[models.Media](nonNil(mediaList)),
		Social:       datatypes.JSONSlice[models.Social](nonNil(req.Social)),
		LinkableID:   req.LinkableID,
		LinkableType: req.LinkableType,
		CampaignID:   req.CampaignID,
		Address:      req.Address,
		Suburb:       req.Suburb,
		PostCode:     req.PostCode,
		Country:      req.Country,
		State:        req.State,
		Type:         req.Type,
	}
	return s.repo.Update(ctx, username, profile)
}

// DeleteProfile removes a profile by username.
func (s *ProfileService) DeleteProfile(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

func (s *ProfileService) resolve(ctx context.Context, bucket, old, payload string) (ResolvedSlot, error) {
	action, err := PlanSlot(bucket, old, payload)
	if err != nil {
		return ResolvedSlot{}, err
	}

	if _, keep := action.(KeepLink); !keep && s.store == nil {
		return ResolvedSlot{}, apperror.Upload(bucket, errors.New("object storage is not configured"))
	}

	switch a := action.(type) {
	case KeepLink:
		return ResolvedSlot{URL: a.URL}, nil
	case OverwriteObject:
		obj, err := s.store.Overwrite(ctx, a.URL, a.Data)
		if err != nil {
			return ResolvedSlot{}, err
		}
		return ResolvedSlot{URL: obj.URL, MIME: obj.MIME}, nil
	case CreateObject:
		obj, err := s.store.Upload(ctx, a.Bucket, a.Data)
		if err != nil {
			return ResolvedSlot{}, err
		}
		logrus.WithFields(logrus.Fields{"bucket": a.Bucket, "url": obj.URL}).Debug("profile media uploaded")
		return ResolvedSlot{URL: obj.URL, MIME: obj.MIME}, nil
	default:
		return ResolvedSlot{}, fmt.Errorf("unhandled slot action %T", action)
	}
}

// withCover puts the resolved cover first and drops any other entry that
// points at the same object.
func withCover(existing []models.Media, req *models.CoverUpdate, cover ResolvedSlot) []models.Media {
	out := make([]models.Media, 0, len(existing)+1)
	if cover.URL != "" {
		out = append(out, models.Media{
			Info: req.Info,
			Type: coverType(req.Type, cover.MIME),
			URL:  cover.URL,
		})
	}
	for _, m := range existing {
		if (cover.URL != "" && m.URL == cover.URL) || (req.Old != "" && m.URL == req.Old) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func coverType(claimed, mime string) string {
	if mime != "" {
		return media.Category(mime)
	}
	if claimed == media.CategoryVideo {
		return media.CategoryVideo
	}
	return media.CategoryImage
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
