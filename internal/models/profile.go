package models

import (
	"time"

	"gorm.io/datatypes"
)

// Media is one entry of a profile's media gallery.
type Media struct {
	Info string `json:"info"`
	Type string `json:"type"`
	URL  string `json:"media-url"`
}

// Social is a link to one of the profile owner's social accounts.
type Social struct {
	Link     string `json:"link"`
	Icons    string `json:"icons"`
	Platform string `json:"platform"`
}

// Profile is a public business card stored in the profiles database.
type Profile struct {
	ID           int64                       `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time                   `json:"created_at"`
	FirstName    string                      `json:"first_name"`
	LastName     string                      `json:"last_name"`
	Username     string                      `json:"username" gorm:"uniqueIndex;not null"`
	Email        string                      `json:"email"`
	Phone        string                      `json:"phone"`
	Title        string                      `json:"title"`
	Bio          string                      `json:"bio"`
	Photo        string                      `json:"photo"`
	QRCode       *string                     `json:"qr_code" gorm:"column:qr_code"`
	Theme        string                      `json:"theme"`
	Media        datatypes.JSONSlice[Media]  `json:"media"`
	Social       datatypes.JSONSlice[Social] `json:"social"`
	LinkableID   *int64                      `json:"linkable_id"`
	LinkableType *string                     `json:"linkable_type"`
	CampaignID   *int64                      `json:"campaign_id"`
	Address      *string                     `json:"address"`
	Suburb       *string                     `json:"suburb"`
	PostCode     *string                     `json:"post_code"`
	Country      *string                     `json:"country"`
	State        *string                     `json:"state"`
	Type         *string                     `json:"type"`
}

// TableName keeps the profile table name independent of the struct name.
func (Profile) TableName() string {
	return "users"
}

// CoverUpdate describes the cover slot of a profile edit.
type CoverUpdate struct {
	Info    string `json:"info"`
	Type    string `json:"type"`
	Payload string `json:"media"`
	Old     string `json:"old_media"`
}

// ProfileUpdate is the body of a profile edit. Photo and Cover.Payload may be
// a link, a raw base64 blob or a data URI.
type ProfileUpdate struct {
	FirstName    string       `json:"first_name" validate:"required"`
	LastName     string       `json:"last_name" validate:"required"`
	Email        string       `json:"email" validate:"omitempty,email"`
	Phone        string       `json:"phone"`
	Title        string       `json:"title"`
	Bio          string       `json:"bio"`
	Photo        string       `json:"photo"`
	OldPhoto     string       `json:"old_photo"`
	Cover        *CoverUpdate `json:"cover"`
	QRCode       *string      `json:"qr_code"`
	Theme        string       `json:"theme"`
	Media        []Media      `json:"media"`
	Social       []Social     `json:"social"`
	LinkableID   *int64       `json:"linkable_id"`
	LinkableType *string      `json:"linkable_type"`
	CampaignID   *int64       `json:"campaign_id"`
	Address      *string      `json:"address"`
	Suburb       *string      `json:"suburb"`
	PostCode     *string      `json:"post_code"`
	Country      *string      `json:"country"`
	State        *string      `json:"state"`
	Type         *string      `json:"type"`
}
