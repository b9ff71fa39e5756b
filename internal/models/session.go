package models

import "time"

// Session is the server side half of a login. Its ID is the opaque token
// carried, signed and encrypted, in the session cookie.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    int64     `gorm:"index;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is what the session gate attaches to an authenticated request.
type Identity struct {
	SessionID string `json:"-"`
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
