package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
	"bizprofile/internal/repositories"
)

// AuthService handles registration, login and session validation.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtSecret   []byte
	sessionTTL  time.Duration
	now         func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
		now:         time.Now,
	}
}

// SessionTTL is how long a freshly issued session stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// RegisterUser creates an account with a bcrypt hashed password. New
// accounts always get the user role.
func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf("email '%s' already registered", email))
	}
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginUser verifies credentials, opens a session and returns the signed
// token to place in the session cookie.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, *models.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", nil, apperror.Unauthorized("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperror.Unauthorized("invalid credentials")
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     session.ID,
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     session.ExpiresAt.Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "session": session.ID}).Info("session opened")
	return tokenString, session, nil
}

// ValidateToken checks the signature and expiry of a session token and
// returns the session id it names. It never touches the database.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", apperror.New(apperror.ErrAuth, "invalid session token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperror.Unauthorized("invalid session token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", apperror.Unauthorized("invalid session token")
	}
	return sid, nil
}

// ValidateSession resolves a session token to the identity behind it.
// Expired sessions are removed as they are found.
func (s *AuthService) ValidateSession(ctx context.Context, tokenString string) (*models.Identity, error) {
	sid, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByID(ctx, sid)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("session not found")
		}
		return nil, err
	}

	if session.Expired(s.now()) {
		if err := s.sessionRepo.Delete(ctx, sid); err != nil {
			logrus.WithError(err).WithField("session", sid).Warn("failed to remove expired session")
		}
		return nil, apperror.Unauthorized("session expired")
	}

	return &models.Identity{
		SessionID: session.ID,
		UserID:    session.UserID,
		Email:     session.User.Email,
		Role:      session.User.Role,
	}, nil
}

// Logout ends the session named by the token. Invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	sid, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sid)
}
