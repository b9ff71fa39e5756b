package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"bizprofile/internal/models"
)

const identityKey = "identity"

// SessionValidator resolves a session token to an identity.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.Identity, error)
}

// SessionRequired rejects requests without a valid session cookie before
// the route handler runs. The cookie is decrypted by the encryptcookie
// middleware registered ahead of it.
func SessionRequired(validator SessionValidator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Session cookie is required",
			})
		}

		identity, err := validator.ValidateSession(c.UserContext(), token)
		if err != nil {
			logrus.WithError(err).WithField("path", c.Path()).Debug("session validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by SessionRequired.
func IdentityFrom(c *fiber.Ctx) (*models.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*models.Identity)
	return identity, ok && identity != nil
}
