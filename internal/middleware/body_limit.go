package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// BodyLimit rejects requests whose body is larger than limit bytes with 413.
// The server wide limit still applies on top of it.
func BodyLimit(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"message": "Request body too large",
			})
		}
		return c.Next()
	}
}
