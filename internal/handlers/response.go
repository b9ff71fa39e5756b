package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"bizprofile/internal/apperror"
	"bizprofile/internal/middleware"
	"bizprofile/internal/models"
)

// validationFailure carries per-field validator messages.
type validationFailure struct {
	fields map[string]string
}

func (v *validationFailure) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v.fields))
}

// bindBody parses the JSON body into dst and runs struct validation on it.
func bindBody(c *fiber.Ctx, validate *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.New(apperror.ErrValidation, "Invalid request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return apperror.New(apperror.ErrValidation, "Invalid request body", err)
		}
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return &validationFailure{fields: fields}
	}
	return nil
}

// idParam reads a numeric :id route parameter.
func idParam(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation(fmt.Sprintf("invalid id '%s'", raw))
	}
	return id, nil
}

// currentUser returns the identity of a session gated request.
func currentUser(c *fiber.Ctx) (*models.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, apperror.Unauthorized("no session on request")
	}
	return identity, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrDecode), errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrAuth):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperror.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error response for err.
func respondError(c *fiber.Ctx, err error) error {
	var vf *validationFailure
	if errors.As(err, &vf) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  vf.fields,
		})
	}

	status := statusFor(err)
	body := fiber.Map{}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		body["message"] = appErr.Message
		if appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
	} else {
		body["message"] = "Internal server error"
		body["error"] = err.Error()
	}

	entry := logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"status": status,
	}).WithError(err)
	if status >= fiber.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	return c.Status(status).JSON(body)
}
