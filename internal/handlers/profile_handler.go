package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bizprofile/internal/apperror"
	"bizprofile/internal/models"
	"bizprofile/internal/services"
)

// ProfileHandler handles HTTP requests for public business card profiles.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/user")
	userRoutes.Post("/create", h.HandleCreateProfile)
	userRoutes.Put("/update/:username", h.HandleUpdateProfile)
	userRoutes.Get("/get", h.HandleGetProfiles)
	userRoutes.Delete("/delete/:username", h.HandleDeleteProfile)
}

// CreateProfileRequest is the body of a profile creation. Username is
// generated from the names when left empty.
type CreateProfileRequest struct {
	Username  string          `json:"username"`
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name" validate:"required"`
	Email     string          `json:"email" validate:"omitempty,email"`
	Phone     string          `json:"phone"`
	Title     string          `json:"title"`
	Bio       string          `json:"bio"`
	Theme     string          `json:"theme"`
	Media     []models.Media  `json:"media"`
	Social    []models.Social `json:"social"`
}

func (h *ProfileHandler) HandleCreateProfile(c *fiber.Ctx) error {
	var req CreateProfileRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	profile := &models.Profile{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Title:     req.Title,
		Bio:       req.Bio,
		Theme:     req.Theme,
		Media:     req.Media,
		Social:    req.Social,
	}
	if err := h.service.CreateProfile(c.UserContext(), profile); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// HandleUpdateProfile resolves the media slots of the edit and replaces the
// stored profile.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return respondError(c, apperror.Validation("username is required"))
	}

	var req models.ProfileUpdate
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := h.service.UpdateProfile(c.UserContext(), username, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) HandleGetProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.GetAllProfiles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

func (h *ProfileHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	if err := h.service.DeleteProfile(c.UserContext(), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
