package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bizprofile/internal/services"
)

// SubscribeHandler adds visitors to the newsletter list.
type SubscribeHandler struct {
	service  *services.SubscriptionService
	validate *validator.Validate
}

// NewSubscribeHandler creates a new SubscribeHandler.
func NewSubscribeHandler(service *services.SubscriptionService) *SubscribeHandler {
	return &SubscribeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the subscribe and health routes.
func (h *SubscribeHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/subscribe", h.HandleSubscribe)
	router.Get("/health", HandleHealth)
}

// SubscribeRequest is the body of a newsletter subscription.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *SubscribeHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.service.Subscribe(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Subscribed successfully",
	})
}

// HandleHealth answers liveness probes.
func HandleHealth(c *fiber.Ctx) error {
	return c.SendString("Hello world!")
}
