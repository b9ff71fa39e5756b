package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bizprofile/internal/services"
)

// PaymentHandler starts subscription checkouts for the session user.
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers the payment routes behind the session gate.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	paymentRoutes := router.Group("/payments", gate)
	paymentRoutes.Post("/pay", h.HandlePay)
}

func (h *PaymentHandler) HandlePay(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	url, err := h.paymentService.CreateCheckout(c.UserContext(), user.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
