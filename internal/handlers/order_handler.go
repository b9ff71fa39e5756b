package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bizprofile/internal/services"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/order")
	orderRoutes.Post("/create", h.HandleCreateOrder)
	orderRoutes.Get("/get", h.HandleGetOrders)
}

// HandleCreateOrder stores the raw request body as an order document.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	if _, err := h.orderService.CreateOrder(c.UserContext(), c.Query("name"), c.Body()); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).SendString("Order created!")
}

func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
