package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bizprofile/internal/models"
	"bizprofile/internal/services"
)

// DealHandler handles HTTP requests for deals and the dashboard.
type DealHandler struct {
	service  *services.DealService
	validate *validator.Validate
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(service *services.DealService) *DealHandler {
	return &DealHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the deal and dashboard routes behind the session gate.
func (h *DealHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	router.Post("/dashboard", gate, h.HandleDashboard)

	dealRoutes := router.Group("/deals", gate)
	dealRoutes.Post("/", h.HandleGetDeals)
	dealRoutes.Post("/create", h.HandleCreateDeal)
	dealRoutes.Post("/:id", h.HandleGetDeal)
	dealRoutes.Put("/:id", h.HandleEditDeal)
	dealRoutes.Delete("/:id", h.HandleDeleteDeal)
}

func (h *DealHandler) HandleDashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.service.Dashboard(c.UserContext(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *DealHandler) HandleGetDeals(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	deals, err := h.service.GetAllDeals(c.UserContext(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deals)
}

func (h *DealHandler) HandleGetDeal(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	deal, err := h.service.GetDealByID(c.UserContext(), user.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deal)
}

func (h *DealHandler) HandleCreateDeal(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	var deal models.Deal
	if err := bindBody(c, h.validate, &deal); err != nil {
		return respondError(c, err)
	}
	if err := h.service.CreateDeal(c.UserContext(), user.UserID, &deal); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

// HandleEditDeal moves a deal to another status.
func (h *DealHandler) HandleEditDeal(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var change models.DealStatusChange
	if err := bindBody(c, h.validate, &change); err != nil {
		return respondError(c, err)
	}
	if err := h.service.UpdateDealStatus(c.UserContext(), user.UserID, id, change); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Deal updated successfully",
	})
}

func (h *DealHandler) HandleDeleteDeal(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteDeal(c.UserContext(), user.UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Deal deleted successfully",
	})
}
