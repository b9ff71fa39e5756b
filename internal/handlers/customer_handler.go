package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bizprofile/internal/models"
	"bizprofile/internal/services"
)

// CustomerHandler handles HTTP requests for the session user's customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes behind the session gate.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	customerRoutes := router.Group("/customers", gate)
	customerRoutes.Post("/", h.HandleGetCustomers)
	customerRoutes.Post("/names", h.HandleGetCustomerNames)
	customerRoutes.Post("/create", h.HandleCreateCustomer)
	customerRoutes.Post("/:id", h.HandleGetCustomer)
	customerRoutes.Put("/:id", h.HandleEditCustomer)
	customerRoutes.Delete("/:id", h.HandleDeleteCustomer)
}

func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	customers, err := h.service.GetAllCustomers(c.UserContext(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) HandleGetCustomerNames(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	names, err := h.service.GetCustomerNames(c.UserContext(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(names)
}

func (h *CustomerHandler) HandleGetCustomer(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	customer, err := h.service.GetCustomerByID(c.UserContext(), user.UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	var customer models.Customer
	if err := bindBody(c, h.validate, &customer); err != nil {
		return respondError(c, err)
	}
	if err := h.service.CreateCustomer(c.UserContext(), user.UserID, &customer); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleEditCustomer changes a single column of a customer.
func (h *CustomerHandler) HandleEditCustomer(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var change models.CustomerChange
	if err := bindBody(c, h.validate, &change); err != nil {
		return respondError(c, err)
	}
	if err := h.service.EditCustomer(c.UserContext(), user.UserID, id, change); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Customer updated successfully",
	})
}

func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteCustomer(c.UserContext(), user.UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Customer deleted successfully",
	})
}
