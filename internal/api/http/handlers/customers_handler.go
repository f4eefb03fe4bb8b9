package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/celebration-service/internal/api/dto"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/service"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// CustomersHandler exposes customer listing and admin management.
type CustomersHandler struct {
	customerService *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customerService: customerService}
}

// List handles GET /admin/customers and GET /staff/customers. Staff only see
// their own customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	customers, err := h.customerService.ListCustomers(c.UserContext(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /admin/customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	input, err := parseCustomerRequest(c)
	if err != nil {
		return err
	}
	customer, err := h.customerService.CreateCustomer(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// Update handles PUT /admin/customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	input, err := parseCustomerRequest(c)
	if err != nil {
		return err
	}
	customer, err := h.customerService.UpdateCustomer(c.UserContext(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Delete handles DELETE /admin/customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.customerService.DeleteCustomer(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseCustomerRequest(c *fiber.Ctx) (service.CustomerInput, error) {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return service.CustomerInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Day == nil || req.Month == nil {
		return service.CustomerInput{}, apperrors.NewValidationError("invalid customer", map[string]any{"date": "day and month required"})
	}
	input := service.CustomerInput{
		Name:            req.Name,
		Phone:           req.Phone,
		EventType:       domain.EventType(req.EventType),
		Day:             *req.Day,
		Month:           *req.Month,
		AssignedStaffID: req.AssignedStaffID,
	}
	if req.Status != nil {
		status := domain.CustomerStatus(*req.Status)
		input.Status = &status
	}
	return input, nil
}
