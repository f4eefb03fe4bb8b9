package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/celebration-service/internal/api/dto"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/service"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// TasksHandler exposes the milestone views, completion and wish drafting.
type TasksHandler struct {
	taskService *service.TaskService
	wishService *service.WishService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService, wishService *service.WishService) *TasksHandler {
	return &TasksHandler{taskService: taskService, wishService: wishService}
}

// Tasks handles GET /staff/tasks.
func (h *TasksHandler) Tasks(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.StaffTasks(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponses(tasks)})
}

// Alerts handles GET /admin/alerts.
func (h *TasksHandler) Alerts(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	alerts, err := h.taskService.AdminAlerts(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": alertResponses(alerts)})
}

// Stats handles GET /admin/stats.
func (h *TasksHandler) Stats(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	stats, err := h.taskService.Dashboard(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statsResponse(stats)})
}

// Complete handles POST .../customers/:id/milestones/:milestone/complete.
func (h *TasksHandler) Complete(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	m, err := domain.ParseMilestone(c.Params("milestone"))
	if err != nil {
		return apperrors.NewValidationError("unknown milestone", map[string]any{"milestone": c.Params("milestone")})
	}
	completion, err := h.taskService.CompleteMilestone(c.UserContext(), actor, c.Params("id"), m)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CompletionResponse{
		CustomerID: completion.CustomerID,
		Milestone:  string(completion.Milestone),
		State:      string(completion.State()),
		Tracking:   trackingResponse(completion.Tracking()),
	}})
}

// Wish handles POST /staff/customers/:id/wish.
func (h *TasksHandler) Wish(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.WishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	var m domain.Milestone
	if req.Milestone != "" {
		if m, err = domain.ParseMilestone(req.Milestone); err != nil {
			return apperrors.NewValidationError("unknown milestone", map[string]any{"milestone": req.Milestone})
		}
	}
	draft, err := h.wishService.DraftWish(c.UserContext(), actor, c.Params("id"), m)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.WishResponse{Text: draft.Text, Fallback: draft.Fallback}})
}
