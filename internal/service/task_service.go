package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/milestone"
	"github.com/spec-kit/celebration-service/internal/observability"
	"github.com/spec-kit/celebration-service/internal/repository"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// TaskService turns customer snapshots into staff tasks and admin alerts and
// records milestone completions.
type TaskService struct {
	customers  repository.CustomerRepository
	staff      repository.StaffRepository
	evaluator  *milestone.Evaluator
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// TaskDependencies bundles what the task service needs.
type TaskDependencies struct {
	CustomerRepo repository.CustomerRepository
	StaffRepo    repository.StaffRepository
	Evaluator    *milestone.Evaluator
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Clock        func() time.Time
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies, logger *zap.Logger) *TaskService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TaskService{
		customers:  deps.CustomerRepo,
		staff:      deps.StaffRepo,
		evaluator:  deps.Evaluator,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        clock,
	}
}

// Today is the evaluation date in the engine's calendar.
func (s *TaskService) Today() time.Time {
	return s.evaluator.Calendar().Today(s.now())
}

// StaffTasks lists the due and overdue milestones of the caller's customers.
func (s *TaskService) StaffTasks(ctx context.Context, actor domain.Principal) ([]milestone.Task, error) {
	customers, err := s.customers.List(ctx, repository.CustomerFilter{AssignedStaffID: &actor.ID})
	if err != nil {
		return nil, storeError("customer", "", "customer list", err)
	}
	return s.evaluator.Tasks(customers, s.Today(), ""), nil
}

// AdminAlerts lists every overdue milestone across all customers.
func (s *TaskService) AdminAlerts(ctx context.Context, actor domain.Principal) ([]milestone.Alert, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	customers, err := s.customers.List(ctx, repository.CustomerFilter{})
	if err != nil {
		return nil, storeError("customer", "", "customer list", err)
	}
	alerts := s.evaluator.Alerts(customers, s.Today())
	s.metrics.SetOverdueAlerts(len(alerts))
	return alerts, nil
}

// View evaluates an already loaded snapshot for viewer. Live streams use it
// so that each pushed snapshot is re-evaluated against the current date.
func (s *TaskService) View(customers []domain.Customer, viewer domain.Principal) milestone.View {
	view := s.evaluator.EvaluateAll(customers, s.Today(), viewer)
	if viewer.IsAdmin() {
		s.metrics.SetOverdueAlerts(len(view.Alerts))
	}
	return view
}

// Dashboard summarises customers, staff and open alerts for the admin.
func (s *TaskService) Dashboard(ctx context.Context, actor domain.Principal) (milestone.DashboardStats, error) {
	if err := requireAdmin(actor); err != nil {
		return milestone.DashboardStats{}, err
	}
	customers, err := s.customers.List(ctx, repository.CustomerFilter{})
	if err != nil {
		return milestone.DashboardStats{}, storeError("customer", "", "customer list", err)
	}
	staff, err := s.staff.List(ctx)
	if err != nil {
		return milestone.DashboardStats{}, storeError("staff", "", "staff list", err)
	}
	alerts := s.evaluator.Alerts(customers, s.Today())
	s.metrics.SetOverdueAlerts(len(alerts))
	return milestone.Dashboard(customers, len(staff), alerts), nil
}

// CompleteMilestone marks one milestone done. Staff may only complete
// milestones of their own customers. A failed write leaves the completion
// rolled back to the tracking read before the attempt; it is not retried.
func (s *TaskService) CompleteMilestone(ctx context.Context, actor domain.Principal, customerID string, m domain.Milestone) (*milestone.Completion, error) {
	if !m.Valid() {
		return nil, apperrors.NewValidationError("unknown milestone", map[string]any{"milestone": string(m)})
	}
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, storeError("customer", customerID, "customer lookup", err)
	}
	if !actor.IsAdmin() && customer.AssignedStaffID != actor.ID {
		return nil, apperrors.NewForbidden("customer is assigned to another staff member")
	}

	completion, err := milestone.BeginCompletion(*customer, m)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	stored, err := s.customers.MarkMilestone(ctx, customerID, m)
	if err != nil {
		restored, _ := completion.Rollback()
		s.metrics.RecordCompletion(string(m), "rolled_back")
		s.logger.Warn("milestone completion rolled back",
			zap.String("customer_id", customerID),
			zap.String("milestone", string(m)),
			zap.Any("tracking", restored),
			zap.Error(err))
		return completion, storeError("customer", customerID, "milestone update", err)
	}
	if err := completion.Commit(stored); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.metrics.RecordCompletion(string(m), "committed")

	event := events.New(events.EventMilestoneCompleted, actor, events.MilestoneCompletedPayload{
		Milestone:       m,
		AssignedStaffID: customer.AssignedStaffID,
		Tracking:        stored,
	})
	event.CustomerID = customerID
	event.StaffID = customer.AssignedStaffID
	publish(ctx, s.dispatcher, s.logger, event)
	return completion, nil
}
