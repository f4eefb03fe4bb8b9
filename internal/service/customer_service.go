package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/repository"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// CustomerService manages customer records and their staff assignment.
type CustomerService struct {
	customers  repository.CustomerRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CustomerInput carries the editable customer fields. Status is optional and
// keeps its current value when nil.
type CustomerInput struct {
	Name            string
	Phone           string
	EventType       domain.EventType
	Day             int
	Month           int
	AssignedStaffID string
	Status          *domain.CustomerStatus
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, staff repository.StaffRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, staff: staff, dispatcher: dispatcher, logger: logger}
}

// CreateCustomer validates and stores a new customer with clean tracking.
func (s *CustomerService) CreateCustomer(ctx context.Context, actor domain.Principal, in CustomerInput) (*domain.Customer, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	staffName, err := s.staffName(ctx, in.AssignedStaffID)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:              in.Name,
		Phone:             in.Phone,
		EventType:         in.EventType,
		Day:               in.Day,
		Month:             in.Month,
		AssignedStaffID:   in.AssignedStaffID,
		AssignedStaffName: staffName,
		Status:            domain.CustomerStatusPending,
	}
	if in.Status != nil {
		customer.Status = *in.Status
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, storeError("customer", "", "customer create", err)
	}

	s.emit(ctx, actor, events.EventCustomerCreated, customer.ID, customer.AssignedStaffID, "")
	return customer, nil
}

// UpdateCustomer replaces the editable fields of a customer. Tracking is
// never touched here.
func (s *CustomerService) UpdateCustomer(ctx context.Context, actor domain.Principal, id string, in CustomerInput) (*domain.Customer, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("customer", id, "customer lookup", err)
	}
	staffName, err := s.staffName(ctx, in.AssignedStaffID)
	if err != nil {
		return nil, err
	}

	updated, err := s.customers.Patch(ctx, id, repository.CustomerPatch{
		Name:              &in.Name,
		Phone:             &in.Phone,
		EventType:         &in.EventType,
		Day:               &in.Day,
		Month:             &in.Month,
		AssignedStaffID:   &in.AssignedStaffID,
		AssignedStaffName: &staffName,
		Status:            in.Status,
	})
	if err != nil {
		return nil, storeError("customer", id, "customer update", err)
	}

	s.emit(ctx, actor, events.EventCustomerUpdated, id, updated.AssignedStaffID, current.AssignedStaffID)
	return updated, nil
}

// DeleteCustomer removes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, actor domain.Principal, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	current, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return storeError("customer", id, "customer lookup", err)
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return storeError("customer", id, "customer delete", err)
	}

	s.emit(ctx, actor, events.EventCustomerDeleted, id, current.AssignedStaffID, "")
	return nil
}

// ListCustomers returns every customer for the admin and the caller's own
// customers for staff, ordered by (month, day).
func (s *CustomerService) ListCustomers(ctx context.Context, actor domain.Principal) ([]domain.Customer, error) {
	filter := repository.CustomerFilter{}
	if !actor.IsAdmin() {
		filter.AssignedStaffID = &actor.ID
	}
	customers, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, storeError("customer", "", "customer list", err)
	}
	return customers, nil
}

// staffName resolves the denormalized name stored with a customer.
func (s *CustomerService) staffName(ctx context.Context, staffID string) (string, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UnassignedStaffName, nil
		}
		return "", apperrors.NewStoreUnavailable("staff lookup", err)
	}
	return staff.Username, nil
}

func (s *CustomerService) emit(ctx context.Context, actor domain.Principal, t events.EventType, customerID, staffID, previousStaffID string) {
	if previousStaffID == staffID {
		previousStaffID = ""
	}
	event := events.New(t, actor, events.CustomerChangedPayload{
		AssignedStaffID: staffID,
		PreviousStaffID: previousStaffID,
	})
	event.CustomerID = customerID
	event.StaffID = staffID
	publish(ctx, s.dispatcher, s.logger, event)
}

func (in CustomerInput) normalized() CustomerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.AssignedStaffID = strings.TrimSpace(in.AssignedStaffID)
	in.EventType = domain.EventType(strings.ToUpper(strings.TrimSpace(string(in.EventType))))
	return in
}

func (in CustomerInput) validate() error {
	details := map[string]any{}
	if in.Name == "" {
		details["name"] = "required"
	}
	if in.Phone == "" {
		details["phone"] = "required"
	}
	if in.AssignedStaffID == "" {
		details["assignedStaffId"] = "a staff member must be assigned"
	}
	if !in.EventType.Valid() {
		details["eventType"] = "must be BIRTHDAY or ANNIVERSARY"
	}
	if !domain.ValidEventDate(in.Day, in.Month) {
		details["date"] = "day and month do not form a calendar date"
	}
	if in.Status != nil && !in.Status.Valid() {
		details["status"] = "must be PENDING or WISHED"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid customer", details)
	}
	return nil
}
