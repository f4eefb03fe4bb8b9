package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/auth"
	"github.com/spec-kit/celebration-service/internal/config"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/repository"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// StaffService manages staff accounts. Every operation is admin only.
type StaffService struct {
	staff         repository.StaffRepository
	sessions      repository.SessionRepository
	bcryptCost    int
	adminUsername string
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, staff repository.StaffRepository, sessions repository.SessionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StaffService {
	return &StaffService{
		staff:         staff,
		sessions:      sessions,
		bcryptCost:    cfg.Auth.BcryptCost,
		adminUsername: cfg.Auth.AdminUsername,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// CreateStaffMember adds a new staff account.
func (s *StaffService) CreateStaffMember(ctx context.Context, actor domain.Principal, username, password string) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password, true); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, username, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	staff := &domain.StaffMember{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, storeError("staff", "", "staff create", err)
	}

	event := events.New(events.EventStaffCreated, actor, events.StaffChangedPayload{Username: staff.Username})
	event.StaffID = staff.ID
	publish(ctx, s.dispatcher, s.logger, event)
	return staff, nil
}

// ListStaffMembers lists staff ordered by username.
func (s *StaffService) ListStaffMembers(ctx context.Context, actor domain.Principal) ([]domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, storeError("staff", "", "staff list", err)
	}
	return staff, nil
}

// UpdateStaffMember changes the username and, when password is non-empty,
// the password. Customers keep the staff name they were saved with.
func (s *StaffService) UpdateStaffMember(ctx context.Context, actor domain.Principal, id, username, password string) (*domain.StaffMember, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password, false); err != nil {
		return nil, err
	}

	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("staff", id, "staff lookup", err)
	}
	if username != staff.Username {
		if err := s.ensureUsernameFree(ctx, username, staff.ID); err != nil {
			return nil, err
		}
	}

	staff.Username = username
	if password != "" {
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		staff.PasswordHash = hash
	}
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, storeError("staff", id, "staff update", err)
	}

	event := events.New(events.EventStaffUpdated, actor, events.StaffChangedPayload{Username: staff.Username})
	event.StaffID = staff.ID
	publish(ctx, s.dispatcher, s.logger, event)
	return staff, nil
}

// DeleteStaffMember removes a staff account and revokes its sessions. Their
// customers stay assigned to the removed id until an admin reassigns them.
func (s *StaffService) DeleteStaffMember(ctx context.Context, actor domain.Principal, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.staff.GetByID(ctx, id); err != nil {
		return storeError("staff", id, "staff lookup", err)
	}
	if err := s.sessions.DeleteByPrincipal(ctx, id); err != nil {
		return apperrors.NewStoreUnavailable("session revoke", err)
	}
	if err := s.staff.Delete(ctx, id); err != nil {
		return storeError("staff", id, "staff delete", err)
	}
	// A login that raced the delete may have opened a session in between.
	if err := s.sessions.DeleteByPrincipal(ctx, id); err != nil {
		s.logger.Warn("session revoke after staff delete failed", zap.String("staff_id", id), zap.Error(err))
	}

	event := events.New(events.EventStaffDeleted, actor, nil)
	event.StaffID = id
	publish(ctx, s.dispatcher, s.logger, event)
	return nil
}

func (s *StaffService) ensureUsernameFree(ctx context.Context, username, selfID string) error {
	if s.adminUsername != "" && strings.EqualFold(username, s.adminUsername) {
		return apperrors.NewConflict("username is reserved", map[string]any{"username": username})
	}
	existing, err := s.staff.GetByUsername(ctx, username)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.NewConflict("username already exists", map[string]any{"username": username})
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewStoreUnavailable("staff lookup", err)
	}
	return nil
}

func validateCredentials(username, password string, passwordRequired bool) error {
	details := map[string]any{}
	if username == "" {
		details["username"] = "required"
	}
	if passwordRequired && password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("missing required fields", details)
	}
	return nil
}
