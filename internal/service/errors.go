package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/repository"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// storeError maps a repository failure. Missing rows become NOT_FOUND for
// resource, unique key collisions become CONFLICT, domain errors pass through
// and anything else is reported as an unreachable store.
func storeError(resource, id, operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	if repository.IsUniqueViolation(err) {
		return apperrors.NewConflict(resource+" already exists", nil)
	}
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return err
	}
	return apperrors.NewStoreUnavailable(operation, err)
}

func requireAdmin(actor domain.Principal) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// publish emits event; handler failures are logged and never fail the write
// that raised the event.
func publish(ctx context.Context, d events.Dispatcher, logger *zap.Logger, event events.Event) {
	if d == nil {
		return
	}
	if err := d.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
