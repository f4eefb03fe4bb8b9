package service

import (
	"context"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/repository"
	"github.com/spec-kit/celebration-service/internal/wish"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// WishService drafts greetings for a staff member's customers.
type WishService struct {
	customers repository.CustomerRepository
	drafter   *wish.Drafter
}

// NewWishService constructs the service.
func NewWishService(customers repository.CustomerRepository, drafter *wish.Drafter) *WishService {
	return &WishService{customers: customers, drafter: drafter}
}

// DraftWish returns a wish for the customer. When m is set it must be a
// milestone that sends a wish (MESSAGE or GREET).
func (s *WishService) DraftWish(ctx context.Context, actor domain.Principal, customerID string, m domain.Milestone) (wish.Draft, error) {
	if m != "" && !m.DraftsWish() {
		return wish.Draft{}, apperrors.NewValidationError("milestone does not send a wish", map[string]any{"milestone": string(m)})
	}
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return wish.Draft{}, storeError("customer", customerID, "customer lookup", err)
	}
	if !actor.IsAdmin() && customer.AssignedStaffID != actor.ID {
		return wish.Draft{}, apperrors.NewForbidden("customer is assigned to another staff member")
	}
	return s.drafter.Draft(ctx, *customer), nil
}
