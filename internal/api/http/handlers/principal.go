package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/celebration-service/internal/auth"
	"github.com/spec-kit/celebration-service/internal/domain"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

func requirePrincipal(c *fiber.Ctx) (domain.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal == nil {
		return domain.Principal{}, apperrors.NewUnauthorized("authentication required")
	}
	return *principal, nil
}
