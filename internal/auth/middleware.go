package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/repository"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

const (
	principalKey = "auth_principal"
	sessionKey   = "auth_session"
)

// AuthMiddleware validates bearer tokens and loads the session they point at.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions repository.SessionRepository
	now      func() time.Time
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions repository.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, now: time.Now}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, err := bearerToken(c)
	if err != nil {
		return err
	}

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	session, err := m.sessions.Get(c.UserContext(), claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.NewStoreUnavailable("session lookup", err)
	}
	if session.IsExpired(m.now()) || session.Principal == nil || session.Principal.ID != claims.Subject {
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(sessionKey, session)
	c.Locals(principalKey, session.Principal)
	return c.Next()
}

// bearerToken reads the Authorization header. Event streams cannot set
// headers from a browser, so an access_token query parameter is accepted too.
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if token := c.Query("access_token"); token != "" {
			return token, nil
		}
		return "", apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// PrincipalFromContext retrieves the authenticated operator.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}

// SessionFromContext retrieves the session loaded for the request.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}
