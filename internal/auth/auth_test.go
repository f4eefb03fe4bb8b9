package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/repository/memory"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

func testApp(mw *AuthMiddleware, roles ...domain.Role) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).SendString(de.Code)
	}})
	app.Get("/me", mw.Handle, RequireRole(roles...), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.Username)
	})
	return app
}

func issue(t *testing.T, tokens *TokenManager, sessions *memory.SessionRepository, principal domain.Principal) string {
	t.Helper()
	session := domain.NewSession("sess-"+principal.ID, principal, time.Now(), tokens.TTL())
	require.NoError(t, sessions.Save(context.Background(), session))
	token, err := tokens.GenerateToken(session)
	require.NoError(t, err)
	return token
}

func TestTokenRoundTripCarriesSession(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	session := domain.NewSession("abc", domain.Principal{ID: "s1", Username: "asha", Role: domain.RoleStaff}, time.Now(), time.Hour)

	raw, err := tokens.GenerateToken(session)
	require.NoError(t, err)

	claims, err := tokens.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.ID)
	assert.Equal(t, "s1", claims.Subject)
	assert.Equal(t, domain.RoleStaff, claims.Role)

	_, err = NewTokenManager("other", time.Hour).ParseToken(raw)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	sessions := memory.NewSessionRepository()
	staffToken := issue(t, tokens, sessions, domain.Principal{ID: "s1", Username: "asha", Role: domain.RoleStaff})
	adminToken := issue(t, tokens, sessions, domain.Principal{ID: domain.AdminID, Username: "admin", Role: domain.RoleAdmin})

	app := testApp(NewAuthMiddleware(tokens, sessions), domain.RoleAdmin)

	cases := []struct {
		name   string
		header string
		query  string
		status int
		body   string
	}{
		{name: "missing header", status: 401, body: "UNAUTHORIZED"},
		{name: "malformed header", header: "Token x", status: 401, body: "UNAUTHORIZED"},
		{name: "staff forbidden", header: "Bearer " + staffToken, status: 403, body: "FORBIDDEN"},
		{name: "admin allowed", header: "Bearer " + adminToken, status: 200, body: "admin"},
		{name: "query token", query: "?access_token=" + adminToken, status: 200, body: "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.body, string(body))
		})
	}
}

func TestMiddlewareRejectsDeletedSession(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	sessions := memory.NewSessionRepository()
	token := issue(t, tokens, sessions, domain.Principal{ID: "s1", Username: "asha", Role: domain.RoleStaff})
	require.NoError(t, sessions.Delete(context.Background(), "sess-s1"))

	app := testApp(NewAuthMiddleware(tokens, sessions))
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "hunter3"))

	assert.True(t, EqualSecret("admin", "admin"))
	assert.False(t, EqualSecret("admin", "admin "))
}
