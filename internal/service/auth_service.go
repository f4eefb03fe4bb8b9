package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/auth"
	"github.com/spec-kit/celebration-service/internal/config"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/repository"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// AuthService coordinates login, logout and session lookup.
type AuthService struct {
	staff         repository.StaffRepository
	sessions      repository.SessionRepository
	tokenMgr      *auth.TokenManager
	adminUsername string
	adminPassword string
	logger        *zap.Logger
	now           func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StaffRepo   repository.StaffRepository
	SessionRepo repository.SessionRepository
}

// LoginResult is a freshly issued session and its bearer token.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	s := &AuthService{
		staff:    deps.StaffRepo,
		sessions: deps.SessionRepo,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		logger:   logger,
		now:      time.Now,
	}
	if cfg.Auth.AdminEnabled() {
		s.adminUsername = cfg.Auth.AdminUsername
		s.adminPassword = cfg.Auth.AdminPassword
	}
	return s
}

// Login checks the configured admin pair first and then the staff store.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	principal, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(uuid.NewString(), *principal, s.now().UTC(), s.tokenMgr.TTL())
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.NewStoreUnavailable("session save", err)
	}
	token, err := s.tokenMgr.GenerateToken(session)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("login", zap.String("principal_id", principal.ID), zap.String("role", string(principal.Role)))
	return &LoginResult{Token: token, Session: session}, nil
}

func (s *AuthService) authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	if s.adminUsername != "" &&
		auth.EqualSecret(s.adminUsername, username) &&
		auth.EqualSecret(s.adminPassword, password) {
		return &domain.Principal{ID: domain.AdminID, Username: s.adminUsername, Role: domain.RoleAdmin}, nil
	}

	staff, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewStoreUnavailable("staff lookup", err)
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "password mismatch"))
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return &domain.Principal{ID: staff.ID, Username: staff.Username, Role: staff.Role}, nil
}

// Logout deletes the session, which revokes its token, and clears it.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return apperrors.NewStoreUnavailable("session delete", err)
	}
	session.Clear()
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
