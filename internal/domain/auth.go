package domain

import "time"

// Principal identifies an authenticated operator.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Session is the explicit authentication state of one login. The zero value
// is an unauthenticated session.
type Session struct {
	ID            string     `json:"id"`
	Principal     *Principal `json:"user"`
	Authenticated bool       `json:"isAuthenticated"`
	IssuedAt      time.Time  `json:"issued_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
}

// NewSession builds an authenticated session for principal.
func NewSession(id string, principal Principal, issuedAt time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:            id,
		Principal:     &principal,
		Authenticated: true,
		IssuedAt:      issuedAt,
		ExpiresAt:     issuedAt.Add(ttl),
	}
}

// IsExpired reports whether the session is no longer valid at reference.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil || !s.Authenticated {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Clear tears the session down to the unauthenticated state.
func (s *Session) Clear() {
	s.Principal = nil
	s.Authenticated = false
}
