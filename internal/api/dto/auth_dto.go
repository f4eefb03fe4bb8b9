package dto

import "time"

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PrincipalResponse identifies the signed-in operator.
type PrincipalResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SessionResponse describes the current session. User is null once the
// session is torn down.
type SessionResponse struct {
	ID              string             `json:"id,omitempty"`
	IsAuthenticated bool               `json:"is_authenticated"`
	User            *PrincipalResponse `json:"user"`
	IssuedAt        *time.Time         `json:"issued_at,omitempty"`
	ExpiresAt       *time.Time         `json:"expires_at,omitempty"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   SessionResponse `json:"session"`
}
