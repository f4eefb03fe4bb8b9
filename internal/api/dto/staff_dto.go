package dto

import "time"

// StaffRequest payload for creating or updating a staff account. On update
// an empty password keeps the current one.
type StaffRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StaffResponse never carries the password hash.
type StaffResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
