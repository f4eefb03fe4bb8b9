package domain

import "time"

// Role enumerates operator roles.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// AdminID is the principal id of the configured administrator, who has no store record.
const AdminID = "admin-0"

// StaffMember models a store-backed operator that customers are assigned to.
type StaffMember struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
