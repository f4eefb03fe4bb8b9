package dto

import "time"

// CustomerRequest payload. Month is zero-based (January = 0); Day and Month
// are pointers so that a missing month is not read as January.
type CustomerRequest struct {
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	EventType       string  `json:"event_type"`
	Day             *int    `json:"day"`
	Month           *int    `json:"month"`
	AssignedStaffID string  `json:"assigned_staff_id"`
	Status          *string `json:"status"`
}

// TrackingResponse mirrors the four completion flags.
type TrackingResponse struct {
	Messaged   bool `json:"messaged"`
	Called     bool `json:"called"`
	Greeted    bool `json:"greeted"`
	FollowedUp bool `json:"followed_up"`
}

// MilestoneProgress is one of the M/C/G/F dots shown next to a customer.
type MilestoneProgress struct {
	Milestone string `json:"milestone"`
	Short     string `json:"short"`
	Label     string `json:"label"`
	Done      bool   `json:"done"`
}

// CustomerResponse represents a customer in listings.
type CustomerResponse struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Phone             string              `json:"phone"`
	EventType         string              `json:"event_type"`
	Day               int                 `json:"day"`
	Month             int                 `json:"month"`
	EventDate         string              `json:"event_date"`
	AssignedStaffID   string              `json:"assigned_staff_id"`
	AssignedStaffName string              `json:"assigned_staff_name"`
	Status            string              `json:"status"`
	Tracking          TrackingResponse    `json:"tracking"`
	Progress          []MilestoneProgress `json:"progress"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}
