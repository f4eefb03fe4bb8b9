package domain

import "time"

// EventType enumerates the annual events a customer is tracked around.
type EventType string

const (
	EventTypeBirthday    EventType = "BIRTHDAY"
	EventTypeAnniversary EventType = "ANNIVERSARY"
)

// Valid reports whether e is a known event type.
func (e EventType) Valid() bool {
	return e == EventTypeBirthday || e == EventTypeAnniversary
}

// CustomerStatus represents the lifecycle state of a customer record.
type CustomerStatus string

const (
	CustomerStatusPending CustomerStatus = "PENDING"
	CustomerStatusWished  CustomerStatus = "WISHED"
)

// Valid reports whether s is a known status.
func (s CustomerStatus) Valid() bool {
	return s == CustomerStatusPending || s == CustomerStatusWished
}

// UnassignedStaffName is stored when the assigned staff record cannot be resolved.
const UnassignedStaffName = "Unassigned"

// Tracking holds the four monotonic milestone completion flags.
type Tracking struct {
	Messaged   bool `json:"messaged"`
	Called     bool `json:"called"`
	Greeted    bool `json:"greeted"`
	FollowedUp bool `json:"followedUp"`
}

// Customer is the aggregate for relationship tracking.
// Month is zero-based (January = 0).
type Customer struct {
	ID                string
	Name              string
	Phone             string
	EventType         EventType
	Day               int
	Month             int
	AssignedStaffID   string
	AssignedStaffName string
	Status            CustomerStatus
	Tracking          Tracking
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidEventDate reports whether day and zero-based month form a real date in
// at least one year. February 29 is accepted.
func ValidEventDate(day, month int) bool {
	if month < 0 || month > 11 || day < 1 {
		return false
	}
	// 2000 is a leap year, so this yields the maximum length of every month.
	last := time.Date(2000, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}
