package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCustomerCreated    EventType = "customer_created"
	EventCustomerUpdated    EventType = "customer_updated"
	EventCustomerDeleted    EventType = "customer_deleted"
	EventMilestoneCompleted EventType = "milestone_completed"
	EventStaffCreated       EventType = "staff_created"
	EventStaffUpdated       EventType = "staff_updated"
	EventStaffDeleted       EventType = "staff_deleted"
)

// CustomerEventTypes lists the events that change what task and alert views
// would show.
var CustomerEventTypes = []EventType{
	EventCustomerCreated,
	EventCustomerUpdated,
	EventCustomerDeleted,
	EventMilestoneCompleted,
}

// AllEventTypes lists every event the service emits.
var AllEventTypes = append(append([]EventType{}, CustomerEventTypes...),
	EventStaffCreated, EventStaffUpdated, EventStaffDeleted)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// ActorFrom copies the principal's identity into an Actor.
func ActorFrom(p domain.Principal) Actor {
	return Actor{ID: p.ID, Username: p.Username, Role: p.Role}
}

// Event represents a domain event emitted by services. Origin is empty for
// events raised in this process and holds the publishing instance id for
// events relayed from another instance.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	CustomerID string      `json:"customer_id,omitempty"`
	StaffID    string      `json:"staff_id,omitempty"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
	Origin     string      `json:"origin,omitempty"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, actor domain.Principal, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     ActorFrom(actor),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// CustomerChangedPayload carries the assignment before and after a change so
// subscribers of both staff members can refresh.
type CustomerChangedPayload struct {
	AssignedStaffID string `json:"assigned_staff_id"`
	PreviousStaffID string `json:"previous_staff_id,omitempty"`
}

// MilestoneCompletedPayload payload.
type MilestoneCompletedPayload struct {
	Milestone       domain.Milestone `json:"milestone"`
	AssignedStaffID string           `json:"assigned_staff_id"`
	Tracking        domain.Tracking  `json:"tracking"`
}

// StaffChangedPayload payload.
type StaffChangedPayload struct {
	Username string `json:"username"`
}
