package domain

import (
	"fmt"
	"strings"
)

// Milestone is one of the four relationship touchpoints around an event.
type Milestone string

const (
	MilestoneMessage  Milestone = "MESSAGE"
	MilestoneCall     Milestone = "CALL"
	MilestoneGreet    Milestone = "GREET"
	MilestoneFollowUp Milestone = "FOLLOWUP"
)

// Milestones lists every milestone in evaluation order.
var Milestones = []Milestone{MilestoneMessage, MilestoneCall, MilestoneGreet, MilestoneFollowUp}

// ParseMilestone resolves a milestone name case-insensitively.
func ParseMilestone(raw string) (Milestone, error) {
	m := Milestone(strings.ToUpper(strings.TrimSpace(raw)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown milestone %q", raw)
	}
	return m, nil
}

// Valid reports whether m is one of the four milestones.
func (m Milestone) Valid() bool {
	switch m {
	case MilestoneMessage, MilestoneCall, MilestoneGreet, MilestoneFollowUp:
		return true
	}
	return false
}

// Offset returns the signed number of days between the event and the milestone's due date.
func (m Milestone) Offset() int {
	switch m {
	case MilestoneMessage:
		return -7
	case MilestoneCall:
		return -3
	case MilestoneFollowUp:
		return 2
	default:
		return 0
	}
}

// Label is the short display name shown on task cards.
func (m Milestone) Label() string {
	switch m {
	case MilestoneMessage:
		return "1st Reminder"
	case MilestoneCall:
		return "Tele Call"
	case MilestoneGreet:
		return "Big Day Greet"
	case MilestoneFollowUp:
		return "Follow Up"
	}
	return ""
}

// ActionLabel describes what the staff member is expected to do.
func (m Milestone) ActionLabel() string {
	switch m {
	case MilestoneMessage:
		return "MESSAGE customer"
	case MilestoneCall:
		return "TELE CALL customer"
	case MilestoneGreet:
		return "GREET ON BIG DAY"
	case MilestoneFollowUp:
		return "FOLLOW UP reminder"
	}
	return ""
}

// DraftsWish reports whether completing m involves sending a written wish.
func (m Milestone) DraftsWish() bool {
	return m == MilestoneMessage || m == MilestoneGreet
}

// Done reports whether the flag backing m is set.
func (t Tracking) Done(m Milestone) bool {
	switch m {
	case MilestoneMessage:
		return t.Messaged
	case MilestoneCall:
		return t.Called
	case MilestoneGreet:
		return t.Greeted
	case MilestoneFollowUp:
		return t.FollowedUp
	}
	return false
}

// With returns a copy of t with the flag for m set. Other flags are untouched.
func (t Tracking) With(m Milestone) Tracking {
	switch m {
	case MilestoneMessage:
		t.Messaged = true
	case MilestoneCall:
		t.Called = true
	case MilestoneGreet:
		t.Greeted = true
	case MilestoneFollowUp:
		t.FollowedUp = true
	}
	return t
}

// Complete reports whether every milestone is done.
func (t Tracking) Complete() bool {
	return t.Messaged && t.Called && t.Greeted && t.FollowedUp
}
