// Package milestone derives relationship tasks and overdue alerts from
// customer event dates. Everything here is a pure function of a customer
// snapshot and the current day.
package milestone

import (
	"fmt"
	"strings"
	"time"
)

// YearPolicy selects which occurrence of an annual event is evaluated.
type YearPolicy string

const (
	// YearPolicyNearest evaluates the occurrence closest to today, looking one
	// year back and one year ahead.
	YearPolicyNearest YearPolicy = "nearest"
	// YearPolicyCalendar always evaluates the occurrence in today's calendar year.
	YearPolicyCalendar YearPolicy = "calendar"
)

// ParseYearPolicy resolves a policy name. An empty name selects YearPolicyNearest.
func ParseYearPolicy(raw string) (YearPolicy, error) {
	switch p := YearPolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return YearPolicyNearest, nil
	case YearPolicyNearest, YearPolicyCalendar:
		return p, nil
	default:
		return "", fmt.Errorf("unknown year policy %q", raw)
	}
}

// Calendar anchors date-only arithmetic to a single location.
type Calendar struct {
	Location *time.Location
	Policy   YearPolicy
}

// NewCalendar builds a calendar. A nil location means time.Local.
func NewCalendar(loc *time.Location, policy YearPolicy) Calendar {
	if policy == "" {
		policy = YearPolicyNearest
	}
	return Calendar{Location: loc, Policy: policy}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Today returns midnight of now's date in the calendar location.
func (c Calendar) Today(now time.Time) time.Time {
	now = now.In(c.location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.location())
}

// EventDateFor returns midnight of the given date. Month is zero-based and
// out-of-range days normalize the way time.Date does (Feb 29 -> Mar 1).
func (c Calendar) EventDateFor(year, month, day int) time.Time {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, c.location())
}

// EventDate picks the occurrence of an annual (month, day) event that is
// evaluated as of today.
func (c Calendar) EventDate(today time.Time, month, day int) time.Time {
	year := today.Year()
	best := c.EventDateFor(year, month, day)
	if c.Policy == YearPolicyCalendar {
		return best
	}

	bestDistance := abs(DaysBetween(today, best))
	for _, y := range []int{year - 1, year + 1} {
		candidate := c.EventDateFor(y, month, day)
		if d := abs(DaysBetween(today, candidate)); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// Target returns the due date of a milestone offset from an event date.
func Target(event time.Time, offsetDays int) time.Time {
	return event.AddDate(0, 0, offsetDays)
}

// DaysBetween counts whole calendar days from `from` to `to`. Only the dates
// are compared, so DST transitions never shift the result.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
