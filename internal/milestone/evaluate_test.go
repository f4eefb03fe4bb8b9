package milestone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/domain"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(NewCalendar(time.UTC, YearPolicyCalendar))
}

func customer(id string, day, month int, tracking domain.Tracking) domain.Customer {
	return domain.Customer{
		ID:                id,
		Name:              "Customer " + id,
		Phone:             "555-0100",
		EventType:         domain.EventTypeBirthday,
		Day:               day,
		Month:             month,
		AssignedStaffID:   "staff-1",
		AssignedStaffName: "asha",
		Status:            domain.CustomerStatusPending,
		Tracking:          tracking,
	}
}

func milestonesOf(evals []Evaluation) []domain.Milestone {
	out := make([]domain.Milestone, 0, len(evals))
	for _, ev := range evals {
		out = append(out, ev.Milestone)
	}
	return out
}

func TestEvaluateAllDoneIsEmpty(t *testing.T) {
	e := newTestEvaluator()
	done := domain.Tracking{Messaged: true, Called: true, Greeted: true, FollowedUp: true}
	c := customer("c1", 10, 2, done)

	for _, today := range []time.Time{date(2024, time.March, 3), date(2024, time.March, 10), date(2024, time.December, 1)} {
		assert.Empty(t, e.EvaluateCustomer(c, today, ModeStaff))
		assert.Empty(t, e.EvaluateCustomer(c, today, ModeAdmin))
	}
}

func TestEvaluateEventToday(t *testing.T) {
	e := newTestEvaluator()
	c := customer("c1", 10, 2, domain.Tracking{Messaged: true, Called: true})
	today := date(2024, time.March, 10)

	staff := e.EvaluateCustomer(c, today, ModeStaff)
	require.Len(t, staff, 1)
	assert.Equal(t, domain.MilestoneGreet, staff[0].Milestone)
	assert.False(t, staff[0].Overdue)
	assert.Equal(t, 0, staff[0].DaysLate)

	assert.Empty(t, e.EvaluateCustomer(c, today, ModeAdmin))
}

func TestEvaluateEventYesterday(t *testing.T) {
	e := newTestEvaluator()
	c := customer("c1", 10, 2, domain.Tracking{Messaged: true, Called: true})
	today := date(2024, time.March, 11)

	staff := e.EvaluateCustomer(c, today, ModeStaff)
	require.Len(t, staff, 1)
	assert.Equal(t, domain.MilestoneGreet, staff[0].Milestone)
	assert.True(t, staff[0].Overdue)

	admin := e.EvaluateCustomer(c, today, ModeAdmin)
	require.Len(t, admin, 1)
	assert.Equal(t, domain.MilestoneGreet, admin[0].Milestone)
	assert.Equal(t, 1, admin[0].DaysLate)
}

func TestEvaluateMarchThirteenthExample(t *testing.T) {
	e := newTestEvaluator()
	c := customer("c1", 10, 2, domain.Tracking{})
	today := date(2024, time.March, 13)

	admin := e.EvaluateCustomer(c, today, ModeAdmin)
	require.Len(t, admin, 4)
	assert.Equal(t, []domain.Milestone{
		domain.MilestoneMessage, domain.MilestoneCall, domain.MilestoneGreet, domain.MilestoneFollowUp,
	}, milestonesOf(admin))

	assert.Equal(t, date(2024, time.March, 3), admin[0].Target)
	assert.Equal(t, 10, admin[0].DaysLate)
	assert.Equal(t, date(2024, time.March, 7), admin[1].Target)
	assert.Equal(t, 6, admin[1].DaysLate)
	assert.Equal(t, 3, admin[2].DaysLate)
	assert.Equal(t, date(2024, time.March, 12), admin[3].Target)
	assert.Equal(t, 1, admin[3].DaysLate)

	c.Tracking.Called = true
	assert.Equal(t, []domain.Milestone{
		domain.MilestoneMessage, domain.MilestoneGreet, domain.MilestoneFollowUp,
	}, milestonesOf(e.EvaluateCustomer(c, today, ModeAdmin)))
}

func TestEvaluateBeforeAnyMilestoneIsDue(t *testing.T) {
	e := newTestEvaluator()
	c := customer("c1", 10, 2, domain.Tracking{})
	assert.Empty(t, e.EvaluateCustomer(c, date(2024, time.March, 2), ModeStaff))

	staff := e.EvaluateCustomer(c, date(2024, time.March, 3), ModeStaff)
	require.Len(t, staff, 1)
	assert.Equal(t, domain.MilestoneMessage, staff[0].Milestone)
	assert.False(t, staff[0].Overdue)
}

func TestEvaluateYearRollover(t *testing.T) {
	c := customer("c1", 31, 11, domain.Tracking{Messaged: true, Called: true})
	today := date(2025, time.January, 1)

	calendarYear := NewEvaluator(NewCalendar(time.UTC, YearPolicyCalendar))
	assert.Empty(t, calendarYear.EvaluateCustomer(c, today, ModeAdmin),
		"calendar policy looks at Dec 31 of the current year")

	nearest := NewEvaluator(NewCalendar(time.UTC, YearPolicyNearest))
	alerts := nearest.EvaluateCustomer(c, today, ModeAdmin)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.MilestoneGreet, alerts[0].Milestone)
	assert.Equal(t, 1, alerts[0].DaysLate)

	staff := nearest.EvaluateCustomer(c, today, ModeStaff)
	assert.Equal(t, []domain.Milestone{domain.MilestoneGreet}, milestonesOf(staff))
}
