package milestone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/domain"
)

func sampleCustomers() []domain.Customer {
	a := customer("a", 10, 2, domain.Tracking{})
	b := customer("b", 14, 2, domain.Tracking{Messaged: true})
	b.AssignedStaffID = "staff-2"
	b.AssignedStaffName = "ravi"
	c := customer("c", 20, 5, domain.Tracking{})
	return []domain.Customer{a, b, c}
}

func TestTasksFilterByStaffAndKeepOrder(t *testing.T) {
	e := newTestEvaluator()
	today := date(2024, time.March, 11)

	tasks := e.Tasks(sampleCustomers(), today, "staff-1")
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.Equal(t, "a", task.Customer.ID)
	}
	assert.Equal(t, domain.MilestoneMessage, tasks[0].Milestone)
	assert.Equal(t, domain.MilestoneCall, tasks[1].Milestone)
	assert.Equal(t, domain.MilestoneGreet, tasks[2].Milestone)
	assert.True(t, tasks[2].IsOverdue)

	other := e.Tasks(sampleCustomers(), today, "staff-2")
	require.Len(t, other, 1)
	assert.Equal(t, "b", other[0].Customer.ID)
	assert.Equal(t, domain.MilestoneCall, other[0].Milestone)
	assert.False(t, other[0].IsOverdue, "due today is pending, not overdue")
}

func TestAlertsCoverAllCustomersInInputOrder(t *testing.T) {
	e := newTestEvaluator()
	today := date(2024, time.March, 11)

	alerts := e.Alerts(sampleCustomers(), today)
	require.Len(t, alerts, 3)
	assert.Equal(t, "a", alerts[0].CustomerID)
	assert.Equal(t, domain.MilestoneMessage, alerts[0].Milestone)
	assert.Equal(t, 8, alerts[0].DaysLate)
	assert.Equal(t, domain.MilestoneCall, alerts[1].Milestone)
	assert.Equal(t, domain.MilestoneGreet, alerts[2].Milestone)
	assert.Equal(t, 1, alerts[2].DaysLate)
	assert.Equal(t, "asha", alerts[0].StaffName)
	for _, alert := range alerts {
		assert.GreaterOrEqual(t, alert.DaysLate, 1)
	}
}

func TestEvaluateAllByRole(t *testing.T) {
	e := newTestEvaluator()
	today := date(2024, time.March, 11)
	customers := sampleCustomers()

	admin := e.EvaluateAll(customers, today, domain.Principal{ID: domain.AdminID, Role: domain.RoleAdmin})
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Len(t, admin.Alerts, 3)
	assert.Empty(t, admin.Tasks)

	staff := e.EvaluateAll(customers, today, domain.Principal{ID: "staff-2", Role: domain.RoleStaff})
	assert.Equal(t, domain.RoleStaff, staff.Role)
	assert.Len(t, staff.Tasks, 1)
	assert.Empty(t, staff.Alerts)
}

func TestEvaluateAllIsIdempotent(t *testing.T) {
	e := newTestEvaluator()
	today := date(2024, time.March, 13)
	customers := sampleCustomers()
	before := append([]domain.Customer(nil), customers...)

	viewer := domain.Principal{ID: domain.AdminID, Role: domain.RoleAdmin}
	first := e.EvaluateAll(customers, today, viewer)
	second := e.EvaluateAll(customers, today, viewer)
	assert.Equal(t, first, second)
	assert.Equal(t, before, customers, "evaluation must not mutate the snapshot")

	staff := domain.Principal{ID: "staff-1", Role: domain.RoleStaff}
	assert.Equal(t, e.EvaluateAll(customers, today, staff), e.EvaluateAll(customers, today, staff))
}

func TestEmptyCollectionsYieldEmptySlices(t *testing.T) {
	e := newTestEvaluator()
	today := date(2024, time.March, 13)
	assert.NotNil(t, e.Tasks(nil, today, "staff-1"))
	assert.NotNil(t, e.Alerts(nil, today))
}
