package milestone

import (
	"time"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// Task is a milestone a staff member should act on now.
type Task struct {
	Customer  domain.Customer
	Milestone domain.Milestone
	DueDate   time.Time
	IsOverdue bool
}

// Alert is a milestone that slipped past its due date, shown to the admin.
type Alert struct {
	CustomerID   string
	CustomerName string
	StaffID      string
	StaffName    string
	Milestone    domain.Milestone
	DueDate      time.Time
	DaysLate     int
	Day          int
	Month        int
}

// View is the role-scoped result of evaluating a customer collection.
type View struct {
	Role   domain.Role
	Tasks  []Task
	Alerts []Alert
}

// Tasks evaluates customers in staff mode. Customers not assigned to staffID
// are skipped; an empty staffID treats the collection as already filtered.
// Customer order is preserved.
func (e *Evaluator) Tasks(customers []domain.Customer, today time.Time, staffID string) []Task {
	tasks := make([]Task, 0)
	for _, c := range customers {
		if staffID != "" && c.AssignedStaffID != staffID {
			continue
		}
		for _, ev := range e.EvaluateCustomer(c, today, ModeStaff) {
			tasks = append(tasks, Task{
				Customer:  c,
				Milestone: ev.Milestone,
				DueDate:   ev.Target,
				IsOverdue: ev.Overdue,
			})
		}
	}
	return tasks
}

// Alerts evaluates every customer in admin mode, preserving customer order.
func (e *Evaluator) Alerts(customers []domain.Customer, today time.Time) []Alert {
	alerts := make([]Alert, 0)
	for _, c := range customers {
		for _, ev := range e.EvaluateCustomer(c, today, ModeAdmin) {
			alerts = append(alerts, Alert{
				CustomerID:   c.ID,
				CustomerName: c.Name,
				StaffID:      c.AssignedStaffID,
				StaffName:    c.AssignedStaffName,
				Milestone:    ev.Milestone,
				DueDate:      ev.Target,
				DaysLate:     ev.DaysLate,
				Day:          c.Day,
				Month:        c.Month,
			})
		}
	}
	return alerts
}

// EvaluateAll produces the view for viewer: all overdue alerts for the admin,
// the viewer's own due tasks for staff.
func (e *Evaluator) EvaluateAll(customers []domain.Customer, today time.Time, viewer domain.Principal) View {
	if viewer.IsAdmin() {
		return View{Role: domain.RoleAdmin, Alerts: e.Alerts(customers, today)}
	}
	return View{Role: viewer.Role, Tasks: e.Tasks(customers, today, viewer.ID)}
}
