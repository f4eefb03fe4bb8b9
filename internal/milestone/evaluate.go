package milestone

import (
	"time"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// Mode selects which due milestones an evaluation reports.
type Mode int

const (
	// ModeStaff reports milestones from their due day onwards.
	ModeStaff Mode = iota
	// ModeAdmin reports milestones only once they are at least one day late.
	ModeAdmin
)

// Evaluation is the state of one open milestone of one customer.
type Evaluation struct {
	Milestone domain.Milestone
	Target    time.Time
	Overdue   bool
	DaysLate  int
}

// Evaluator computes milestone state against a calendar.
type Evaluator struct {
	cal Calendar
}

// NewEvaluator constructs an evaluator.
func NewEvaluator(cal Calendar) *Evaluator {
	return &Evaluator{cal: cal}
}

// Calendar exposes the calendar used for evaluation.
func (e *Evaluator) Calendar() Calendar {
	return e.cal
}

// EvaluateCustomer returns the open milestones of c as of today, in
// MESSAGE, CALL, GREET, FOLLOWUP order. today must already be a midnight
// produced by Calendar.Today.
func (e *Evaluator) EvaluateCustomer(c domain.Customer, today time.Time, mode Mode) []Evaluation {
	event := e.cal.EventDate(today, c.Month, c.Day)

	var out []Evaluation
	for _, m := range domain.Milestones {
		if c.Tracking.Done(m) {
			continue
		}
		target := Target(event, m.Offset())
		late := DaysBetween(target, today)
		if late < 0 {
			continue
		}
		if mode == ModeAdmin && late == 0 {
			continue
		}
		out = append(out, Evaluation{
			Milestone: m,
			Target:    target,
			Overdue:   late > 0,
			DaysLate:  late,
		})
	}
	return out
}
