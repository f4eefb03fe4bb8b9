package milestone

import (
	"fmt"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// MonthNames is indexed by the zero-based customer month.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthCount is the number of customers whose event falls in one month.
type MonthCount struct {
	Month int
	Name  string
	Short string
	Count int
}

// MonthlyDistribution counts customers per month, aligned to MonthNames.
func MonthlyDistribution(customers []domain.Customer) []MonthCount {
	out := make([]MonthCount, len(MonthNames))
	for i, name := range MonthNames {
		out[i] = MonthCount{Month: i, Name: name, Short: name[:3]}
	}
	for _, c := range customers {
		if c.Month >= 0 && c.Month < len(out) {
			out[c.Month].Count++
		}
	}
	return out
}

// DashboardStats summarises the admin dashboard.
type DashboardStats struct {
	TotalCustomers int
	ActiveStaff    int
	PendingTasks   int
	Months         []MonthCount
}

// Dashboard builds the admin summary from a customer snapshot, the staff
// count and the current alert list.
func Dashboard(customers []domain.Customer, staffCount int, alerts []Alert) DashboardStats {
	return DashboardStats{
		TotalCustomers: len(customers),
		ActiveStaff:    staffCount,
		PendingTasks:   len(alerts),
		Months:         MonthlyDistribution(customers),
	}
}

// FormatEventDate renders a (day, month) pair the way listings show it, e.g. "10 March".
func FormatEventDate(day, month int) string {
	if month < 0 || month >= len(MonthNames) {
		return ""
	}
	return fmt.Sprintf("%d %s", day, MonthNames[month])
}
