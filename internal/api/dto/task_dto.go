package dto

// DateLayout is used for due dates, which carry no time of day.
const DateLayout = "2006-01-02"

// TaskResponse is a due or overdue milestone in the staff view.
type TaskResponse struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	EventType    string `json:"event_type"`
	EventDate    string `json:"event_date"`
	Milestone    string `json:"milestone"`
	Label        string `json:"label"`
	ActionLabel  string `json:"action_label"`
	DueDate      string `json:"due_date"`
	IsOverdue    bool   `json:"is_overdue"`
	DraftsWish   bool   `json:"drafts_wish"`
}

// AlertResponse is an overdue milestone in the admin view.
type AlertResponse struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	StaffID      string `json:"staff_id"`
	StaffName    string `json:"staff_name"`
	Milestone    string `json:"milestone"`
	Label        string `json:"label"`
	DueDate      string `json:"due_date"`
	DaysLate     int    `json:"days_late"`
	EventDate    string `json:"event_date"`
}

// MonthCountResponse is one bar of the monthly distribution.
type MonthCountResponse struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Short string `json:"short"`
	Count int    `json:"count"`
}

// StatsResponse backs the admin dashboard.
type StatsResponse struct {
	TotalCustomers int                  `json:"total_customers"`
	ActiveStaff    int                  `json:"active_staff"`
	PendingTasks   int                  `json:"pending_tasks"`
	Months         []MonthCountResponse `json:"months"`
}

// CompletionResponse reports a settled milestone completion.
type CompletionResponse struct {
	CustomerID string           `json:"customer_id"`
	Milestone  string           `json:"milestone"`
	State      string           `json:"state"`
	Tracking   TrackingResponse `json:"tracking"`
}

// WishRequest optionally names the milestone the wish is drafted for.
type WishRequest struct {
	Milestone string `json:"milestone"`
}

// WishResponse carries a drafted wish.
type WishResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}
