package handlers

import (
	"github.com/spec-kit/celebration-service/internal/api/dto"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/milestone"
)

func principalResponse(p *domain.Principal) *dto.PrincipalResponse {
	if p == nil {
		return nil
	}
	return &dto.PrincipalResponse{ID: p.ID, Username: p.Username, Role: string(p.Role)}
}

func sessionResponse(s *domain.Session) dto.SessionResponse {
	if s == nil || !s.Authenticated {
		return dto.SessionResponse{}
	}
	issued, expires := s.IssuedAt, s.ExpiresAt
	return dto.SessionResponse{
		ID:              s.ID,
		IsAuthenticated: true,
		User:            principalResponse(s.Principal),
		IssuedAt:        &issued,
		ExpiresAt:       &expires,
	}
}

func staffResponse(s *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:        s.ID,
		Username:  s.Username,
		Role:      string(s.Role),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func trackingResponse(t domain.Tracking) dto.TrackingResponse {
	return dto.TrackingResponse{
		Messaged:   t.Messaged,
		Called:     t.Called,
		Greeted:    t.Greeted,
		FollowedUp: t.FollowedUp,
	}
}

func customerResponse(c *domain.Customer) dto.CustomerResponse {
	progress := make([]dto.MilestoneProgress, 0, len(domain.Milestones))
	for _, m := range domain.Milestones {
		progress = append(progress, dto.MilestoneProgress{
			Milestone: string(m),
			Short:     string(m)[:1],
			Label:     m.Label(),
			Done:      c.Tracking.Done(m),
		})
	}
	return dto.CustomerResponse{
		ID:                c.ID,
		Name:              c.Name,
		Phone:             c.Phone,
		EventType:         string(c.EventType),
		Day:               c.Day,
		Month:             c.Month,
		EventDate:         milestone.FormatEventDate(c.Day, c.Month),
		AssignedStaffID:   c.AssignedStaffID,
		AssignedStaffName: c.AssignedStaffName,
		Status:            string(c.Status),
		Tracking:          trackingResponse(c.Tracking),
		Progress:          progress,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func taskResponses(tasks []milestone.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.TaskResponse{
			CustomerID:   t.Customer.ID,
			CustomerName: t.Customer.Name,
			Phone:        t.Customer.Phone,
			EventType:    string(t.Customer.EventType),
			EventDate:    milestone.FormatEventDate(t.Customer.Day, t.Customer.Month),
			Milestone:    string(t.Milestone),
			Label:        t.Milestone.Label(),
			ActionLabel:  t.Milestone.ActionLabel(),
			DueDate:      t.DueDate.Format(dto.DateLayout),
			IsOverdue:    t.IsOverdue,
			DraftsWish:   t.Milestone.DraftsWish(),
		})
	}
	return out
}

func alertResponses(alerts []milestone.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertResponse{
			CustomerID:   a.CustomerID,
			CustomerName: a.CustomerName,
			StaffID:      a.StaffID,
			StaffName:    a.StaffName,
			Milestone:    string(a.Milestone),
			Label:        a.Milestone.Label(),
			DueDate:      a.DueDate.Format(dto.DateLayout),
			DaysLate:     a.DaysLate,
			EventDate:    milestone.FormatEventDate(a.Day, a.Month),
		})
	}
	return out
}

func statsResponse(s milestone.DashboardStats) dto.StatsResponse {
	months := make([]dto.MonthCountResponse, 0, len(s.Months))
	for _, m := range s.Months {
		months = append(months, dto.MonthCountResponse{Month: m.Month, Name: m.Name, Short: m.Short, Count: m.Count})
	}
	return dto.StatsResponse{
		TotalCustomers: s.TotalCustomers,
		ActiveStaff:    s.ActiveStaff,
		PendingTasks:   s.PendingTasks,
		Months:         months,
	}
}
