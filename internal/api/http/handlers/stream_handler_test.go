package handlers

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/api/dto"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/milestone"
)

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEvent(&buf, "tasks", map[string]int{"n": 1}))
	assert.Equal(t, "event: tasks\ndata: {\"n\":1}\n\n", buf.String())
}

func TestSnapshotResponseByRole(t *testing.T) {
	today := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)
	customer := domain.Customer{ID: "c1", Name: "Meera", Day: 10, Month: 2, EventType: domain.EventTypeBirthday}

	staffView := milestone.View{Role: domain.RoleStaff, Tasks: []milestone.Task{{
		Customer: customer, Milestone: domain.MilestoneGreet, DueDate: today.AddDate(0, 0, -3), IsOverdue: true,
	}}}
	resp := snapshotResponse(staffView, today)
	assert.Equal(t, "tasks", streamEventName(staffView))
	assert.Equal(t, "2024-03-13", resp["today"])
	tasks := resp["tasks"].([]dto.TaskResponse)
	require.Len(t, tasks, 1)
	assert.Equal(t, "2024-03-10", tasks[0].DueDate)
	assert.Equal(t, "10 March", tasks[0].EventDate)
	assert.True(t, tasks[0].DraftsWish)
	assert.NotContains(t, resp, "alerts")

	adminView := milestone.View{Role: domain.RoleAdmin, Alerts: []milestone.Alert{}}
	resp = snapshotResponse(adminView, today)
	assert.Equal(t, "alerts", streamEventName(adminView))
	assert.Equal(t, []dto.AlertResponse{}, resp["alerts"])
}

func TestCustomerResponseProgress(t *testing.T) {
	c := &domain.Customer{ID: "c1", Day: 1, Month: 0, Tracking: domain.Tracking{Messaged: true, Greeted: true}}
	resp := customerResponse(c)
	shorts := ""
	for _, p := range resp.Progress {
		if p.Done {
			shorts += p.Short
		}
	}
	assert.Equal(t, "MG", shorts)
	assert.Equal(t, "1 January", resp.EventDate)
}
