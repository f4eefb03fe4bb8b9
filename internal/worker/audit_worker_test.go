package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/events"
)

func TestAuditWorkerLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core))

	event := events.New(events.EventMilestoneCompleted, domain.Principal{ID: "s1", Username: "asha", Role: domain.RoleStaff},
		events.MilestoneCompletedPayload{Milestone: domain.MilestoneCall})
	event.CustomerID = "c1"
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventStaffDeleted, domain.Principal{ID: domain.AdminID}, nil)))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "milestone_completed", entries[0].Message)
	assert.Equal(t, "audit", entries[0].LoggerName)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "asha", ctx["actor"])
	assert.Equal(t, "c1", ctx["customer_id"])
	assert.NotContains(t, entries[1].ContextMap(), "customer_id")
}
