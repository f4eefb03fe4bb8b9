package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/events"
)

// AuditWorker writes one structured log line per domain event, giving the
// admin a trail of who changed which customer or staff record.
type AuditWorker struct {
	logger *zap.Logger
}

// StartAuditWorker registers the audit handler for every event type.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) *AuditWorker {
	w := &AuditWorker{logger: logger.Named("audit")}
	if dispatcher == nil {
		return w
	}
	events.SubscribeMany(dispatcher, events.AllEventTypes, w.handle)
	return w
}

func (w *AuditWorker) handle(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("actor_id", event.Actor.ID),
		zap.String("actor", event.Actor.Username),
		zap.Time("at", event.Timestamp),
	}
	if event.CustomerID != "" {
		fields = append(fields, zap.String("customer_id", event.CustomerID))
	}
	if event.StaffID != "" {
		fields = append(fields, zap.String("staff_id", event.StaffID))
	}
	if event.Origin != "" {
		fields = append(fields, zap.String("relayed_from", event.Origin))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	w.logger.Info(string(event.Type), fields...)
	return nil
}
