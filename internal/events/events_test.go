package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/domain"
)

func TestDispatcherRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string
	d.Subscribe(EventCustomerCreated, func(context.Context, Event) error {
		seen = append(seen, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventCustomerCreated, func(context.Context, Event) error {
		seen = append(seen, "second")
		return nil
	})
	d.Subscribe(EventStaffCreated, func(context.Context, Event) error {
		seen = append(seen, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventCustomerCreated, domain.Principal{ID: domain.AdminID}, nil))
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestSubscribeMany(t *testing.T) {
	d := NewInMemoryDispatcher()
	count := 0
	SubscribeMany(d, CustomerEventTypes, func(context.Context, Event) error {
		count++
		return nil
	})
	for _, et := range AllEventTypes {
		require.NoError(t, d.Publish(context.Background(), Event{Type: et}))
	}
	assert.Equal(t, len(CustomerEventTypes), count)
}

func TestRelayEncoding(t *testing.T) {
	event := New(EventMilestoneCompleted, domain.Principal{ID: "s1", Username: "asha", Role: domain.RoleStaff}, nil)
	event.CustomerID = "c1"

	raw, err := encode(event, "instance-a")
	require.NoError(t, err)

	decoded, err := decode(string(raw))
	require.NoError(t, err)
	assert.Equal(t, "instance-a", decoded.Origin)
	assert.Equal(t, EventMilestoneCompleted, decoded.Type)
	assert.Equal(t, "c1", decoded.CustomerID)
	assert.Equal(t, "asha", decoded.Actor.Username)
	assert.Empty(t, event.Origin)

	_, err = decode(`{"type":"customer_created"}`)
	assert.Error(t, err)
}

func TestForwardSkipsRelayedEvents(t *testing.T) {
	b := &RedisBridge{origin: "me"}
	assert.NoError(t, b.Forward(context.Background(), Event{Type: EventCustomerUpdated, Origin: "someone-else"}))
}
