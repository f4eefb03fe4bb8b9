// Package snapshot streams full customer snapshots to live views. Each
// subscriber gets the current state on subscribe and a fresh full read after
// every customer change event.
package snapshot

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/repository"
)

// Source lists customers. repository.CustomerRepository satisfies it.
type Source interface {
	List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error)
}

// Query selects the customers a subscriber sees. A nil AssignedStaffID means
// every customer.
type Query struct {
	AssignedStaffID *string
}

// Snapshot is one full read of the customers matching a Query.
type Snapshot struct {
	Customers []domain.Customer
	TakenAt   time.Time
	Err       error
}

type subscriber struct {
	query  Query
	notify chan struct{}
}

// Hub fans change notifications out to subscribers.
type Hub struct {
	source Source
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber

	done      chan struct{}
	closeOnce sync.Once
}

// NewHub builds a hub and registers it for customer change events.
func NewHub(source Source, dispatcher events.Dispatcher, logger *zap.Logger) *Hub {
	h := &Hub{
		source: source,
		logger: logger,
		now:    time.Now,
		subs:   make(map[int]*subscriber),
		done:   make(chan struct{}),
	}
	if dispatcher != nil {
		events.SubscribeMany(dispatcher, events.CustomerEventTypes, h.OnEvent)
	}
	return h
}

// Subscribe returns a channel carrying the current snapshot followed by one
// snapshot per change. The channel closes when ctx is done or the hub is
// closed.
func (h *Hub) Subscribe(ctx context.Context, q Query) <-chan Snapshot {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan Snapshot, 1)
	sub := &subscriber{query: q, notify: make(chan struct{}, 1)}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	go func() {
		select {
		case <-h.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		defer func() {
			cancel()
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(out)
		}()

		if !h.emit(ctx, sub.query, out) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.notify:
				if !h.emit(ctx, sub.query, out) {
					return
				}
			}
		}
	}()
	return out
}

// OnEvent wakes every subscriber. Pending wake-ups coalesce, so a burst of
// changes costs one re-read per subscriber.
func (h *Hub) OnEvent(_ context.Context, _ events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
	return nil
}

// Close ends every subscription, current and future. Live streams finish
// once their channel closes, which lets the HTTP server drain on shutdown.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) emit(ctx context.Context, q Query, out chan<- Snapshot) bool {
	if ctx.Err() != nil {
		return false
	}
	customers, err := h.source.List(ctx, repository.CustomerFilter{AssignedStaffID: q.AssignedStaffID})
	if err != nil && ctx.Err() == nil {
		h.logger.Warn("snapshot read failed", zap.Error(err))
	}
	snap := Snapshot{Customers: customers, TakenAt: h.now(), Err: err}
	select {
	case <-ctx.Done():
		return false
	case out <- snap:
		return true
	}
}
