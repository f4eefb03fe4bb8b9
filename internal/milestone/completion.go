package milestone

import (
	"errors"
	"fmt"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// CompletionState is the lifecycle of one milestone completion.
type CompletionState string

const (
	CompletionPending    CompletionState = "PENDING"
	CompletionCommitted  CompletionState = "COMMITTED"
	CompletionRolledBack CompletionState = "ROLLED_BACK"
)

// ErrCompletionSettled is returned when a completion that already left the
// pending state is settled again.
var ErrCompletionSettled = errors.New("completion already settled")

// Completion tracks an optimistic update of a single tracking flag.
// Pending exposes the optimistic tracking, Committed the stored tracking and
// RolledBack the snapshot taken before the mutation.
type Completion struct {
	CustomerID string
	Milestone  domain.Milestone
	Before     domain.Tracking
	After      domain.Tracking
	state      CompletionState
}

// BeginCompletion starts a pending completion of m for customer c.
func BeginCompletion(c domain.Customer, m domain.Milestone) (*Completion, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown milestone %q", m)
	}
	return &Completion{
		CustomerID: c.ID,
		Milestone:  m,
		Before:     c.Tracking,
		After:      c.Tracking.With(m),
		state:      CompletionPending,
	}, nil
}

// State reports the current lifecycle state.
func (c *Completion) State() CompletionState {
	return c.state
}

// Tracking returns the tracking that should currently be presented.
func (c *Completion) Tracking() domain.Tracking {
	if c.state == CompletionRolledBack {
		return c.Before
	}
	return c.After
}

// Commit settles the completion with the tracking the store persisted.
func (c *Completion) Commit(stored domain.Tracking) error {
	if c.state != CompletionPending {
		return ErrCompletionSettled
	}
	c.After = stored
	c.state = CompletionCommitted
	return nil
}

// Rollback settles the completion as failed and returns the restored snapshot.
func (c *Completion) Rollback() (domain.Tracking, error) {
	if c.state != CompletionPending {
		return c.Tracking(), ErrCompletionSettled
	}
	c.state = CompletionRolledBack
	return c.Before, nil
}
