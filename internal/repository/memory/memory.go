// Package memory provides in-process implementations of the repositories,
// used when no database is configured and as test doubles.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/repository"
)

// StaffRepository keeps staff members in a map.
type StaffRepository struct {
	mu    sync.RWMutex
	items map[string]domain.StaffMember
}

// NewStaffRepository returns an empty repository.
func NewStaffRepository() *StaffRepository {
	return &StaffRepository{items: make(map[string]domain.StaffMember)}
}

var _ repository.StaffRepository = (*StaffRepository)(nil)

func (r *StaffRepository) Create(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Username == staff.Username {
			return fmt.Errorf("%w: username %q", repository.ErrDuplicate, staff.Username)
		}
	}
	now := time.Now().UTC()
	staff.ID = uuid.NewString()
	staff.CreatedAt = now
	staff.UpdatedAt = now
	r.items[staff.ID] = *staff
	return nil
}

func (r *StaffRepository) Update(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[staff.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.items {
		if id != staff.ID && existing.Username == staff.Username {
			return fmt.Errorf("%w: username %q", repository.ErrDuplicate, staff.Username)
		}
	}
	current.Username = staff.Username
	current.PasswordHash = staff.PasswordHash
	current.UpdatedAt = time.Now().UTC()
	r.items[staff.ID] = current
	staff.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *StaffRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *StaffRepository) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	staff, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &staff, nil
}

func (r *StaffRepository) GetByUsername(_ context.Context, username string) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, staff := range r.items {
		if staff.Username == username {
			s := staff
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *StaffRepository) List(_ context.Context) ([]domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StaffMember, 0, len(r.items))
	for _, staff := range r.items {
		out = append(out, staff)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type storedCustomer struct {
	customer domain.Customer
	seq      int
}

// CustomerRepository keeps customers in a map, ordered like the Postgres
// implementation by (month, day, insertion).
type CustomerRepository struct {
	mu    sync.RWMutex
	seq   int
	items map[string]storedCustomer
}

// NewCustomerRepository returns an empty repository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{items: make(map[string]storedCustomer)}
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.seq++
	r.items[c.ID] = storedCustomer{customer: *c, seq: r.seq}
	return nil
}

func (r *CustomerRepository) Patch(_ context.Context, id string, patch repository.CustomerPatch) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := &stored.customer
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.EventType != nil {
		c.EventType = *patch.EventType
	}
	if patch.Day != nil {
		c.Day = *patch.Day
	}
	if patch.Month != nil {
		c.Month = *patch.Month
	}
	if patch.AssignedStaffID != nil {
		c.AssignedStaffID = *patch.AssignedStaffID
	}
	if patch.AssignedStaffName != nil {
		c.AssignedStaffName = *patch.AssignedStaffName
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if !patch.Empty() {
		c.UpdatedAt = time.Now().UTC()
	}
	r.items[id] = stored
	out := stored.customer
	return &out, nil
}

func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c := stored.customer
	return &c, nil
}

func (r *CustomerRepository) List(_ context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]storedCustomer, 0, len(r.items))
	for _, stored := range r.items {
		if filter.AssignedStaffID != nil && stored.customer.AssignedStaffID != *filter.AssignedStaffID {
			continue
		}
		matched = append(matched, stored)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.customer.Month != b.customer.Month {
			return a.customer.Month < b.customer.Month
		}
		if a.customer.Day != b.customer.Day {
			return a.customer.Day < b.customer.Day
		}
		return a.seq < b.seq
	})
	out := make([]domain.Customer, 0, len(matched))
	for _, stored := range matched {
		out = append(out, stored.customer)
	}
	return out, nil
}

func (r *CustomerRepository) MarkMilestone(_ context.Context, id string, milestone domain.Milestone) (domain.Tracking, error) {
	if !milestone.Valid() {
		return domain.Tracking{}, fmt.Errorf("unknown milestone %q", milestone)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return domain.Tracking{}, pgx.ErrNoRows
	}
	stored.customer.Tracking = stored.customer.Tracking.With(milestone)
	stored.customer.UpdatedAt = time.Now().UTC()
	r.items[id] = stored
	return stored.customer.Tracking, nil
}

// SessionRepository keeps sessions in a map and honours their expiry.
type SessionRepository struct {
	mu    sync.Mutex
	items map[string]domain.Session
	now   func() time.Time
}

// NewSessionRepository returns an empty session store.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{items: make(map[string]domain.Session), now: time.Now}
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[id]
	if !ok || session.IsExpired(r.now()) {
		delete(r.items, id)
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[session.ID] = *session
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *SessionRepository) DeleteByPrincipal(_ context.Context, principalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.items {
		if session.Principal != nil && session.Principal.ID == principalID {
			delete(r.items, id)
		}
	}
	return nil
}
