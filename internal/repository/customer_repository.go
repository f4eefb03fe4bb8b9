package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// CustomerRepository handles persistence for customers and their tracking flags.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	// Patch merges the non-nil fields of patch into the stored record.
	Patch(ctx context.Context, id string, patch CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// List returns customers ordered by (month, day).
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error)
	// MarkMilestone sets exactly one tracking flag and returns the stored tracking.
	MarkMilestone(ctx context.Context, id string, milestone domain.Milestone) (domain.Tracking, error)
}

// CustomerFilter defines query params for customer listing.
type CustomerFilter struct {
	AssignedStaffID *string
}

// CustomerPatch lists the fields an update may change. Tracking is absent on
// purpose: MarkMilestone is the only way to change it.
type CustomerPatch struct {
	Name              *string
	Phone             *string
	EventType         *domain.EventType
	Day               *int
	Month             *int
	AssignedStaffID   *string
	AssignedStaffName *string
	Status            *domain.CustomerStatus
}

// Empty reports whether the patch changes nothing.
func (p CustomerPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.EventType == nil && p.Day == nil &&
		p.Month == nil && p.AssignedStaffID == nil && p.AssignedStaffName == nil && p.Status == nil
}

var trackingColumns = map[domain.Milestone]string{
	domain.MilestoneMessage:  "messaged",
	domain.MilestoneCall:     "called",
	domain.MilestoneGreet:    "greeted",
	domain.MilestoneFollowUp: "followed_up",
}

const customerColumns = `id, name, phone, event_type, event_day, event_month,
        assigned_staff_id, assigned_staff_name, status,
        messaged, called, greeted, followed_up, created_at, updated_at`

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, phone, event_type, event_day, event_month,
            assigned_staff_id, assigned_staff_name, status,
            messaged, called, greeted, followed_up)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.Name,
		c.Phone,
		c.EventType,
		c.Day,
		c.Month,
		c.AssignedStaffID,
		c.AssignedStaffName,
		c.Status,
		c.Tracking.Messaged,
		c.Tracking.Called,
		c.Tracking.Greeted,
		c.Tracking.FollowedUp,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *customerRepository) Patch(ctx context.Context, id string, patch CustomerPatch) (*domain.Customer, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	args := []any{}
	sets := []string{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.EventType != nil {
		set("event_type", *patch.EventType)
	}
	if patch.Day != nil {
		set("event_day", *patch.Day)
	}
	if patch.Month != nil {
		set("event_month", *patch.Month)
	}
	if patch.AssignedStaffID != nil {
		set("assigned_staff_id", *patch.AssignedStaffID)
	}
	if patch.AssignedStaffName != nil {
		set("assigned_staff_name", *patch.AssignedStaffName)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE customers SET %s, updated_at=NOW() WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), customerColumns)
	return scanCustomer(r.pool.QueryRow(ctx, query, args...))
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if filter.AssignedStaffID != nil {
		args = append(args, *filter.AssignedStaffID)
		query += fmt.Sprintf(" WHERE assigned_staff_id=$%d", len(args))
	}
	query += " ORDER BY event_month, event_day, created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *customerRepository) MarkMilestone(ctx context.Context, id string, milestone domain.Milestone) (domain.Tracking, error) {
	column, ok := trackingColumns[milestone]
	if !ok {
		return domain.Tracking{}, fmt.Errorf("unknown milestone %q", milestone)
	}
	if !validID(id) {
		return domain.Tracking{}, pgx.ErrNoRows
	}

	query := fmt.Sprintf(`
        UPDATE customers SET %s=TRUE, updated_at=NOW()
        WHERE id=$1
        RETURNING messaged, called, greeted, followed_up`, column)

	var t domain.Tracking
	if err := r.pool.QueryRow(ctx, query, id).Scan(&t.Messaged, &t.Called, &t.Greeted, &t.FollowedUp); err != nil {
		return domain.Tracking{}, err
	}
	return t, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.EventType,
		&c.Day,
		&c.Month,
		&c.AssignedStaffID,
		&c.AssignedStaffName,
		&c.Status,
		&c.Tracking.Messaged,
		&c.Tracking.Called,
		&c.Tracking.Greeted,
		&c.Tracking.FollowedUp,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
