package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	Update(ctx context.Context, staff *domain.StaffMember) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error)
	// List returns every staff member ordered by username.
	List(ctx context.Context) ([]domain.StaffMember, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, username, password_hash, role, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff (username, password_hash, role)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		staff.Username,
		staff.PasswordHash,
		staff.Role,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	return duplicateError(err, "username", staff.Username)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	if !validID(staff.ID) {
		return pgx.ErrNoRows
	}
	const query = `
        UPDATE staff
        SET username=$1, password_hash=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		staff.Username,
		staff.PasswordHash,
		staff.ID,
	).Scan(&staff.UpdatedAt)
	return duplicateError(err, "username", staff.Username)
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	if !validID(id) {
		return nil, pgx.ErrNoRows
	}
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id=$1`
	return scanStaff(r.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE username=$1`
	return scanStaff(r.pool.QueryRow(ctx, query, username))
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY username`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.StaffMember, 0)
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func scanStaff(row pgx.Row) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	if err := row.Scan(
		&staff.ID,
		&staff.Username,
		&staff.PasswordHash,
		&staff.Role,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}
