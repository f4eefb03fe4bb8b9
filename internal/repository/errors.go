package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when a write collides with a unique key.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is ErrDuplicate or a Postgres unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, ErrDuplicate) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// duplicateError wraps a unique violation so callers can match ErrDuplicate.
func duplicateError(err error, field, value string) error {
	if !IsUniqueViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %s %q: %v", ErrDuplicate, field, value, err)
}
