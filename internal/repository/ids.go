package repository

import "github.com/google/uuid"

// validID reports whether id can address a row. Malformed ids are treated as
// missing rows instead of surfacing a database cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
