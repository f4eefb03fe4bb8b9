package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEventDate(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		month int
		valid bool
	}{
		{"first of january", 1, 0, true},
		{"leap day", 29, 1, true},
		{"february 30", 30, 1, false},
		{"april 31", 31, 3, false},
		{"december 31", 31, 11, true},
		{"day zero", 0, 4, false},
		{"month twelve", 10, 12, false},
		{"negative month", 10, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidEventDate(tt.day, tt.month))
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	var empty Session
	assert.False(t, empty.Authenticated)
	assert.True(t, empty.IsExpired(time.Now()))

	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	session := NewSession("s-1", Principal{ID: "staff-1", Username: "asha", Role: RoleStaff}, issued, time.Hour)
	assert.True(t, session.Authenticated)
	assert.False(t, session.IsExpired(issued.Add(30*time.Minute)))
	assert.True(t, session.IsExpired(issued.Add(time.Hour)))

	session.Clear()
	assert.Nil(t, session.Principal)
	assert.True(t, session.IsExpired(issued))
}
