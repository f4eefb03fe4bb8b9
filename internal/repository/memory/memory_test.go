package memory

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/repository"
)

func TestCustomerListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	add := func(name string, day, month int, staffID string) {
		c := &domain.Customer{Name: name, Day: day, Month: month, AssignedStaffID: staffID}
		require.NoError(t, repo.Create(ctx, c))
	}
	add("june", 5, 5, "s1")
	add("march-late", 20, 2, "s2")
	add("march-early", 3, 2, "s1")
	add("march-early-2", 3, 2, "s1")

	all, err := repo.List(ctx, repository.CustomerFilter{})
	require.NoError(t, err)
	names := []string{}
	for _, c := range all {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"march-early", "march-early-2", "march-late", "june"}, names)

	staffID := "s2"
	own, err := repo.List(ctx, repository.CustomerFilter{AssignedStaffID: &staffID})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "march-late", own[0].Name)
}

func TestCustomerPatchAndMark(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()
	c := &domain.Customer{Name: "Meera", Day: 1, Month: 0, Tracking: domain.Tracking{Messaged: true}}
	require.NoError(t, repo.Create(ctx, c))

	phone := "555-0199"
	updated, err := repo.Patch(ctx, c.ID, repository.CustomerPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Meera", updated.Name)
	assert.Equal(t, phone, updated.Phone)

	tracking, err := repo.MarkMilestone(ctx, c.ID, domain.MilestoneGreet)
	require.NoError(t, err)
	assert.Equal(t, domain.Tracking{Messaged: true, Greeted: true}, tracking)

	_, err = repo.MarkMilestone(ctx, "missing", domain.MilestoneGreet)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestStaffOrderedByUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewStaffRepository()
	for _, name := range []string{"ravi", "asha", "meena"} {
		require.NoError(t, repo.Create(ctx, &domain.StaffMember{Username: name, Role: domain.RoleStaff}))
	}
	err := repo.Create(ctx, &domain.StaffMember{Username: "asha"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.True(t, repository.IsUniqueViolation(err))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	ravi := list[2]
	ravi.Username = "asha"
	assert.ErrorIs(t, repo.Update(ctx, &ravi), repository.ErrDuplicate)
	assert.Equal(t, "asha", list[0].Username)
	assert.Equal(t, "ravi", list[2].Username)
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return issued.Add(2 * time.Hour) }

	session := domain.NewSession("s-1", domain.Principal{ID: "x", Role: domain.RoleStaff}, issued, time.Hour)
	require.NoError(t, repo.Save(ctx, session))

	_, err := repo.Get(ctx, "s-1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionDeleteByPrincipal(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Now()
	asha := domain.Principal{ID: "asha", Role: domain.RoleStaff}
	ravi := domain.Principal{ID: "ravi", Role: domain.RoleStaff}
	for _, s := range []*domain.Session{
		domain.NewSession("s-1", asha, now, time.Hour),
		domain.NewSession("s-2", asha, now, time.Hour),
		domain.NewSession("s-3", ravi, now, time.Hour),
	} {
		require.NoError(t, repo.Save(ctx, s))
	}

	require.NoError(t, repo.DeleteByPrincipal(ctx, "asha"))

	for _, id := range []string{"s-1", "s-2"} {
		_, err := repo.Get(ctx, id)
		assert.ErrorIs(t, err, repository.ErrSessionNotFound, id)
	}
	kept, err := repo.Get(ctx, "s-3")
	require.NoError(t, err)
	assert.Equal(t, "ravi", kept.Principal.ID)
}
