package milestone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/domain"
)

func TestCompletionCommitFlipsOnlyTarget(t *testing.T) {
	c := customer("c1", 10, 2, domain.Tracking{Messaged: true})

	completion, err := BeginCompletion(c, domain.MilestoneCall)
	require.NoError(t, err)
	assert.Equal(t, CompletionPending, completion.State())
	assert.Equal(t, domain.Tracking{Messaged: true, Called: true}, completion.Tracking())

	require.NoError(t, completion.Commit(completion.After))
	assert.Equal(t, CompletionCommitted, completion.State())

	diff := completion.Tracking()
	assert.Equal(t, c.Tracking.Messaged, diff.Messaged)
	assert.True(t, diff.Called)
	assert.Equal(t, c.Tracking.Greeted, diff.Greeted)
	assert.Equal(t, c.Tracking.FollowedUp, diff.FollowedUp)
}

func TestCompletionRollbackRestoresSnapshot(t *testing.T) {
	c := customer("c1", 10, 2, domain.Tracking{Messaged: true})

	completion, err := BeginCompletion(c, domain.MilestoneGreet)
	require.NoError(t, err)

	restored, err := completion.Rollback()
	require.NoError(t, err)
	assert.Equal(t, c.Tracking, restored)
	assert.Equal(t, CompletionRolledBack, completion.State())
	assert.Equal(t, c.Tracking, completion.Tracking())

	assert.ErrorIs(t, completion.Commit(domain.Tracking{}), ErrCompletionSettled)
	_, err = completion.Rollback()
	assert.ErrorIs(t, err, ErrCompletionSettled)
}

func TestBeginCompletionRejectsUnknownMilestone(t *testing.T) {
	_, err := BeginCompletion(customer("c1", 1, 0, domain.Tracking{}), domain.Milestone("WAVE"))
	assert.Error(t, err)
}
