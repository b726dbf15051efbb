package event_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/activities/internal/event"
)

func TestNew(t *testing.T) {
	ev := event.New(event.Enrolled, "Chess Club", "a@mergington.edu", 3)

	_, err := uuid.Parse(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Enrolled, ev.Type)
	assert.Equal(t, "Chess Club", ev.Activity)
	assert.Equal(t, "a@mergington.edu", ev.Participant)
	assert.Equal(t, 3, ev.RosterSize)
	assert.False(t, ev.OccurredAt.IsZero())

	other := event.New(event.Withdrawn, "Chess Club", "a@mergington.edu", 2)
	assert.NotEqual(t, ev.ID, other.ID)
}
