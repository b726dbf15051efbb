package event

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the roster transition an event records.
type Type string

const (
	Enrolled  Type = "enrolled"
	Withdrawn Type = "withdrawn"
)

// RosterEvent is emitted after every successful roster mutation.
type RosterEvent struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Activity    string    `json:"activity"`
	Participant string    `json:"participant"`
	RosterSize  int       `json:"roster_size"` // after the mutation
	OccurredAt  time.Time `json:"occurred_at"`
}

// New stamps a RosterEvent with a fresh ID and the current time.
func New(typ Type, activity, participant string, rosterSize int) RosterEvent {
	return RosterEvent{
		ID:          uuid.New().String(),
		Type:        typ,
		Activity:    activity,
		Participant: participant,
		RosterSize:  rosterSize,
		OccurredAt:  time.Now().UTC(),
	}
}
