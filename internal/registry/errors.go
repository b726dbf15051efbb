package registry

import (
	"errors"
	"fmt"
)

// Kind classifies a registry failure.
type Kind string

const (
	KindActivityNotFound   Kind = "activity_not_found"
	KindAlreadyEnrolled    Kind = "already_enrolled"
	KindNotEnrolled        Kind = "not_enrolled"
	KindActivityFull       Kind = "activity_full"
	KindInvalidParticipant Kind = "invalid_participant"
)

// Sentinels for errors.Is. A *Error matches the sentinel of its Kind.
var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrAlreadyEnrolled    = errors.New("student is already signed up")
	ErrNotEnrolled        = errors.New("student is not signed up")
	ErrActivityFull       = errors.New("activity is full")
	ErrInvalidParticipant = errors.New("participant identifier is empty")
)

var sentinels = map[Kind]error{
	KindActivityNotFound:   ErrActivityNotFound,
	KindAlreadyEnrolled:    ErrAlreadyEnrolled,
	KindNotEnrolled:        ErrNotEnrolled,
	KindActivityFull:       ErrActivityFull,
	KindInvalidParticipant: ErrInvalidParticipant,
}

// Error is returned by every failing registry operation.
type Error struct {
	Kind        Kind
	Activity    string
	Participant string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindActivityNotFound:
		return fmt.Sprintf("activity %q does not exist", e.Activity)
	case KindAlreadyEnrolled:
		return fmt.Sprintf("%s is already signed up for %s", e.Participant, e.Activity)
	case KindNotEnrolled:
		return fmt.Sprintf("%s is not signed up for %s", e.Participant, e.Activity)
	case KindActivityFull:
		return fmt.Sprintf("%s is full", e.Activity)
	case KindInvalidParticipant:
		return fmt.Sprintf("participant identifier for %s is empty", e.Activity)
	}
	return fmt.Sprintf("registry error %q", e.Kind)
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// KindOf extracts the Kind from err, or "" if err is not a registry error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
