package presence

import "errors"

// Presence domain errors. The check-in/check-out rejections are expected
// business outcomes and are surfaced to the caller as-is, never as 500s.
var (
	// Gate rejections
	ErrDayOff             = errors.New("today is a day off")
	ErrTooEarlyToCheckIn  = errors.New("too early to check in")
	ErrTooLateToCheckIn   = errors.New("check-in window has closed")
	ErrAlreadyCheckedIn   = errors.New("check-in already recorded")
	ErrTooEarlyToCheckOut = errors.New("too early to check out")
	ErrAlreadyCheckedOut  = errors.New("checkout already recorded")
	ErrRecordClosed       = errors.New("presence record is closed for today")
	ErrVerificationFailed = errors.New("face verification failed")

	// General errors
	ErrPresenceNotFound = errors.New("presence record not found")

	// ErrConflict signals a lost compare-and-set race that could not be
	// resolved by re-reading the record.
	ErrConflict = errors.New("presence record was modified concurrently")
)
