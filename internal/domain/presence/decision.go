package presence

import (
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
	"github.com/magiclogon/attendance-backend-go/internal/domain/settings"
)

// EarlyCheckinWindow is how far before the scheduled check-in time a gate
// event is still accepted. It is deliberately fixed and tight, unlike the
// configurable late/absence thresholds, so a spoofed early check-in cannot
// open a record hours ahead of the shift.
const EarlyCheckinWindow = 20 * time.Minute

// Action tells the caller which transition a decision applied.
type Action string

const (
	ActionCheckIn  Action = "CHECK_IN"
	ActionCheckOut Action = "CHECK_OUT"
)

// Decision is the accepted outcome of one gate event. From is the status the
// decision was computed against; every write derived from a Decision must be
// compare-and-set guarded on it so a concurrent sweep cannot be overwritten.
type Decision struct {
	Action Action
	From   Status
	Record Presence
}

// Decide is the attendance state machine: it converts the current record,
// the day's schedule, the organization thresholds and the wall-clock time
// into the next record state, or a rejection. It is pure: no clock reads, no
// I/O, no mutation of its arguments.
//
// A single gate event does not declare intent; the transition is inferred
// from the current status. NOT_OPENED means a check-in attempt, PRESENT and
// LATE mean a checkout attempt, terminal statuses reject everything.
func Decide(rec Presence, sched schedule.Schedule, th settings.Thresholds, now time.Time) (Decision, error) {
	if sched.IsDayOff {
		return Decision{}, ErrDayOff
	}

	if rec.Status.Terminal() {
		return Decision{}, ErrRecordClosed
	}

	if rec.Status.CheckedIn() {
		if rec.CheckoutTime != nil {
			return Decision{}, ErrAlreadyCheckedOut
		}
		if !now.After(sched.CheckoutOn(rec.Date)) {
			return Decision{}, ErrTooEarlyToCheckOut
		}
		from := rec.Status
		rec.CheckoutTime = &now
		return Decision{Action: ActionCheckOut, From: from, Record: rec}, nil
	}

	// NOT_OPENED from here on.
	if rec.CheckinTime != nil {
		return Decision{}, ErrAlreadyCheckedIn
	}

	scheduledIn := sched.CheckinOn(rec.Date)
	if now.Before(scheduledIn.Add(-EarlyCheckinWindow)) {
		return Decision{}, ErrTooEarlyToCheckIn
	}

	switch {
	case now.Before(scheduledIn.Add(time.Duration(th.LateThresholdMinutes) * time.Minute)):
		rec.Status = StatusPresent
	case now.Before(sched.CheckoutOn(rec.Date)):
		rec.Status = StatusLate
	default:
		// The whole window has closed; the record stays NOT_OPENED and the
		// sweeper will close it out as ABSENT.
		return Decision{}, ErrTooLateToCheckIn
	}

	rec.CheckinTime = &now
	return Decision{Action: ActionCheckIn, From: StatusNotOpened, Record: rec}, nil
}
