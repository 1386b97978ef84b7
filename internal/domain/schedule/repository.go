package schedule

import (
	"context"
	"time"
)

// ScheduleRepository is the read-only schedule lookup the reconciliation core
// consumes. Writes happen through the schedule administration surface, which
// is out of scope here.
type ScheduleRepository interface {
	// GetByEmployeeAndDate returns (nil, nil) when the employee has no
	// schedule row for the date: no obligation that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Schedule, error)

	// HasCheckinBefore reports whether the employee has a working-day
	// schedule on the date with a check-in time before the cutoff. Used by
	// the kiosk to list plausible check-in candidates.
	HasCheckinBefore(ctx context.Context, employeeID string, date time.Time, cutoff time.Time) (bool, error)
}
