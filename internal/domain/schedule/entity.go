package schedule

import "time"

// Schedule is the planned shift for one employee on one calendar day. The
// reconciliation core only ever reads it; creating and editing schedules is
// ordinary data entry handled elsewhere.
type Schedule struct {
	ID             string
	EmployeeID     string
	Name           string
	Date           time.Time // calendar day, midnight
	CheckinTime    time.Time // clock part only
	CheckoutTime   time.Time // clock part only
	BreakStartTime *time.Time
	BreakEndTime   *time.Time
	IsDayOff       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CheckinOn composes the scheduled check-in clock time onto the given day.
func (s Schedule) CheckinOn(date time.Time) time.Time {
	return at(date, s.CheckinTime)
}

// CheckoutOn composes the scheduled checkout clock time onto the given day.
// A checkout clock time at or before the check-in clock time means the shift
// ends on the next day.
func (s Schedule) CheckoutOn(date time.Time) time.Time {
	out := at(date, s.CheckoutTime)
	if !out.After(at(date, s.CheckinTime)) {
		out = out.Add(24 * time.Hour)
	}
	return out
}

func at(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}
