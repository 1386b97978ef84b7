package presence

import "time"

// Status is the reconciled outcome of one scheduled work period.
type Status string

const (
	StatusNotOpened Status = "NOT_OPENED"
	StatusPresent   Status = "PRESENT"
	StatusLate      Status = "LATE"
	StatusAbsent    Status = "ABSENT"
	StatusFree      Status = "FREE"
)

var StatusValues = []string{
	string(StatusNotOpened),
	string(StatusPresent),
	string(StatusLate),
	string(StatusAbsent),
	string(StatusFree),
}

// Terminal reports whether no further transition is permitted for the day.
func (s Status) Terminal() bool {
	return s == StatusAbsent || s == StatusFree
}

// CheckedIn reports whether a check-in has been accepted.
func (s Status) CheckedIn() bool {
	return s == StatusPresent || s == StatusLate
}

type Presence struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	Date           time.Time // calendar day, midnight
	CheckinTime    *time.Time
	CheckoutTime   *time.Time
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}

// DateOf truncates a timestamp to its calendar day, preserving the location
// so schedule clock times compose back onto the same day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NewDayRecord builds the record the daily provisioner seeds for one employee:
// FREE when the schedule marks the day off, NOT_OPENED otherwise. The gateway
// uses the same constructor when it has to provision lazily.
func NewDayRecord(employeeID, organizationID string, date time.Time, dayOff bool) Presence {
	status := StatusNotOpened
	if dayOff {
		status = StatusFree
	}
	return Presence{
		EmployeeID:     employeeID,
		OrganizationID: organizationID,
		Date:           DateOf(date),
		Status:         status,
	}
}
