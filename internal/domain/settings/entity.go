package settings

// Thresholds are the per-organization knobs of the attendance state machine.
// Both are minutes counted from the scheduled check-in time: LateThreshold
// separates PRESENT from LATE, AbsenceThreshold is how long the sweeper waits
// before closing a no-show out as ABSENT.
type Thresholds struct {
	OrganizationID          string
	LateThresholdMinutes    int
	AbsenceThresholdMinutes int
}
