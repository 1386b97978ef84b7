package presence

import (
	"context"
	"time"
)

// PresenceService defines the gateway and the read operations built on the
// presence records.
type PresenceService interface {
	// RecordCheck is the single gate entry point. It infers check-in versus
	// checkout from the current record state and persists the state
	// machine's decision with compare-and-set semantics.
	RecordCheck(ctx context.Context, event RecordCheckEvent) (PresenceResponse, error)

	// GetEmployeePresence returns one employee's record for a date.
	GetEmployeePresence(ctx context.Context, employeeID string, date time.Time) (PresenceResponse, error)

	// ListByDate returns all of an organization's records for a date.
	ListByDate(ctx context.Context, organizationID string, date time.Time) ([]PresenceResponse, error)

	// DayStats returns per-status counts for an organization and date.
	DayStats(ctx context.Context, organizationID string, date time.Time) (DayStatsResponse, error)

	// CheckedInCount counts records already PRESENT or LATE on a date.
	CheckedInCount(ctx context.Context, organizationID string, date time.Time) (int64, error)
}
