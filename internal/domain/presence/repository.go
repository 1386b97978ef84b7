package presence

import (
	"context"
	"time"
)

// PresenceRepository defines data access for presence records. A record is
// keyed (employee_id, date) and is the only shared resource the gateway and
// the periodic jobs race on, so the write methods carry the concurrency
// contract: conditional creation and compare-and-set updates keyed on the
// previously read status.
type PresenceRepository interface {
	// GetByEmployeeAndDate returns (nil, nil) when no record exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Presence, error)

	// CreateIfAbsent inserts the record unless one already exists for the
	// (employee, date) key. It returns the stored record either way and
	// reports whether this call created it. It never overwrites.
	CreateIfAbsent(ctx context.Context, rec Presence) (Presence, bool, error)

	// UpdateIfStatus applies the record's status, check-in and checkout
	// fields only if the stored status still equals expected. It reports
	// whether the write was applied; false means another writer got there
	// first and the caller's decision is stale.
	UpdateIfStatus(ctx context.Context, rec Presence, expected Status) (bool, error)

	// ListByOrganizationAndDate returns all records for an organization on a
	// date, employee names included.
	ListByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]Presence, error)

	// CountByStatus counts an organization's records on a date whose status
	// is in statuses.
	CountByStatus(ctx context.Context, organizationID string, date time.Time, statuses []Status) (int64, error)
}
