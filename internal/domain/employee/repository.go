package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns every active employee across all organizations.
	// The periodic jobs iterate this set once per run.
	ListActive(ctx context.Context) ([]Employee, error)

	ListActiveByOrganization(ctx context.Context, organizationID string) ([]Employee, error)
}
