package settings

import "context"

type SettingsRepository interface {
	GetByOrganization(ctx context.Context, organizationID string) (Thresholds, error)
}
