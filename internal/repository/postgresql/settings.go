package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/magiclogon/attendance-backend-go/internal/domain/settings"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

// GetByOrganization implements settings.SettingsRepository.
func (s *settingsRepository) GetByOrganization(ctx context.Context, organizationID string) (settings.Thresholds, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT organization_id, late_threshold_minutes, absence_threshold_minutes
		FROM organization_settings
		WHERE organization_id = $1
	`

	var th settings.Thresholds
	err := q.QueryRow(ctx, query, organizationID).Scan(
		&th.OrganizationID, &th.LateThresholdMinutes, &th.AbsenceThresholdMinutes,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.Thresholds{}, settings.ErrSettingsNotFound
		}
		return settings.Thresholds{}, fmt.Errorf("failed to get organization settings: %w", err)
	}

	return th, nil
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}
