package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/magiclogon/attendance-backend-go/internal/domain/organization"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/database"
)

type organizationRepository struct {
	db *database.DB
}

// GetByID implements organization.OrganizationRepository.
func (o *organizationRepository) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, camera_code, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.CameraCode, &org.CreatedAt, &org.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization by id: %w", err)
	}

	return org, nil
}

// GetByCameraCode implements organization.OrganizationRepository.
func (o *organizationRepository) GetByCameraCode(ctx context.Context, cameraCode string) (organization.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, camera_code, created_at, updated_at
		FROM organizations
		WHERE camera_code = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, cameraCode).Scan(
		&org.ID, &org.Name, &org.CameraCode, &org.CreatedAt, &org.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Organization{}, organization.ErrCameraCodeNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization by camera code: %w", err)
	}

	return org, nil
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}
