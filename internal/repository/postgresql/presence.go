package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/database"
)

type presenceRepository struct {
	db *database.DB
}

// GetByEmployeeAndDate implements presence.PresenceRepository.
func (p *presenceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*presence.Presence, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, organization_id, date,
			   checkin_time, checkout_time, status,
			   created_at, updated_at
		FROM presences
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var rec presence.Presence
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID, &rec.EmployeeID, &rec.OrganizationID, &rec.Date,
		&rec.CheckinTime, &rec.CheckoutTime, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record provisioned for this day yet
		}
		return nil, fmt.Errorf("failed to get presence by employee and date: %w", err)
	}

	return &rec, nil
}

// CreateIfAbsent implements presence.PresenceRepository. The unique
// (employee_id, date) constraint makes the insert the arbiter: exactly one
// of any number of concurrent callers creates the row, everyone else gets
// the row that won.
func (p *presenceRepository) CreateIfAbsent(ctx context.Context, rec presence.Presence) (presence.Presence, bool, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO presences (
			employee_id, organization_id, date,
			checkin_time, checkout_time, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.OrganizationID,
		rec.Date,
		rec.CheckinTime,
		rec.CheckoutTime,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err == nil {
		return rec, true, nil
	}
	if err != pgx.ErrNoRows {
		return presence.Presence{}, false, fmt.Errorf("failed to create presence: %w", err)
	}

	// Lost the insert race, return the existing row.
	existing, err := p.GetByEmployeeAndDate(ctx, rec.EmployeeID, rec.Date)
	if err != nil {
		return presence.Presence{}, false, err
	}
	if existing == nil {
		return presence.Presence{}, false, fmt.Errorf("presence row vanished after conflicting insert")
	}

	return *existing, false, nil
}

// UpdateIfStatus implements presence.PresenceRepository. The status guard in
// the WHERE clause is the compare-and-set: if another writer moved the record
// first, zero rows match and the caller learns it lost.
func (p *presenceRepository) UpdateIfStatus(ctx context.Context, rec presence.Presence, expected presence.Status) (bool, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE presences
		SET status = $1,
			checkin_time = $2,
			checkout_time = $3,
			updated_at = NOW()
		WHERE employee_id = $4
		  AND date = $5
		  AND status = $6
	`

	tag, err := q.Exec(ctx, query,
		rec.Status,
		rec.CheckinTime,
		rec.CheckoutTime,
		rec.EmployeeID,
		rec.Date,
		expected,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update presence: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListByOrganizationAndDate implements presence.PresenceRepository.
func (p *presenceRepository) ListByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]presence.Presence, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT p.id, p.employee_id, p.organization_id, p.date,
			   p.checkin_time, p.checkout_time, p.status,
			   p.created_at, p.updated_at,
			   e.full_name AS employee_name
		FROM presences p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.organization_id = $1
		  AND p.date = $2
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, organizationID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list presences: %w", err)
	}
	defer rows.Close()

	var records []presence.Presence
	for rows.Next() {
		var rec presence.Presence
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.OrganizationID, &rec.Date,
			&rec.CheckinTime, &rec.CheckoutTime, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan presence row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate presence rows: %w", err)
	}

	return records, nil
}

// CountByStatus implements presence.PresenceRepository.
func (p *presenceRepository) CountByStatus(ctx context.Context, organizationID string, date time.Time, statuses []presence.Status) (int64, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT COUNT(*)
		FROM presences
		WHERE organization_id = $1
		  AND date = $2
		  AND status = ANY($3)
	`

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var count int64
	if err := q.QueryRow(ctx, query, organizationID, date, values).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count presences by status: %w", err)
	}

	return count, nil
}

func NewPresenceRepository(db *database.DB) presence.PresenceRepository {
	return &presenceRepository{db: db}
}
