package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

// GetByEmployeeAndDate implements schedule.ScheduleRepository.
func (s *scheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, employee_id, name, date,
			   checkin_time, checkout_time,
			   break_start_time, break_end_time,
			   is_day_off, created_at, updated_at
		FROM schedules
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var sched schedule.Schedule
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&sched.ID, &sched.EmployeeID, &sched.Name, &sched.Date,
		&sched.CheckinTime, &sched.CheckoutTime,
		&sched.BreakStartTime, &sched.BreakEndTime,
		&sched.IsDayOff, &sched.CreatedAt, &sched.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No work obligation for this day
		}
		return nil, fmt.Errorf("failed to get schedule by employee and date: %w", err)
	}

	return &sched, nil
}

// HasCheckinBefore implements schedule.ScheduleRepository. Used by the kiosk
// setup endpoint to surface only employees whose shift opens before the
// cutoff instant.
func (s *scheduleRepository) HasCheckinBefore(ctx context.Context, employeeID string, date time.Time, cutoff time.Time) (bool, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM schedules
			WHERE employee_id = $1
			  AND date = $2
			  AND is_day_off = FALSE
			  AND (date + checkin_time::time) <= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, cutoff).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check schedule cutoff: %w", err)
	}

	return exists, nil
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}
