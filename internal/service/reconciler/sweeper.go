package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/employee"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
	"github.com/magiclogon/attendance-backend-go/internal/domain/settings"
)

// Sweeper closes out the day's no-shows. An employee whose absence deadline
// (scheduled check-in plus the organization's absence threshold) has passed
// without a check-in gets their record moved to ABSENT. All writes are
// conditional, so a check-in that lands mid-sweep always wins.
type Sweeper struct {
	presenceRepo presence.PresenceRepository
	scheduleRepo schedule.ScheduleRepository
	settingsRepo settings.SettingsRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewSweeper(
	presenceRepo presence.PresenceRepository,
	scheduleRepo schedule.ScheduleRepository,
	settingsRepo settings.SettingsRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		presenceRepo: presenceRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Sweep runs one absence pass for the day containing now. It only ever
// touches records that are still NOT_OPENED; PRESENT, LATE and terminal
// records are left alone. Safe to run as often as wanted.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) error {
	day := presence.DateOf(now)

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var swept int
	for _, emp := range employees {
		ok, err := s.sweepEmployee(ctx, emp, day, now)
		if err != nil {
			s.logger.Error("sweeper: employee sweep failed",
				"employee_id", emp.ID, "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		if ok {
			swept++
		}
	}

	if swept > 0 {
		s.logger.Info("sweeper: absences recorded",
			"date", day.Format("2006-01-02"), "count", swept)
	}
	return nil
}

func (s *Sweeper) sweepEmployee(ctx context.Context, emp employee.Employee, day time.Time, now time.Time) (bool, error) {
	sched, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		return false, err
	}
	if sched == nil || sched.IsDayOff {
		return false, nil
	}

	th, err := s.settingsRepo.GetByOrganization(ctx, emp.OrganizationID)
	if err != nil {
		return false, err
	}

	deadline := sched.CheckinOn(day).Add(time.Duration(th.AbsenceThresholdMinutes) * time.Minute)
	if now.Before(deadline) {
		return false, nil
	}

	rec, err := s.presenceRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		return false, err
	}
	if rec == nil {
		// The provisioner never ran for this employee; the deadline has
		// already passed, so the record is born ABSENT. If a concurrent
		// check-in seeds the record first, fall through to the conditional
		// update below.
		absent := presence.NewDayRecord(emp.ID, emp.OrganizationID, day, false)
		absent.Status = presence.StatusAbsent
		stored, created, err := s.presenceRepo.CreateIfAbsent(ctx, absent)
		if err != nil {
			return false, err
		}
		if created {
			return true, nil
		}
		rec = &stored
	}

	if rec.Status != presence.StatusNotOpened {
		return false, nil
	}

	update := *rec
	update.Status = presence.StatusAbsent
	applied, err := s.presenceRepo.UpdateIfStatus(ctx, update, presence.StatusNotOpened)
	if err != nil {
		return false, err
	}
	// A lost update means a check-in won the race. That is the right outcome,
	// not an error.
	return applied, nil
}
