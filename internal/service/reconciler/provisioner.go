package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/employee"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
)

// Provisioner seeds the day's presence records before shifts start. One
// record per active employee with a schedule: FREE when the day is off,
// NOT_OPENED otherwise. Employees without a schedule for the day get no
// record at all.
type Provisioner struct {
	presenceRepo presence.PresenceRepository
	scheduleRepo schedule.ScheduleRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewProvisioner(
	presenceRepo presence.PresenceRepository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) *Provisioner {
	return &Provisioner{
		presenceRepo: presenceRepo,
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// ProvisionDay creates the missing records for one calendar day. Conditional
// creation makes it safe to run any number of times: records that already
// exist, whatever their state by now, are left untouched. A failure for one
// employee never blocks the rest.
func (p *Provisioner) ProvisionDay(ctx context.Context, date time.Time) error {
	day := presence.DateOf(date)

	employees, err := p.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var created int
	for _, emp := range employees {
		sched, err := p.scheduleRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
		if err != nil {
			p.logger.Error("provisioner: schedule lookup failed",
				"employee_id", emp.ID, "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		if sched == nil {
			// No work obligation, no record.
			continue
		}

		_, ok, err := p.presenceRepo.CreateIfAbsent(ctx,
			presence.NewDayRecord(emp.ID, emp.OrganizationID, day, sched.IsDayOff))
		if err != nil {
			p.logger.Error("provisioner: record creation failed",
				"employee_id", emp.ID, "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		if ok {
			created++
		}
	}

	p.logger.Info("provisioner: day provisioned",
		"date", day.Format("2006-01-02"), "employees", len(employees), "created", created)
	return nil
}
