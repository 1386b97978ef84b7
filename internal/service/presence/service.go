package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/employee"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
	"github.com/magiclogon/attendance-backend-go/internal/domain/settings"
)

type PresenceServiceImpl struct {
	presence.PresenceRepository
	schedule.ScheduleRepository
	settings.SettingsRepository
	employee.EmployeeRepository
}

// RecordCheck implements presence.PresenceService. It is the single entry
// point for gate events: the transition (check-in versus checkout) is
// inferred from the stored record, decided by the state machine, and written
// back with a compare-and-set on the status the decision was computed from.
func (s *PresenceServiceImpl) RecordCheck(ctx context.Context, event presence.RecordCheckEvent) (presence.PresenceResponse, error) {
	if err := event.Validate(); err != nil {
		return presence.PresenceResponse{}, err
	}

	// An unverified event never reaches the record.
	if !event.Verified {
		return presence.PresenceResponse{}, presence.ErrVerificationFailed
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, event.EmployeeID)
	if err != nil {
		return presence.PresenceResponse{}, err
	}

	date := presence.DateOf(event.Timestamp)

	sched, err := s.ScheduleRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return presence.PresenceResponse{}, err
	}
	if sched == nil {
		return presence.PresenceResponse{}, schedule.ErrScheduleNotFound
	}

	th, err := s.SettingsRepository.GetByOrganization(ctx, emp.OrganizationID)
	if err != nil {
		return presence.PresenceResponse{}, err
	}

	rec, err := s.PresenceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return presence.PresenceResponse{}, err
	}
	if rec == nil {
		// The provisioner has not run for this day yet; seed the record here.
		// CreateIfAbsent hands back whichever record won if someone else
		// seeded it first.
		seeded, _, err := s.PresenceRepository.CreateIfAbsent(ctx,
			presence.NewDayRecord(emp.ID, emp.OrganizationID, date, sched.IsDayOff))
		if err != nil {
			return presence.PresenceResponse{}, err
		}
		rec = &seeded
	}

	decision, err := presence.Decide(*rec, *sched, th, event.Timestamp)
	if err != nil {
		return presence.PresenceResponse{}, err
	}

	applied, err := s.PresenceRepository.UpdateIfStatus(ctx, decision.Record, decision.From)
	if err != nil {
		return presence.PresenceResponse{}, err
	}
	if !applied {
		// Another writer moved the record between our read and our write. The
		// decision is stale; report what the record looks like now instead of
		// retrying a transition that no longer applies.
		current, err := s.PresenceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			return presence.PresenceResponse{}, err
		}
		return presence.PresenceResponse{}, rejectionForCurrent(current)
	}

	return presence.MapToResponse(decision.Record), nil
}

// rejectionForCurrent translates the state observed after a lost
// compare-and-set into the rejection the caller would have received had it
// read that state in the first place.
func rejectionForCurrent(current *presence.Presence) error {
	if current == nil {
		return presence.ErrConflict
	}
	if current.Status.Terminal() {
		return presence.ErrRecordClosed
	}
	if current.Status.CheckedIn() {
		if current.CheckoutTime != nil {
			return presence.ErrAlreadyCheckedOut
		}
		return presence.ErrAlreadyCheckedIn
	}
	return presence.ErrConflict
}

// GetEmployeePresence implements presence.PresenceService.
func (s *PresenceServiceImpl) GetEmployeePresence(ctx context.Context, employeeID string, date time.Time) (presence.PresenceResponse, error) {
	rec, err := s.PresenceRepository.GetByEmployeeAndDate(ctx, employeeID, presence.DateOf(date))
	if err != nil {
		return presence.PresenceResponse{}, err
	}
	if rec == nil {
		return presence.PresenceResponse{}, presence.ErrPresenceNotFound
	}
	return presence.MapToResponse(*rec), nil
}

// ListByDate implements presence.PresenceService.
func (s *PresenceServiceImpl) ListByDate(ctx context.Context, organizationID string, date time.Time) ([]presence.PresenceResponse, error) {
	records, err := s.PresenceRepository.ListByOrganizationAndDate(ctx, organizationID, presence.DateOf(date))
	if err != nil {
		return nil, err
	}

	responses := make([]presence.PresenceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, presence.MapToResponse(rec))
	}
	return responses, nil
}

// DayStats implements presence.PresenceService.
func (s *PresenceServiceImpl) DayStats(ctx context.Context, organizationID string, date time.Time) (presence.DayStatsResponse, error) {
	day := presence.DateOf(date)

	records, err := s.PresenceRepository.ListByOrganizationAndDate(ctx, organizationID, day)
	if err != nil {
		return presence.DayStatsResponse{}, err
	}

	stats := presence.DayStatsResponse{Date: day.Format("2006-01-02")}
	for _, rec := range records {
		switch rec.Status {
		case presence.StatusPresent:
			stats.Present++
		case presence.StatusLate:
			stats.Late++
		case presence.StatusAbsent:
			stats.Absent++
		case presence.StatusFree:
			stats.Free++
		case presence.StatusNotOpened:
			stats.NotOpened++
		default:
			return presence.DayStatsResponse{}, fmt.Errorf("unknown presence status %q", rec.Status)
		}
	}
	return stats, nil
}

// CheckedInCount implements presence.PresenceService.
func (s *PresenceServiceImpl) CheckedInCount(ctx context.Context, organizationID string, date time.Time) (int64, error) {
	return s.PresenceRepository.CountByStatus(ctx, organizationID, presence.DateOf(date),
		[]presence.Status{presence.StatusPresent, presence.StatusLate})
}

func NewPresenceService(
	presenceRepo presence.PresenceRepository,
	scheduleRepo schedule.ScheduleRepository,
	settingsRepo settings.SettingsRepository,
	employeeRepo employee.EmployeeRepository,
) presence.PresenceService {
	return &PresenceServiceImpl{
		PresenceRepository: presenceRepo,
		ScheduleRepository: scheduleRepo,
		SettingsRepository: settingsRepo,
		EmployeeRepository: employeeRepo,
	}
}
