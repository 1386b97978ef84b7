package kiosk

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/employee"
	"github.com/magiclogon/attendance-backend-go/internal/domain/kiosk"
	"github.com/magiclogon/attendance-backend-go/internal/domain/organization"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
	"github.com/magiclogon/attendance-backend-go/internal/domain/settings"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/jwt"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/validator"
	"github.com/magiclogon/attendance-backend-go/internal/repository/memory"
	presenceService "github.com/magiclogon/attendance-backend-go/internal/service/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrganizationRepo struct {
	org organization.Organization
}

func (s *stubOrganizationRepo) GetByID(_ context.Context, id string) (organization.Organization, error) {
	if s.org.ID != id {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return s.org, nil
}

func (s *stubOrganizationRepo) GetByCameraCode(_ context.Context, code string) (organization.Organization, error) {
	if s.org.CameraCode != code {
		return organization.Organization{}, organization.ErrCameraCodeNotFound
	}
	return s.org, nil
}

type stubEmployeeRepo struct {
	employees []employee.Employee
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range s.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return s.employees, nil
}

func (s *stubEmployeeRepo) ListActiveByOrganization(_ context.Context, organizationID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range s.employees {
		if emp.OrganizationID == organizationID {
			out = append(out, emp)
		}
	}
	return out, nil
}

type stubScheduleRepo struct {
	schedules map[string]*schedule.Schedule
	eligible  map[string]bool
}

func (s *stubScheduleRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, _ time.Time) (*schedule.Schedule, error) {
	return s.schedules[employeeID], nil
}

func (s *stubScheduleRepo) HasCheckinBefore(_ context.Context, employeeID string, _ time.Time, _ time.Time) (bool, error) {
	return s.eligible[employeeID], nil
}

type stubSettingsRepo struct{}

func (s *stubSettingsRepo) GetByOrganization(_ context.Context, organizationID string) (settings.Thresholds, error) {
	return settings.Thresholds{
		OrganizationID:          organizationID,
		LateThresholdMinutes:    10,
		AbsenceThresholdMinutes: 120,
	}, nil
}

type fakeFaceClient struct {
	verified bool
	err      error
	called   bool
}

func (f *fakeFaceClient) VerifyFace(_ context.Context, _ string, _ io.Reader, _ string) (bool, error) {
	f.called = true
	return f.verified, f.err
}

func testOrg() organization.Organization {
	return organization.Organization{ID: "org-1", Name: "Magic Logon", CameraCode: "CAM-42"}
}

func nineToFive(employeeID string, day time.Time) *schedule.Schedule {
	return &schedule.Schedule{
		ID:           "sched-" + employeeID,
		EmployeeID:   employeeID,
		Date:         day,
		CheckinTime:  time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		CheckoutTime: time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
	}
}

func newFixture(face *fakeFaceClient, scheduleRepo *stubScheduleRepo, employees []employee.Employee) kiosk.KioskService {
	presenceRepo := memory.NewPresenceRepository()
	employeeRepo := &stubEmployeeRepo{employees: employees}
	presenceSvc := presenceService.NewPresenceService(presenceRepo, scheduleRepo, &stubSettingsRepo{}, employeeRepo)
	jwtSvc := jwt.NewJWTService("test-secret-key", "12h")

	return NewKioskService(
		&stubOrganizationRepo{org: testOrg()},
		employeeRepo,
		scheduleRepo,
		presenceSvc,
		face,
		jwtSvc,
	)
}

func TestCreateSession_ValidCameraCode(t *testing.T) {
	svc := newFixture(&fakeFaceClient{}, &stubScheduleRepo{}, nil)

	resp, err := svc.CreateSession(context.Background(), kiosk.SessionRequest{CameraCode: "CAM-42"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "org-1", resp.OrganizationID)
	assert.Equal(t, "Magic Logon", resp.OrganizationName)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
}

func TestCreateSession_UnknownCameraCode(t *testing.T) {
	svc := newFixture(&fakeFaceClient{}, &stubScheduleRepo{}, nil)

	_, err := svc.CreateSession(context.Background(), kiosk.SessionRequest{CameraCode: "CAM-99"})
	assert.ErrorIs(t, err, organization.ErrCameraCodeNotFound)
}

func TestCreateSession_EmptyCameraCode(t *testing.T) {
	svc := newFixture(&fakeFaceClient{}, &stubScheduleRepo{}, nil)

	_, err := svc.CreateSession(context.Background(), kiosk.SessionRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestSetup_FiltersToUpcomingShifts(t *testing.T) {
	employees := []employee.Employee{
		{ID: "emp-due", OrganizationID: "org-1", FullName: "Ana Pop", IsActive: true, HasRegisteredFace: true},
		{ID: "emp-later", OrganizationID: "org-1", FullName: "Ion Dinu", IsActive: true},
		{ID: "emp-other-org", OrganizationID: "org-2", FullName: "Eva Marin", IsActive: true},
	}
	scheduleRepo := &stubScheduleRepo{
		eligible: map[string]bool{"emp-due": true, "emp-later": false, "emp-other-org": true},
	}
	svc := newFixture(&fakeFaceClient{}, scheduleRepo, employees)

	resp, err := svc.Setup(context.Background(), "org-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "org-1", resp.OrganizationID)
	require.Len(t, resp.Employees, 1)
	assert.Equal(t, "emp-due", resp.Employees[0].ID)
	assert.True(t, resp.Employees[0].HasRegisteredFace)
}

func TestRecordCheck_VerifiedCaptureChecksIn(t *testing.T) {
	day := presence.DateOf(time.Now())
	employees := []employee.Employee{
		{ID: "emp-1", OrganizationID: "org-1", FullName: "Ana Pop", IsActive: true},
	}
	// Midnight-to-midnight shift so the check-in window is open whenever the
	// test happens to run.
	sched := nineToFive("emp-1", day)
	sched.CheckinTime = time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	sched.CheckoutTime = time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	scheduleRepo := &stubScheduleRepo{schedules: map[string]*schedule.Schedule{"emp-1": sched}}

	face := &fakeFaceClient{verified: true}
	svc := newFixture(face, scheduleRepo, employees)

	resp, err := svc.RecordCheck(context.Background(), "org-1", "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	require.NoError(t, err)
	assert.True(t, face.called)
	assert.Contains(t, []string{string(presence.StatusPresent), string(presence.StatusLate)}, resp.Status)
	require.NotNil(t, resp.CheckinTime)
}

func TestRecordCheck_FailedMatchIsRejected(t *testing.T) {
	day := presence.DateOf(time.Now())
	employees := []employee.Employee{
		{ID: "emp-1", OrganizationID: "org-1", IsActive: true},
	}
	scheduleRepo := &stubScheduleRepo{schedules: map[string]*schedule.Schedule{"emp-1": nineToFive("emp-1", day)}}

	svc := newFixture(&fakeFaceClient{verified: false}, scheduleRepo, employees)

	_, err := svc.RecordCheck(context.Background(), "org-1", "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	assert.ErrorIs(t, err, presence.ErrVerificationFailed)
}

func TestRecordCheck_EmployeeFromAnotherOrganization(t *testing.T) {
	employees := []employee.Employee{
		{ID: "emp-1", OrganizationID: "org-2", IsActive: true},
	}
	face := &fakeFaceClient{verified: true}
	svc := newFixture(face, &stubScheduleRepo{}, employees)

	_, err := svc.RecordCheck(context.Background(), "org-1", "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.False(t, face.called, "verification must not run for foreign employees")
}
