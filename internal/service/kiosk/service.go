package kiosk

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/employee"
	"github.com/magiclogon/attendance-backend-go/internal/domain/kiosk"
	"github.com/magiclogon/attendance-backend-go/internal/domain/organization"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/facerec"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/jwt"
)

type KioskServiceImpl struct {
	organization.OrganizationRepository
	employee.EmployeeRepository
	schedule.ScheduleRepository
	presenceService presence.PresenceService
	faceClient      facerec.Client
	jwtService      jwt.Service
}

// CreateSession implements kiosk.KioskService.
func (s *KioskServiceImpl) CreateSession(ctx context.Context, req kiosk.SessionRequest) (kiosk.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return kiosk.SessionResponse{}, err
	}

	org, err := s.OrganizationRepository.GetByCameraCode(ctx, req.CameraCode)
	if err != nil {
		return kiosk.SessionResponse{}, err
	}

	token, expiresAt, err := s.jwtService.GenerateKioskToken(org.ID, org.Name)
	if err != nil {
		return kiosk.SessionResponse{}, fmt.Errorf("failed to generate kiosk token: %w", err)
	}

	return kiosk.SessionResponse{
		Token:            token,
		ExpiresAt:        expiresAt,
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
	}, nil
}

// Setup implements kiosk.KioskService. The kiosk only needs the employees
// who could plausibly show up during the current window: active, and with a
// shift opening no later than the early check-in horizon from now.
func (s *KioskServiceImpl) Setup(ctx context.Context, organizationID string, now time.Time) (kiosk.SetupResponse, error) {
	employees, err := s.EmployeeRepository.ListActiveByOrganization(ctx, organizationID)
	if err != nil {
		return kiosk.SetupResponse{}, err
	}

	day := presence.DateOf(now)
	cutoff := now.Add(presence.EarlyCheckinWindow)

	resp := kiosk.SetupResponse{
		OrganizationID: organizationID,
		Employees:      make([]kiosk.SetupEmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		eligible, err := s.ScheduleRepository.HasCheckinBefore(ctx, emp.ID, day, cutoff)
		if err != nil {
			return kiosk.SetupResponse{}, err
		}
		if !eligible {
			continue
		}
		resp.Employees = append(resp.Employees, kiosk.SetupEmployeeResponse{
			ID:                emp.ID,
			FullName:          emp.FullName,
			PositionTitle:     emp.PositionTitle,
			HasRegisteredFace: emp.HasRegisteredFace,
		})
	}

	return resp, nil
}

// RecordCheck implements kiosk.KioskService. Face verification happens
// before the presence gateway is ever invoked; a failed match leaves the
// record exactly as it was.
func (s *KioskServiceImpl) RecordCheck(ctx context.Context, organizationID string, employeeID string, image io.Reader, filename string) (presence.PresenceResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return presence.PresenceResponse{}, err
	}

	// A kiosk can only submit captures for its own organization.
	if emp.OrganizationID != organizationID {
		return presence.PresenceResponse{}, employee.ErrEmployeeNotFound
	}

	verified, err := s.faceClient.VerifyFace(ctx, emp.ID, image, filename)
	if err != nil {
		return presence.PresenceResponse{}, fmt.Errorf("face verification unavailable: %w", err)
	}

	event := presence.RecordCheckEvent{
		EmployeeID: emp.ID,
		Timestamp:  time.Now(),
		Verified:   verified,
	}

	return s.presenceService.RecordCheck(ctx, event)
}

func NewKioskService(
	organizationRepo organization.OrganizationRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	presenceService presence.PresenceService,
	faceClient facerec.Client,
	jwtService jwt.Service,
) kiosk.KioskService {
	return &KioskServiceImpl{
		OrganizationRepository: organizationRepo,
		EmployeeRepository:     employeeRepo,
		ScheduleRepository:     scheduleRepo,
		presenceService:        presenceService,
		faceClient:             faceClient,
		jwtService:             jwtService,
	}
}
