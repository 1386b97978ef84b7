package kiosk

import (
	"github.com/magiclogon/attendance-backend-go/internal/pkg/validator"
)

// SessionRequest carries the camera code an attendance kiosk presents to
// open a session.
type SessionRequest struct {
	CameraCode string `json:"camera_code"`
}

func (r *SessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CameraCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "camera_code",
			Message: "camera_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	Token            string `json:"token"`
	ExpiresAt        int64  `json:"expires_at"`
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
}

type SetupEmployeeResponse struct {
	ID                string `json:"id"`
	FullName          string `json:"full_name"`
	PositionTitle     string `json:"position_title"`
	HasRegisteredFace bool   `json:"has_registered_face"`
}

// SetupResponse is what a kiosk loads at the start of its session: the
// employees it may see at the gate during the current window.
type SetupResponse struct {
	OrganizationID string                  `json:"organization_id"`
	Employees      []SetupEmployeeResponse `json:"employees"`
}
