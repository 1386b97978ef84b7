package response

import (
	"errors"
	"net/http"

	"github.com/magiclogon/attendance-backend-go/internal/domain/employee"
	"github.com/magiclogon/attendance-backend-go/internal/domain/organization"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/domain/schedule"
	"github.com/magiclogon/attendance-backend-go/internal/domain/settings"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Gate rejections: the event was understood but the record's state does
	// not admit it.
	case errors.Is(err, presence.ErrDayOff):
		Conflict(w, "Day is scheduled off")
	case errors.Is(err, presence.ErrTooEarlyToCheckIn):
		Conflict(w, "Too early to check in")
	case errors.Is(err, presence.ErrTooLateToCheckIn):
		Conflict(w, "Check-in window has closed")
	case errors.Is(err, presence.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in")
	case errors.Is(err, presence.ErrTooEarlyToCheckOut):
		Conflict(w, "Too early to check out")
	case errors.Is(err, presence.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, presence.ErrRecordClosed):
		Conflict(w, "Attendance record is closed for the day")
	case errors.Is(err, presence.ErrConflict):
		Conflict(w, "Attendance record was modified concurrently")

	case errors.Is(err, presence.ErrVerificationFailed):
		Forbidden(w, "Face verification failed")

	// Not found
	case errors.Is(err, presence.ErrPresenceNotFound):
		NotFound(w, "Presence record not found")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "No schedule for this day")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Organization settings not found")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")

	case errors.Is(err, organization.ErrCameraCodeNotFound):
		Unauthorized(w, "Invalid camera code")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
