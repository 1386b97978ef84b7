package presence

import (
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/pkg/validator"
)

// RecordCheckEvent is the sole way the check-in/check-out gateway is invoked.
// Timestamp is stamped by the receiving process, never taken from the caller,
// so a replayed request cannot claim an earlier arrival.
type RecordCheckEvent struct {
	EmployeeID string
	Timestamp  time.Time
	Verified   bool
}

func (e *RecordCheckEvent) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(e.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PresenceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckinTime  *string `json:"checkin_time,omitempty"`
	CheckoutTime *string `json:"checkout_time,omitempty"`
	Status       string  `json:"status"`
}

// DayStatsResponse exposes the per-status counts the state machine already
// maintains for one organization and date.
type DayStatsResponse struct {
	Date      string `json:"date"`
	Present   int64  `json:"present"`
	Late      int64  `json:"late"`
	Absent    int64  `json:"absent"`
	Free      int64  `json:"free"`
	NotOpened int64  `json:"not_opened"`
}

// MapToResponse converts a Presence entity to its API shape.
func MapToResponse(rec Presence) PresenceResponse {
	return PresenceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		CheckinTime:  clockPtrToString(rec.CheckinTime),
		CheckoutTime: clockPtrToString(rec.CheckoutTime),
		Status:       string(rec.Status),
	}
}

func clockPtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}
