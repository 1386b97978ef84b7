package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
	"github.com/magiclogon/attendance-backend-go/internal/handler/http/response"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/validator"
)

type PresenceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	DayStats(w http.ResponseWriter, r *http.Request)
	CheckedInCount(w http.ResponseWriter, r *http.Request)
	GetEmployeePresence(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	presenceService presence.PresenceService
}

func NewPresenceHandler(presenceService presence.PresenceService) PresenceHandler {
	return &presenceHandlerImpl{
		presenceService: presenceService,
	}
}

// dateParam reads the date query parameter, defaulting to today.
func dateParam(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), true
	}
	return validator.IsValidDate(raw)
}

// List implements PresenceHandler.
func (h *presenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")
	if validator.IsEmpty(organizationID) {
		response.BadRequest(w, "organization_id is required", nil)
		return
	}

	date, ok := dateParam(r)
	if !ok {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.presenceService.ListByDate(r.Context(), organizationID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DayStats implements PresenceHandler.
func (h *presenceHandlerImpl) DayStats(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")
	if validator.IsEmpty(organizationID) {
		response.BadRequest(w, "organization_id is required", nil)
		return
	}

	date, ok := dateParam(r)
	if !ok {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.presenceService.DayStats(r.Context(), organizationID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckedInCount implements PresenceHandler.
func (h *presenceHandlerImpl) CheckedInCount(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")
	if validator.IsEmpty(organizationID) {
		response.BadRequest(w, "organization_id is required", nil)
		return
	}

	date, ok := dateParam(r)
	if !ok {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	count, err := h.presenceService.CheckedInCount(r.Context(), organizationID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"checked_in": count})
}

// GetEmployeePresence implements PresenceHandler.
func (h *presenceHandlerImpl) GetEmployeePresence(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date, ok := dateParam(r)
	if !ok {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.presenceService.GetEmployeePresence(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
