package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/magiclogon/attendance-backend-go/internal/domain/kiosk"
	"github.com/magiclogon/attendance-backend-go/internal/handler/http/middleware"
	"github.com/magiclogon/attendance-backend-go/internal/handler/http/response"
)

type KioskHandler interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	Setup(w http.ResponseWriter, r *http.Request)
	RecordCheck(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	kioskService kiosk.KioskService
}

func NewKioskHandler(kioskService kiosk.KioskService) KioskHandler {
	return &kioskHandlerImpl{
		kioskService: kioskService,
	}
}

// CreateSession implements KioskHandler.
func (h *kioskHandlerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req kiosk.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.kioskService.CreateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Kiosk session created", result)
}

// Setup implements KioskHandler.
func (h *kioskHandlerImpl) Setup(w http.ResponseWriter, r *http.Request) {
	organizationID := middleware.OrganizationIDFromContext(r)

	result, err := h.kioskService.Setup(r.Context(), organizationID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecordCheck implements KioskHandler.
func (h *kioskHandlerImpl) RecordCheck(w http.ResponseWriter, r *http.Request) {
	organizationID := middleware.OrganizationIDFromContext(r)
	employeeID := chi.URLParam(r, "employeeID")

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Captured image is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.kioskService.RecordCheck(r.Context(), organizationID, employeeID, file, fileHeader.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
