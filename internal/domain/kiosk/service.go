package kiosk

import (
	"context"
	"io"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
)

// KioskService is the surface an attendance camera talks to: open a session
// with its camera code, load the employees it may encounter, and submit gate
// captures.
type KioskService interface {
	// CreateSession exchanges a camera code for a signed kiosk token.
	CreateSession(ctx context.Context, req SessionRequest) (SessionResponse, error)

	// Setup returns the organization's active employees whose shift opens
	// within the check-in window from now.
	Setup(ctx context.Context, organizationID string, now time.Time) (SetupResponse, error)

	// RecordCheck verifies the captured frame against the claimed employee
	// and, if it matches, feeds the gate event into the presence gateway.
	RecordCheck(ctx context.Context, organizationID string, employeeID string, image io.Reader, filename string) (presence.PresenceResponse, error)
}
