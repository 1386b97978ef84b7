package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/magiclogon/attendance-backend-go/internal/handler/http/response"
)

// KioskRequired rejects requests that do not carry a valid kiosk session
// token. Use below jwtauth.Verifier.
func KioskRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Kiosk session token required")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid kiosk session token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "kiosk" {
				response.Unauthorized(w, "Invalid kiosk session token")
				return
			}

			organizationID, ok := claims["organization_id"].(string)
			if !ok || organizationID == "" {
				response.Unauthorized(w, "Invalid kiosk session token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// OrganizationIDFromContext extracts the organization claim of the verified
// kiosk token. KioskRequired guarantees it is present on routes it guards.
func OrganizationIDFromContext(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	organizationID, _ := claims["organization_id"].(string)
	return organizationID
}
