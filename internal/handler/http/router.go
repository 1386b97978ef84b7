package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/magiclogon/attendance-backend-go/internal/handler/http/middleware"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(env string, jwtService jwt.Service, kioskHandler KioskHandler, presenceHandler PresenceHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/kiosk", func(r chi.Router) {
			r.Post("/session", kioskHandler.CreateSession)

			// Requires a kiosk session token
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.KioskRequired(jwtService.JWTAuth()))

				r.Get("/setup", kioskHandler.Setup)
				r.Post("/checks/{employeeID}", kioskHandler.RecordCheck)
			})
		})

		r.Route("/presences", func(r chi.Router) {
			r.Get("/", presenceHandler.List)
			r.Get("/stats", presenceHandler.DayStats)
			r.Get("/checked-in", presenceHandler.CheckedInCount)
			r.Get("/employee/{employeeID}", presenceHandler.GetEmployeePresence)
		})
	})
	return r
}
