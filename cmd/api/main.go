package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/config"
	appHTTP "github.com/magiclogon/attendance-backend-go/internal/handler/http"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/database"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/facerec"
	"github.com/magiclogon/attendance-backend-go/internal/pkg/jwt"
	"github.com/magiclogon/attendance-backend-go/internal/repository/postgresql"
	kioskService "github.com/magiclogon/attendance-backend-go/internal/service/kiosk"
	presenceService "github.com/magiclogon/attendance-backend-go/internal/service/presence"
	"github.com/magiclogon/attendance-backend-go/internal/service/reconciler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	presenceRepo := postgresql.NewPresenceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)

	jwtService := jwt.NewJWTService(cfg.Kiosk.Secret, cfg.Kiosk.TokenExpiration)
	faceClient := facerec.NewHTTPClient(cfg.FaceRecognition.BaseURL, cfg.FaceRecognition.Timeout)

	presenceSvc := presenceService.NewPresenceService(presenceRepo, scheduleRepo, settingsRepo, employeeRepo)
	kioskSvc := kioskService.NewKioskService(organizationRepo, employeeRepo, scheduleRepo, presenceSvc, faceClient, jwtService)

	provisioner := reconciler.NewProvisioner(presenceRepo, scheduleRepo, employeeRepo, logger)
	sweeper := reconciler.NewSweeper(presenceRepo, scheduleRepo, settingsRepo, employeeRepo, logger)
	runner, err := reconciler.NewRunner(provisioner, sweeper, cfg.Reconciler.ProvisionAt, cfg.Reconciler.SweepInterval, logger)
	if err != nil {
		fmt.Println("Error building reconciler:", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runner.Run(ctx)

	kioskHandler := appHTTP.NewKioskHandler(kioskSvc)
	presenceHandler := appHTTP.NewPresenceHandler(presenceSvc)
	router := appHTTP.NewRouter(cfg.App.Env, jwtService, kioskHandler, presenceHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	logger.Info("server exiting")
}
