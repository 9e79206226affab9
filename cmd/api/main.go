package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/worktime-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/worktime-backend-go/internal/service/attendance"
	holidayService "github.com/cmlabs-hris/worktime-backend-go/internal/service/holiday"
	settingsService "github.com/cmlabs-hris/worktime-backend-go/internal/service/settings"
	shiftService "github.com/cmlabs-hris/worktime-backend-go/internal/service/shift"
	workStatusService "github.com/cmlabs-hris/worktime-backend-go/internal/service/workstatus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx, postgresql.Schema); err != nil {
		slog.Error("Error applying schema", "error", err)
		os.Exit(1)
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dailyStatusRepo := postgresql.NewDailyStatusRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	workStatusSvc := workStatusService.NewWorkStatusService(
		attendanceRepo,
		dailyStatusRepo,
		shiftRepo,
		holidayRepo,
		settingsSvc,
		workStatusService.WithConcurrency(cfg.Recompute.Concurrency),
		workStatusService.WithLookbackDays(cfg.Recompute.LookbackDays),
	)
	shiftSvc := shiftService.NewShiftService(shiftRepo, workStatusSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, settingsSvc, workStatusSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        cfg.App.Version,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.Handlers{
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			WorkStatus: appHTTP.NewWorkStatusHandler(workStatusSvc),
			Shift:      appHTTP.NewShiftHandler(shiftSvc),
			Settings:   appHTTP.NewSettingsHandler(settingsSvc),
			Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		},
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewWorkStatusJobs(attendanceRepo, workStatusSvc, settingsSvc, 2).RegisterJobs(scheduler, cfg.Recompute.Interval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
