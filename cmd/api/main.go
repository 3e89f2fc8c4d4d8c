package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spankks/scheduling-api/docs"
	"github.com/spankks/scheduling-api/internal/config"
	"github.com/spankks/scheduling-api/internal/database"
	"github.com/spankks/scheduling-api/internal/http/handler"
	"github.com/spankks/scheduling-api/internal/http/middleware"
	"github.com/spankks/scheduling-api/internal/http/router"
	"github.com/spankks/scheduling-api/internal/jobs"
	"github.com/spankks/scheduling-api/internal/logger"
	"github.com/spankks/scheduling-api/internal/repository"
	"github.com/spankks/scheduling-api/internal/service"
	"go.uber.org/zap"
)

// @title SPANKKS Scheduling API
// @version 1.0
// @description Appointment scheduling API for construction service management

// @contact.name API Support
// @contact.email support@spankks.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Configure Swagger host based on environment
	if cfg.App.Environment == "development" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	hoursRepo := repository.NewBusinessHoursRepository(db)

	// Initialize services
	schedulerService := service.NewSchedulerService(appointmentRepo, sequenceRepo, cfg.Scheduler.Timezone, log)
	availabilityService := service.NewAvailabilityService(appointmentRepo, hoursRepo, log)
	calendarService := service.NewCalendarService(appointmentRepo, cfg.Scheduler.Timezone, log)
	settingsService := service.NewSettingsService(hoursRepo, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(schedulerService, availabilityService, log)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService, log)
	calendarHandler := handler.NewCalendarHandler(calendarService, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		appointmentHandler,
		availabilityHandler,
		calendarHandler,
		settingsHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Scheduler.ReminderEnabled {
		scheduler = jobs.NewScheduler(log)

		reminderJob := jobs.NewReminderJob(schedulerService, cfg.Scheduler.Timezone, log, jobs.DefaultReminderTimeout)
		if err := scheduler.AddJob(jobs.ReminderJobName, cfg.Scheduler.ReminderCron, reminderJob.Run); err != nil {
			log.Error("Failed to register reminder job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with reminder job",
				zap.String("cron_expr", cfg.Scheduler.ReminderCron),
			)
		}
	} else {
		log.Info("Appointment reminders disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
