package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spankks/scheduling-api/internal/config"
	"github.com/spankks/scheduling-api/internal/database"
	"github.com/spankks/scheduling-api/internal/http/handler"
	"github.com/spankks/scheduling-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/spankks/scheduling-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	rateLimiter         *middleware.RateLimiter
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	calendarHandler     *handler.CalendarHandler
	settingsHandler     *handler.SettingsHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	calendarHandler *handler.CalendarHandler,
	settingsHandler *handler.SettingsHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		rateLimiter:         rateLimiter,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		calendarHandler:     calendarHandler,
		settingsHandler:     settingsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Appointments
		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", rt.appointmentHandler.List)
			r.Post("/", rt.appointmentHandler.Create)
			r.Get("/week", rt.appointmentHandler.WeeklySchedule)
			r.Post("/migrate", rt.appointmentHandler.MigrateLegacy)
			r.Get("/{id}", rt.appointmentHandler.Get)
			r.Patch("/{id}/status", rt.appointmentHandler.UpdateStatus)
			r.Post("/{id}/notes", rt.appointmentHandler.AddNote)
		})

		// Availability
		r.Route("/availability", func(r chi.Router) {
			r.Post("/validate", rt.availabilityHandler.ValidateSlot)
			r.Get("/times", rt.availabilityHandler.AvailableTimes)
			r.Get("/dates", rt.availabilityHandler.AvailableDates)
		})

		// Calendar
		r.Get("/calendar/events", rt.calendarHandler.Events)

		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.Get("/repeat", rt.appointmentHandler.RepeatClients)
			r.Get("/{clientId}/history", rt.appointmentHandler.ClientHistory)
		})

		// Staff
		r.Get("/staff/{staffId}/schedule", rt.appointmentHandler.StaffSchedule)

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/business-hours", rt.settingsHandler.GetBusinessHours)
			r.Put("/business-hours", rt.settingsHandler.UpdateBusinessHours)
		})
	})

	return r
}
