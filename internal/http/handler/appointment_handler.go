package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/service"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	schedulerService    *service.SchedulerService
	availabilityService *service.AvailabilityService
	logger              *zap.Logger
}

func NewAppointmentHandler(
	schedulerService *service.SchedulerService,
	availabilityService *service.AvailabilityService,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		schedulerService:    schedulerService,
		availabilityService: availabilityService,
		logger:              logger,
	}
}

// Create godoc
// @Summary Create appointment
// @Description Create a new appointment. Client and job IDs are resolved or allocated automatically when omitted. Pass validate=false to skip slot validation.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param validate query bool false "Validate the slot before booking" default(true)
// @Param appointment body domain.CreateAppointmentRequest true "Appointment payload"
// @Success 201 {object} domain.Appointment
// @Success 409 {object} domain.SlotValidationResult
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	// Time and duration are optional in the payload. Apply the scheduling
	// defaults here so the slot that gets validated is the slot that gets
	// booked.
	if req.ScheduledTime == "" {
		req.ScheduledTime = domain.DefaultScheduledTime
	}
	if req.EstimatedDuration <= 0 {
		req.EstimatedDuration = domain.DefaultEstimatedDuration
	}

	if r.URL.Query().Get("validate") != "false" {
		result, err := h.availabilityService.ValidateAppointmentTime(
			r.Context(), req.ScheduledDate, req.ScheduledTime, req.EstimatedDuration, "")
		if err != nil {
			h.respondServiceError(w, err, "failed to validate appointment slot")
			return
		}
		if !result.Valid {
			respondJSON(w, http.StatusConflict, result)
			return
		}
	}

	apt, err := h.schedulerService.CreateAppointment(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "failed to create appointment")
		return
	}

	respondJSON(w, http.StatusCreated, apt)
}

// Get godoc
// @Summary Get appointment
// @Description Get a single appointment by ID
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	apt, err := h.schedulerService.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "failed to get appointment")
		return
	}
	if apt == nil {
		respondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	respondJSON(w, http.StatusOK, apt)
}

// List godoc
// @Summary List appointments by date range
// @Description Get appointments between two dates inclusive, sorted by date then time
// @Tags Appointments
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.Appointment
// @Failure 400 {object} domain.APIError
// @Router /appointments [get]
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'start' and 'end' are required")
		return
	}

	appointments, err := h.schedulerService.ByDateRange(r.Context(), start, end)
	if err != nil {
		h.respondServiceError(w, err, "failed to list appointments")
		return
	}

	respondJSON(w, http.StatusOK, appointments)
}

// UpdateStatus godoc
// @Summary Update appointment status
// @Description Change an appointment's status and record the transition in its history
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param status body domain.UpdateStatusRequest true "New status"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.schedulerService.UpdateStatus(r.Context(), id, req.Status, req.UpdatedBy); err != nil {
		h.respondServiceError(w, err, "failed to update appointment status")
		return
	}

	apt, err := h.schedulerService.GetByID(r.Context(), id)
	if err != nil || apt == nil {
		respondJSON(w, http.StatusOK, map[string]bool{"updated": true})
		return
	}
	respondJSON(w, http.StatusOK, apt)
}

// AddNote godoc
// @Summary Add appointment note
// @Description Append a timestamped note to an appointment's history
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param note body domain.AddNoteRequest true "Note payload"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /appointments/{id}/notes [post]
func (h *AppointmentHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req domain.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.schedulerService.AddNote(r.Context(), id, req.Note, req.AddedBy); err != nil {
		h.respondServiceError(w, err, "failed to add appointment note")
		return
	}

	apt, err := h.schedulerService.GetByID(r.Context(), id)
	if err != nil || apt == nil {
		respondJSON(w, http.StatusOK, map[string]bool{"updated": true})
		return
	}
	respondJSON(w, http.StatusOK, apt)
}

// WeeklySchedule godoc
// @Summary Weekly schedule
// @Description Get one week of appointments grouped by date, Monday-anchored. weekOffset shifts whole weeks relative to the current one.
// @Tags Appointments
// @Produce json
// @Param weekOffset query int false "Weeks relative to the current week" default(0)
// @Success 200 {object} domain.WeeklySchedule
// @Failure 500 {object} domain.APIError
// @Router /appointments/week [get]
func (h *AppointmentHandler) WeeklySchedule(w http.ResponseWriter, r *http.Request) {
	weekOffset, _ := strconv.Atoi(r.URL.Query().Get("weekOffset"))

	schedule, err := h.schedulerService.WeeklySchedule(r.Context(), weekOffset)
	if err != nil {
		h.respondServiceError(w, err, "failed to build weekly schedule")
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}

// StaffSchedule godoc
// @Summary Staff schedule
// @Description Get the appointments assigned to a staff member, optionally narrowed to one date
// @Tags Staff
// @Produce json
// @Param staffId path string true "Staff ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} domain.Appointment
// @Failure 500 {object} domain.APIError
// @Router /staff/{staffId}/schedule [get]
func (h *AppointmentHandler) StaffSchedule(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffId")
	date := r.URL.Query().Get("date")

	appointments, err := h.schedulerService.StaffSchedule(r.Context(), staffID, date)
	if err != nil {
		h.respondServiceError(w, err, "failed to load staff schedule")
		return
	}

	respondJSON(w, http.StatusOK, appointments)
}

// ClientHistory godoc
// @Summary Client project history
// @Description Get a client's projects, newest first
// @Tags Clients
// @Produce json
// @Param clientId path string true "Client ID (CLI###)"
// @Success 200 {array} domain.ProjectSummary
// @Failure 500 {object} domain.APIError
// @Router /clients/{clientId}/history [get]
func (h *AppointmentHandler) ClientHistory(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	history, err := h.schedulerService.ClientProjectHistory(r.Context(), clientID)
	if err != nil {
		h.respondServiceError(w, err, "failed to load client history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// RepeatClients godoc
// @Summary Repeat clients
// @Description Get clients with more than one project, most projects first
// @Tags Clients
// @Produce json
// @Success 200 {array} domain.RepeatClient
// @Failure 500 {object} domain.APIError
// @Router /clients/repeat [get]
func (h *AppointmentHandler) RepeatClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.schedulerService.RepeatClients(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to load repeat clients")
		return
	}

	respondJSON(w, http.StatusOK, clients)
}

// MigrateLegacy godoc
// @Summary Migrate legacy appointments
// @Description Import appointments from the legacy export shape. Bad records are counted, not fatal.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param records body []domain.LegacyAppointment true "Legacy records"
// @Success 200 {object} domain.MigrationResult
// @Failure 400 {object} domain.APIError
// @Router /appointments/migrate [post]
func (h *AppointmentHandler) MigrateLegacy(w http.ResponseWriter, r *http.Request) {
	var records []domain.LegacyAppointment
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.schedulerService.MigrateLegacy(r.Context(), records)
	respondJSON(w, http.StatusOK, result)
}

func (h *AppointmentHandler) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTime):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
