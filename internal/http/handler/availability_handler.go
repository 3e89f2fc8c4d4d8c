package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/service"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	availabilityService *service.AvailabilityService
	logger              *zap.Logger
}

func NewAvailabilityHandler(availabilityService *service.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
		logger:              logger,
	}
}

// ValidateSlot godoc
// @Summary Validate a proposed slot
// @Description Check a proposed date/time against business hours and existing bookings. Rejections return 200 with valid=false plus alternatives.
// @Tags Availability
// @Accept json
// @Produce json
// @Param slot body domain.ValidateSlotRequest true "Proposed slot"
// @Success 200 {object} domain.SlotValidationResult
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /availability/validate [post]
func (h *AvailabilityHandler) ValidateSlot(w http.ResponseWriter, r *http.Request) {
	var req domain.ValidateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.availabilityService.ValidateAppointmentTime(
		r.Context(), req.ScheduledDate, req.ScheduledTime, req.EstimatedDuration, req.ExcludeID)
	if err != nil {
		h.respondServiceError(w, err, "failed to validate slot")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AvailableTimes godoc
// @Summary Available start times
// @Description Get up to ten free start times on a date for the given duration, in thirty-minute steps
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param duration query int false "Duration in minutes" default(120)
// @Success 200 {array} domain.SlotOption
// @Failure 400 {object} domain.APIError
// @Router /availability/times [get]
func (h *AvailabilityHandler) AvailableTimes(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'date' is required")
		return
	}
	duration, _ := strconv.Atoi(r.URL.Query().Get("duration"))

	slots, err := h.availabilityService.AvailableTimes(r.Context(), date, duration)
	if err != nil {
		h.respondServiceError(w, err, "failed to compute available times")
		return
	}

	respondJSON(w, http.StatusOK, slots)
}

// AvailableDates godoc
// @Summary Available dates
// @Description Get upcoming dates that still have at least one free default-length slot
// @Tags Availability
// @Produce json
// @Param from query string true "Scan start date (YYYY-MM-DD, exclusive)"
// @Param days query int false "Days ahead to scan" default(14)
// @Success 200 {array} string
// @Failure 400 {object} domain.APIError
// @Router /availability/dates [get]
func (h *AvailabilityHandler) AvailableDates(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'from' is required")
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days < 1 {
		days = 14
	}

	dates, err := h.availabilityService.AvailableDates(r.Context(), from, days)
	if err != nil {
		h.respondServiceError(w, err, "failed to compute available dates")
		return
	}

	respondJSON(w, http.StatusOK, dates)
}

func (h *AvailabilityHandler) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errorsIsInvalid(err):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
