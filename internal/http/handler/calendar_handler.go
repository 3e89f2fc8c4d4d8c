package handler

import (
	"net/http"

	"github.com/spankks/scheduling-api/internal/service"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	calendarService *service.CalendarService
	logger          *zap.Logger
}

func NewCalendarHandler(calendarService *service.CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// Events godoc
// @Summary Calendar events
// @Description Get appointments as calendar events, colored by status. Missing or malformed bounds fall back to the current month.
// @Tags Calendar
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} domain.CalendarEvent
// @Failure 500 {object} domain.APIError
// @Router /calendar/events [get]
func (h *CalendarHandler) Events(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	events, err := h.calendarService.Events(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to load calendar events", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, events)
}
