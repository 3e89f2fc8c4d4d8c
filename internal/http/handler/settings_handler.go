package handler

import (
	"encoding/json"
	"net/http"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/service"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetBusinessHours godoc
// @Summary Get business hours
// @Description Get the current business-hours configuration, defaults included
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.BusinessHoursConfig
// @Failure 500 {object} domain.APIError
// @Router /settings/business-hours [get]
func (h *SettingsHandler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsService.GetBusinessHours(r.Context())
	if err != nil {
		h.logger.Error("failed to load business hours", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// UpdateBusinessHours godoc
// @Summary Update business hours
// @Description Replace the business-hours configuration. All seven weekdays must be present.
// @Tags Settings
// @Accept json
// @Produce json
// @Param config body domain.UpdateBusinessHoursRequest true "Replacement configuration"
// @Success 200 {object} domain.BusinessHoursConfig
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /settings/business-hours [put]
func (h *SettingsHandler) UpdateBusinessHours(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBusinessHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	cfg, err := h.settingsService.UpdateBusinessHours(r.Context(), &req)
	if err != nil {
		if errorsIsInvalid(err) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to update business hours", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}
