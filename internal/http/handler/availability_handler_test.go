package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/http/handler"
	"github.com/spankks/scheduling-api/internal/repository"
	"github.com/spankks/scheduling-api/internal/service"
	"github.com/spankks/scheduling-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createAvailabilityHandler(t *testing.T, db *gorm.DB) *handler.AvailabilityHandler {
	logger := zap.NewNop()
	appointmentRepo := repository.NewAppointmentRepository(db)
	hoursRepo := repository.NewBusinessHoursRepository(db)

	availabilityService := service.NewAvailabilityService(appointmentRepo, hoursRepo, logger)

	return handler.NewAvailabilityHandler(availabilityService, logger)
}

// TestAvailabilityHandler_ValidateSlot tests the ValidateSlot endpoint
func TestAvailabilityHandler_ValidateSlot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createAvailabilityHandler(t, db)

	t.Run("open slot is valid", func(t *testing.T) {
		req := postJSON(t, "/availability/validate", domain.ValidateSlotRequest{
			ScheduledDate:     handlerTestMonday,
			ScheduledTime:     "09:00",
			EstimatedDuration: 120,
		})

		rr := httptest.NewRecorder()
		h.ValidateSlot(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var result domain.SlotValidationResult
		err := json.Unmarshal(rr.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})

	t.Run("lunch slot is a rejection result, not an error", func(t *testing.T) {
		req := postJSON(t, "/availability/validate", domain.ValidateSlotRequest{
			ScheduledDate:     handlerTestMonday,
			ScheduledTime:     "12:30",
			EstimatedDuration: 30,
		})

		rr := httptest.NewRecorder()
		h.ValidateSlot(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var result domain.SlotValidationResult
		err := json.Unmarshal(rr.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, domain.ValidationBusinessHours, result.Type)
	})

	t.Run("missing time fails validation", func(t *testing.T) {
		req := postJSON(t, "/availability/validate", map[string]interface{}{
			"scheduledDate": handlerTestMonday,
		})

		rr := httptest.NewRecorder()
		h.ValidateSlot(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// TestAvailabilityHandler_AvailableTimes tests the AvailableTimes endpoint
func TestAvailabilityHandler_AvailableTimes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createAvailabilityHandler(t, db)

	t.Run("returns slots for an open day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/availability/times?date="+handlerTestMonday+"&duration=60", nil)

		rr := httptest.NewRecorder()
		h.AvailableTimes(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var slots []domain.SlotOption
		err := json.Unmarshal(rr.Body.Bytes(), &slots)
		require.NoError(t, err)
		require.NotEmpty(t, slots)
		assert.Equal(t, "07:00", slots[0].Time)
	})

	t.Run("missing date is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/availability/times", nil)

		rr := httptest.NewRecorder()
		h.AvailableTimes(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/availability/times?date=06/16/2025", nil)

		rr := httptest.NewRecorder()
		h.AvailableTimes(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
