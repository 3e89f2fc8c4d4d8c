package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
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

// 2025-06-16 is a Monday under the stock business hours (Mon-Fri
// 07:00-17:00 with a 12:00-13:00 lunch, closed Sundays, 30 minute buffer).
const handlerTestMonday = "2025-06-16"

func createAppointmentHandler(t *testing.T, db *gorm.DB) *handler.AppointmentHandler {
	logger := zap.NewNop()
	appointmentRepo := repository.NewAppointmentRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	hoursRepo := repository.NewBusinessHoursRepository(db)

	schedulerService := service.NewSchedulerService(appointmentRepo, sequenceRepo, "Pacific/Honolulu", logger)
	availabilityService := service.NewAvailabilityService(appointmentRepo, hoursRepo, logger)

	return handler.NewAppointmentHandler(schedulerService, availabilityService, logger)
}

func postJSON(t *testing.T, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestAppointmentHandler_Create tests the Create endpoint
func TestAppointmentHandler_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createAppointmentHandler(t, db)

	t.Run("create with omitted time books the default slot", func(t *testing.T) {
		req := postJSON(t, "/appointments", map[string]interface{}{
			"clientName":    "John Smith",
			"serviceType":   "Drywall",
			"scheduledDate": handlerTestMonday,
		})

		rr := httptest.NewRecorder()
		h.Create(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var apt domain.Appointment
		err := json.Unmarshal(rr.Body.Bytes(), &apt)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultScheduledTime, apt.ScheduledTime)
		assert.Equal(t, domain.DefaultEstimatedDuration, apt.EstimatedDuration)
		assert.Equal(t, "CLI001", apt.ClientID)
		assert.Equal(t, "JOB001", apt.JobID)
	})

	t.Run("conflicting slot is rejected with alternatives", func(t *testing.T) {
		// 10:00 for the default 120 minutes overlaps the 09:00 booking's
		// buffered interval (08:30-11:30)
		req := postJSON(t, "/appointments", map[string]interface{}{
			"clientName":    "Jane Doe",
			"serviceType":   "Painting",
			"scheduledDate": handlerTestMonday,
			"scheduledTime": "10:00",
		})

		rr := httptest.NewRecorder()
		h.Create(rr, req)

		require.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

		var result domain.SlotValidationResult
		err := json.Unmarshal(rr.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, domain.ValidationConflict, result.Type)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, "09:00", result.Conflicts[0].ScheduledTime)
		assert.NotEmpty(t, result.Suggestions)
	})

	t.Run("validate=false skips slot validation", func(t *testing.T) {
		req := postJSON(t, "/appointments?validate=false", map[string]interface{}{
			"clientName":    "Jane Doe",
			"serviceType":   "Painting",
			"scheduledDate": handlerTestMonday,
			"scheduledTime": "10:00",
		})

		rr := httptest.NewRecorder()
		h.Create(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var apt domain.Appointment
		err := json.Unmarshal(rr.Body.Bytes(), &apt)
		require.NoError(t, err)
		assert.Equal(t, "10:00", apt.ScheduledTime)
	})

	t.Run("closed day is rejected with alternative dates", func(t *testing.T) {
		req := postJSON(t, "/appointments", map[string]interface{}{
			"clientName":    "Sunday Caller",
			"serviceType":   "Fencing",
			"scheduledDate": "2025-06-22", // Sunday
		})

		rr := httptest.NewRecorder()
		h.Create(rr, req)

		require.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

		var result domain.SlotValidationResult
		err := json.Unmarshal(rr.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, domain.ValidationBusinessHours, result.Type)
		assert.NotEmpty(t, result.AlternativeDates)
	})

	t.Run("create with invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader([]byte("invalid json")))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		h.Create(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("create with missing required fields", func(t *testing.T) {
		req := postJSON(t, "/appointments", map[string]interface{}{
			"clientName": "No Service Or Date",
		})

		rr := httptest.NewRecorder()
		h.Create(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// TestAppointmentHandler_UpdateStatus tests the UpdateStatus endpoint
func TestAppointmentHandler_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := createAppointmentHandler(t, db)

	createReq := postJSON(t, "/appointments?validate=false", map[string]interface{}{
		"clientName":    "Status Client",
		"serviceType":   "Flooring",
		"scheduledDate": handlerTestMonday,
	})
	createRR := httptest.NewRecorder()
	h.Create(createRR, createReq)
	require.Equal(t, http.StatusCreated, createRR.Code, createRR.Body.String())

	var created domain.Appointment
	require.NoError(t, json.Unmarshal(createRR.Body.Bytes(), &created))

	t.Run("update status records the transition", func(t *testing.T) {
		req := postJSON(t, "/appointments/"+created.ID.String()+"/status", domain.UpdateStatusRequest{
			Status:    "in_progress",
			UpdatedBy: "mike",
		})
		req = withURLParam(req, "id", created.ID.String())

		rr := httptest.NewRecorder()
		h.UpdateStatus(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var apt domain.Appointment
		err := json.Unmarshal(rr.Body.Bytes(), &apt)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, apt.Status)
		require.NotEmpty(t, apt.StatusHistory)
		assert.Contains(t, apt.StatusHistory[len(apt.StatusHistory)-1],
			"Status changed from scheduled to in_progress by mike")
	})

	t.Run("update non-existent appointment", func(t *testing.T) {
		missing := uuid.New()
		req := postJSON(t, "/appointments/"+missing.String()+"/status", domain.UpdateStatusRequest{
			Status: "completed",
		})
		req = withURLParam(req, "id", missing.String())

		rr := httptest.NewRecorder()
		h.UpdateStatus(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("update with invalid ID", func(t *testing.T) {
		req := postJSON(t, "/appointments/invalid/status", domain.UpdateStatusRequest{
			Status: "completed",
		})
		req = withURLParam(req, "id", "invalid")

		rr := httptest.NewRecorder()
		h.UpdateStatus(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("update with missing status", func(t *testing.T) {
		req := postJSON(t, "/appointments/"+created.ID.String()+"/status", map[string]interface{}{})
		req = withURLParam(req, "id", created.ID.String())

		rr := httptest.NewRecorder()
		h.UpdateStatus(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
