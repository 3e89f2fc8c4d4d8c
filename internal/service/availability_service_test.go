package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/repository"
	"github.com/spankks/scheduling-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 2025-06-16 is a Monday, 2025-06-22 a Sunday. The empty test database
// serves the stock configuration: Mon-Fri 07:00-17:00 with a 12:00-13:00
// lunch, Sat 08:00-15:00, closed Sundays, 30 minute buffer.
const (
	testMonday = "2025-06-16"
	testSunday = "2025-06-22"
)

func newAvailabilityService(t *testing.T) (*AvailabilityService, *repository.AppointmentRepository) {
	db := testutil.SetupTestDB(t)
	appointmentRepo := repository.NewAppointmentRepository(db)
	hoursRepo := repository.NewBusinessHoursRepository(db)
	return NewAvailabilityService(appointmentRepo, hoursRepo, zap.NewNop()), appointmentRepo
}

func seedAppointment(t *testing.T, repo *repository.AppointmentRepository, date, timeOfDay string, duration int) *domain.Appointment {
	t.Helper()
	apt := &domain.Appointment{
		ID:                uuid.New(),
		ClientID:          "CLI001",
		JobID:             "JOB" + uuid.NewString()[:8],
		ClientName:        "Existing Client",
		ServiceType:       "Flooring Installation",
		ScheduledDate:     date,
		ScheduledTime:     timeOfDay,
		EstimatedDuration: duration,
		Status:            domain.StatusScheduled,
		Priority:          domain.PriorityNormal,
		CreatedBy:         "system",
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), apt))
	return apt
}

func TestValidateOpenSlotOnEmptyCalendar(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	result, err := svc.ValidateAppointmentTime(context.Background(), testMonday, "09:00", 120, "")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
}

func TestValidateRejectsBufferedConflict(t *testing.T) {
	svc, repo := newAvailabilityService(t)
	// Existing 09:00 for 120 ends at 11:00; the 30 minute buffer pushes
	// its protected interval to 08:30-11:30.
	seedAppointment(t, repo, testMonday, "09:00", 120)

	result, err := svc.ValidateAppointmentTime(context.Background(), testMonday, "11:00", 60, "")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, domain.ValidationConflict, result.Type)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "09:00", result.Conflicts[0].ScheduledTime)
	assert.NotEmpty(t, result.Suggestions)
}

func TestValidateAcceptsSlotPastBufferedEnd(t *testing.T) {
	svc, repo := newAvailabilityService(t)
	seedAppointment(t, repo, testMonday, "09:00", 120)

	// 11:30 is exactly the buffered end of the 09:00 appointment
	result, err := svc.ValidateAppointmentTime(context.Background(), testMonday, "11:30", 30, "")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateRejectsLunchBreak(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	result, err := svc.ValidateAppointmentTime(context.Background(), testMonday, "12:30", 30, "")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, domain.ValidationBusinessHours, result.Type)
	assert.Contains(t, result.Reason, "lunch break")
}

func TestValidateRejectsClosedDayWithAlternativeDates(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	result, err := svc.ValidateAppointmentTime(context.Background(), testSunday, "10:00", 60, "")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, domain.ValidationBusinessHours, result.Type)
	assert.Contains(t, result.Reason, "closed")
	require.Len(t, result.AlternativeDates, 3)
	assert.Equal(t, "2025-06-23", result.AlternativeDates[0].Date)
	assert.Equal(t, "monday", result.AlternativeDates[0].Weekday)
	assert.Equal(t, "2025-06-24", result.AlternativeDates[1].Date)
	assert.Equal(t, "2025-06-25", result.AlternativeDates[2].Date)
}

func TestBusinessHoursBoundaries(t *testing.T) {
	svc, _ := newAvailabilityService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		timeOfDay string
		valid     bool
	}{
		{"before open", "06:30", false},
		{"at open", "07:00", true},
		{"inside hours", "10:00", true},
		{"at close", "17:00", false},
		{"after close", "18:00", false},
		{"lunch start", "12:00", false},
		{"lunch end is open again", "13:00", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.IsWithinBusinessHours(ctx, testMonday, tc.timeOfDay)
			require.NoError(t, err)
			assert.Equal(t, tc.valid, result.Valid)
		})
	}
}

func TestCheckConflictsBothOverlapDirections(t *testing.T) {
	svc, repo := newAvailabilityService(t)
	ctx := context.Background()
	// Existing 10:00 for 120 ends 12:00; buffered interval 09:30-12:30.
	seedAppointment(t, repo, testMonday, "10:00", 120)

	tests := []struct {
		name      string
		timeOfDay string
		duration  int
		conflicts bool
	}{
		{"proposed starts before and overlaps head", "09:00", 60, true},
		{"proposed inside existing", "10:30", 30, true},
		{"proposed contains existing", "09:00", 300, true},
		{"proposed overlaps buffered tail", "12:00", 60, true},
		{"proposed ends exactly at buffered start", "08:30", 60, false},
		{"proposed ends before buffered start", "08:00", 60, false},
		{"proposed starts at buffered end", "12:30", 60, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.CheckConflicts(ctx, testMonday, tc.timeOfDay, tc.duration, "")
			require.NoError(t, err)
			assert.Equal(t, tc.conflicts, result.HasConflicts)
		})
	}
}

func TestCheckConflictsBufferAsymmetry(t *testing.T) {
	svc, repo := newAvailabilityService(t)
	ctx := context.Background()
	// The buffer widens only the existing appointment's interval; the
	// proposed slot carries no buffer of its own. Crossing the buffered
	// start by a minute conflicts, while starting exactly at the buffered
	// end does not.
	seedAppointment(t, repo, testMonday, "10:00", 60) // buffered 09:30-11:30

	before, err := svc.CheckConflicts(ctx, testMonday, "09:00", 31, "")
	require.NoError(t, err)
	assert.True(t, before.HasConflicts)

	after, err := svc.CheckConflicts(ctx, testMonday, "11:30", 31, "")
	require.NoError(t, err)
	assert.False(t, after.HasConflicts)
}

func TestCheckConflictsIgnoresCancelledAndExcluded(t *testing.T) {
	svc, repo := newAvailabilityService(t)
	ctx := context.Background()

	cancelled := seedAppointment(t, repo, testMonday, "09:00", 120)
	cancelled.Status = domain.StatusCancelled
	require.NoError(t, repo.Update(ctx, cancelled))

	result, err := svc.CheckConflicts(ctx, testMonday, "09:00", 120, "")
	require.NoError(t, err)
	assert.False(t, result.HasConflicts)

	active := seedAppointment(t, repo, testMonday, "14:00", 60)
	result, err = svc.CheckConflicts(ctx, testMonday, "14:00", 60, active.ID.String())
	require.NoError(t, err)
	assert.False(t, result.HasConflicts)
}

func TestAvailableTimesRespectsStepLunchAndCap(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	slots, err := svc.AvailableTimes(context.Background(), testMonday, 120)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.LessOrEqual(t, len(slots), 10)
	assert.Equal(t, "07:00", slots[0].Time)
	assert.Equal(t, "7:00 AM", slots[0].DisplayTime)

	for _, slot := range slots {
		assert.NotEqual(t, "12:00", slot.Time, "lunch start must be skipped")
		assert.NotEqual(t, "12:30", slot.Time, "lunch window must be skipped")
	}
}

func TestAvailableTimesExcludesPastSlotsToday(t *testing.T) {
	svc, _ := newAvailabilityService(t)
	loc, err := time.LoadLocation("Pacific/Honolulu")
	require.NoError(t, err)

	// 08:05 on the Monday itself: slots before 10:05 (now plus the two
	// hour notice window) must not be suggested.
	svc.now = func() time.Time {
		return time.Date(2025, 6, 16, 8, 5, 0, 0, loc)
	}

	slots, err := svc.AvailableTimes(context.Background(), testMonday, 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "10:30", slots[0].Time)

	// Other dates are unaffected by the clock
	slots, err = svc.AvailableTimes(context.Background(), "2025-06-17", 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "07:00", slots[0].Time)
}

func TestAvailableTimesEmptyOnClosedDay(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	slots, err := svc.AvailableTimes(context.Background(), testSunday, 60)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailableTimesAllRevalidate(t *testing.T) {
	svc, repo := newAvailabilityService(t)
	ctx := context.Background()
	seedAppointment(t, repo, testMonday, "09:00", 120)
	seedAppointment(t, repo, testMonday, "14:00", 90)

	slots, err := svc.AvailableTimes(ctx, testMonday, 60)
	require.NoError(t, err)

	for _, slot := range slots {
		result, err := svc.ValidateAppointmentTime(ctx, testMonday, slot.Time, 60, "")
		require.NoError(t, err)
		assert.True(t, result.Valid, "suggested slot %s failed revalidation: %s", slot.Time, result.Reason)
	}
}

func TestAvailableDatesSkipsClosedAndFullDays(t *testing.T) {
	svc, repo := newAvailabilityService(t)
	ctx := context.Background()

	// 2025-06-20 is a Friday; the scan from Thursday covers Fri-Sun.
	seedAppointment(t, repo, "2025-06-20", "07:00", 600) // fills the whole Friday

	dates, err := svc.AvailableDates(ctx, "2025-06-19", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-21"}, dates)
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	svc, _ := newAvailabilityService(t)
	ctx := context.Background()

	_, err := svc.ValidateAppointmentTime(ctx, "06/16/2025", "09:00", 60, "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.ValidateAppointmentTime(ctx, testMonday, "9am", 60, "")
	assert.ErrorIs(t, err, ErrInvalidTime)
}
