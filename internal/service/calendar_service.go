package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/repository"
	"github.com/spankks/scheduling-api/internal/timeutil"
	"go.uber.org/zap"
)

// statusColors maps appointment statuses to calendar display colors
var statusColors = map[domain.AppointmentStatus]string{
	domain.StatusScheduled:  "#007bff",
	domain.StatusInProgress: "#28a745",
	domain.StatusCompleted:  "#6c757d",
	domain.StatusCancelled:  "#dc3545",
	domain.StatusTentative:  "#ffc107",
}

const defaultEventColor = "#007bff"

// CalendarService projects appointments into calendar events. Pure
// formatting over the appointment store; the only export format this
// subsystem has.
type CalendarService struct {
	appointmentRepo *repository.AppointmentRepository
	logger          *zap.Logger
	loc             *time.Location
	now             func() time.Time
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(appointmentRepo *repository.AppointmentRepository, timezone string, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		appointmentRepo: appointmentRepo,
		logger:          logger,
		loc:             timeutil.LoadLocation(timezone),
		now:             time.Now,
	}
}

// Events returns calendar events for the given date range. Empty or
// malformed bounds fall back to the current month; the fallback is logged
// so defaulted ranges can be told apart from requested ones.
func (s *CalendarService) Events(ctx context.Context, start, end string) ([]domain.CalendarEvent, error) {
	today := s.now().In(s.loc)
	monthStart, monthEnd := timeutil.MonthBounds(today)

	startDate, startDefaulted := timeutil.ParseDateOr(start, monthStart)
	endDate, endDefaulted := timeutil.ParseDateOr(end, monthEnd)
	if startDefaulted || endDefaulted {
		s.logger.Warn("calendar range defaulted to current month",
			zap.String("requested_start", start),
			zap.String("requested_end", end))
		startDate, endDate = monthStart, monthEnd
	}

	appointments, err := s.appointmentRepo.ListByDateRange(ctx,
		startDate.Format(timeutil.DateLayout), endDate.Format(timeutil.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar events: %w", err)
	}

	events := make([]domain.CalendarEvent, len(appointments))
	for i, apt := range appointments {
		color, ok := statusColors[apt.Status]
		if !ok {
			color = defaultEventColor
		}
		events[i] = domain.CalendarEvent{
			ID:              apt.ID.String(),
			Title:           fmt.Sprintf("%s - %s", apt.ServiceType, apt.ClientName),
			Start:           fmt.Sprintf("%sT%s", apt.ScheduledDate, apt.ScheduledTime),
			BackgroundColor: color,
			BorderColor:     color,
			TextColor:       "#ffffff",
			ExtendedProps: domain.CalendarEventExtension{
				ClientID: apt.ClientID,
				JobID:    apt.JobID,
				Status:   apt.Status,
				Staff:    apt.AssignedStaff,
				Phone:    apt.ClientPhone,
				Notes:    apt.Notes,
			},
		}
	}

	return events, nil
}
