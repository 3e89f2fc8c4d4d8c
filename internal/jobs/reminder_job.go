package jobs

import (
	"context"
	"time"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/timeutil"
	"go.uber.org/zap"
)

// ReminderJobName is the name of the daily appointment reminder job
const ReminderJobName = "appointment_reminders"

// DefaultReminderTimeout bounds how long one reminder run may take
const DefaultReminderTimeout = 2 * time.Minute

// AppointmentSource defines the interface for loading the appointments a
// reminder run covers. This interface allows the job to call the service
// without importing the service package directly.
type AppointmentSource interface {
	// ByDateRange returns appointments between two dates inclusive.
	ByDateRange(ctx context.Context, start, end string) ([]domain.Appointment, error)
}

// ReminderJob logs a reminder line for every non-cancelled appointment
// scheduled for the next business day. Delivery (SMS, email) is handled
// downstream by whatever tails the log stream; the job only surfaces the
// facts.
type ReminderJob struct {
	source  AppointmentSource
	logger  *zap.Logger
	loc     *time.Location
	timeout time.Duration
	now     func() time.Time
}

// NewReminderJob creates a new daily reminder job anchored to the business
// timezone.
func NewReminderJob(source AppointmentSource, timezone string, logger *zap.Logger, timeout time.Duration) *ReminderJob {
	if timeout <= 0 {
		timeout = DefaultReminderTimeout
	}
	return &ReminderJob{
		source:  source,
		logger:  logger,
		loc:     timeutil.LoadLocation(timezone),
		timeout: timeout,
		now:     time.Now,
	}
}

// Run executes one reminder sweep for tomorrow's appointments.
// This is called by the scheduler according to the cron expression.
func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	tomorrow := j.now().In(j.loc).AddDate(0, 0, 1).Format(timeutil.DateLayout)

	appointments, err := j.source.ByDateRange(ctx, tomorrow, tomorrow)
	if err != nil {
		j.logger.Error("reminder sweep failed to load appointments",
			zap.String("date", tomorrow),
			zap.Error(err))
		return
	}

	reminded := 0
	for _, apt := range appointments {
		if apt.Status == domain.StatusCancelled {
			continue
		}
		j.logger.Info("appointment reminder",
			zap.String("appointment_id", apt.ID.String()),
			zap.String("client_name", apt.ClientName),
			zap.String("client_phone", apt.ClientPhone),
			zap.String("service_type", apt.ServiceType),
			zap.String("scheduled_date", apt.ScheduledDate),
			zap.String("scheduled_time", timeutil.DisplayTime(apt.ScheduledTime)),
			zap.Strings("assigned_staff", apt.AssignedStaff))
		reminded++
	}

	j.logger.Info("completed reminder sweep",
		zap.String("date", tomorrow),
		zap.Int("reminders", reminded),
		zap.Int("appointments", len(appointments)))
}
