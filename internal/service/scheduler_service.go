package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/repository"
	"github.com/spankks/scheduling-api/internal/timeutil"
	"go.uber.org/zap"
)

// SchedulerService owns appointment records and their identifiers. It
// creates and mutates appointments, resolves client continuity, and keeps
// each client's denormalized related-jobs list current.
//
// Creation deliberately performs no slot validation; callers run
// AvailabilityService.ValidateAppointmentTime first when they want a
// conflict-free booking. The two steps are not atomic, so two
// simultaneous creations for the same slot can both land.
type SchedulerService struct {
	appointmentRepo *repository.AppointmentRepository
	sequenceRepo    *repository.SequenceRepository
	logger          *zap.Logger
	loc             *time.Location
	now             func() time.Time
}

// NewSchedulerService creates a new SchedulerService anchored to the
// business timezone
func NewSchedulerService(
	appointmentRepo *repository.AppointmentRepository,
	sequenceRepo *repository.SequenceRepository,
	timezone string,
	logger *zap.Logger,
) *SchedulerService {
	return &SchedulerService{
		appointmentRepo: appointmentRepo,
		sequenceRepo:    sequenceRepo,
		logger:          logger,
		loc:             timeutil.LoadLocation(timezone),
		now:             time.Now,
	}
}

// CreateAppointment creates a new appointment. The client ID is reused
// from a prior appointment when the payload matches one by email, phone
// or name (in that order); otherwise a fresh CLI### is allocated. A fresh
// JOB### is always allocated unless the payload supplies one. After the
// write, the related-jobs list of every appointment belonging to the
// client is recomputed in full.
func (s *SchedulerService) CreateAppointment(ctx context.Context, req *domain.CreateAppointmentRequest) (*domain.Appointment, error) {
	if req.ClientName == "" || req.ServiceType == "" || req.ScheduledDate == "" {
		return nil, fmt.Errorf("%w: client name, service type and scheduled date are required", ErrInvalidInput)
	}
	if _, err := timeutil.ParseDate(req.ScheduledDate); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.ScheduledDate)
	}

	clientID := req.ClientID
	if clientID == "" {
		resolved, err := s.ResolveClientID(ctx, req.ClientEmail, req.ClientPhone, req.ClientName)
		if err != nil {
			return nil, err
		}
		clientID = resolved
	}
	if clientID == "" {
		allocated, err := s.sequenceRepo.AllocateNextID(ctx, domain.SequenceClient)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate client id: %w", err)
		}
		clientID = allocated
	}

	jobID := req.JobID
	if jobID == "" {
		allocated, err := s.sequenceRepo.AllocateNextID(ctx, domain.SequenceJob)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate job id: %w", err)
		}
		jobID = allocated
	}

	now := s.now().In(s.loc)
	apt := &domain.Appointment{
		ID:                  uuid.New(),
		ClientID:            clientID,
		JobID:               jobID,
		ClientName:          req.ClientName,
		ClientPhone:         req.ClientPhone,
		ClientEmail:         req.ClientEmail,
		ServiceType:         req.ServiceType,
		ProjectName:         req.ProjectName,
		ScheduledDate:       req.ScheduledDate,
		ScheduledTime:       defaultString(req.ScheduledTime, domain.DefaultScheduledTime),
		EstimatedDuration:   defaultInt(req.EstimatedDuration, domain.DefaultEstimatedDuration),
		Status:              domain.AppointmentStatus(defaultString(req.Status, string(domain.StatusScheduled))),
		Priority:            domain.AppointmentPriority(defaultString(req.Priority, string(domain.PriorityNormal))),
		AssignedStaff:       domain.StringList(req.AssignedStaff),
		Location:            req.Location,
		Notes:               req.Notes,
		QuoteID:             req.QuoteID,
		BookingReference:    req.BookingReference,
		Tags:                domain.StringList(req.Tags),
		MaterialsNeeded:     domain.StringList(req.MaterialsNeeded),
		SpecialInstructions: req.SpecialInstructions,
		ProjectPhase:        req.ProjectPhase,
		RelatedJobs:         domain.RelatedJobList{},
		StatusHistory:       domain.StringList{},
		NotesHistory:        domain.NoteList{},
		CreatedBy:           defaultString(req.CreatedBy, "system"),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.appointmentRepo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.recomputeRelatedJobs(ctx, clientID); err != nil {
		// The appointment itself is persisted; a stale related-jobs list
		// is repaired by the next create for this client.
		s.logger.Error("failed to recompute related jobs",
			zap.String("client_id", clientID),
			zap.Error(err))
	}

	created, err := s.appointmentRepo.GetByID(ctx, apt.ID)
	if err != nil || created == nil {
		return apt, nil
	}

	s.logger.Info("created appointment",
		zap.String("appointment_id", apt.ID.String()),
		zap.String("client_id", clientID),
		zap.String("job_id", jobID),
		zap.String("scheduled_date", apt.ScheduledDate),
		zap.String("scheduled_time", apt.ScheduledTime))

	return created, nil
}

// ResolveClientID scans existing appointments for a client matching by
// case-insensitive email, then exact phone, then case-insensitive name,
// in that priority order. Returns "" when nothing matches. Linear in the
// appointment count; fine at this scale.
func (s *SchedulerService) ResolveClientID(ctx context.Context, email, phone, name string) (string, error) {
	if email != "" {
		clientID, err := s.appointmentRepo.FindClientIDByEmail(ctx, email)
		if err != nil {
			return "", fmt.Errorf("failed to resolve client by email: %w", err)
		}
		if clientID != "" {
			return clientID, nil
		}
	}
	if phone != "" {
		clientID, err := s.appointmentRepo.FindClientIDByPhone(ctx, phone)
		if err != nil {
			return "", fmt.Errorf("failed to resolve client by phone: %w", err)
		}
		if clientID != "" {
			return clientID, nil
		}
	}
	if name != "" {
		clientID, err := s.appointmentRepo.FindClientIDByName(ctx, name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve client by name: %w", err)
		}
		if clientID != "" {
			return clientID, nil
		}
	}
	return "", nil
}

// recomputeRelatedJobs rewrites related_jobs on every appointment of a
// client so each lists exactly the client's other appointments. Total
// recomputation, not incremental: staleness after a partial update is
// worse than the extra writes.
func (s *SchedulerService) recomputeRelatedJobs(ctx context.Context, clientID string) error {
	appointments, err := s.appointmentRepo.ListByClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to list client appointments: %w", err)
	}

	for _, apt := range appointments {
		related := make(domain.RelatedJobList, 0, len(appointments)-1)
		for _, other := range appointments {
			if other.ID == apt.ID {
				continue
			}
			related = append(related, domain.RelatedJob{
				JobID:         other.JobID,
				ProjectName:   defaultString(other.ProjectName, other.ServiceType),
				ServiceType:   other.ServiceType,
				Status:        other.Status,
				ScheduledDate: other.ScheduledDate,
			})
		}
		if err := s.appointmentRepo.UpdateRelatedJobs(ctx, apt.ID, related); err != nil {
			return fmt.Errorf("failed to update related jobs for %s: %w", apt.JobID, err)
		}
	}

	return nil
}

// GetByID returns nil when no appointment matches
func (s *SchedulerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return s.appointmentRepo.GetByID(ctx, id)
}

// GetByClientAndJob returns nil when no appointment matches
func (s *SchedulerService) GetByClientAndJob(ctx context.Context, clientID, jobID string) (*domain.Appointment, error) {
	return s.appointmentRepo.GetByClientAndJob(ctx, clientID, jobID)
}

// UpdateStatus changes an appointment's status and appends a history
// line. Returns ErrNotFound when the appointment does not exist; calling
// twice with the same status appends two lines but leaves the status
// unchanged.
func (s *SchedulerService) UpdateStatus(ctx context.Context, id uuid.UUID, status, updatedBy string) error {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if apt == nil {
		return ErrNotFound
	}

	if updatedBy == "" {
		updatedBy = "system"
	}
	oldStatus := apt.Status
	apt.Status = domain.AppointmentStatus(status)
	apt.UpdatedBy = updatedBy
	apt.UpdatedAt = s.now().In(s.loc)
	apt.StatusHistory = append(apt.StatusHistory,
		fmt.Sprintf("Status changed from %s to %s by %s", oldStatus, status, updatedBy))

	if err := s.appointmentRepo.Update(ctx, apt); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	s.logger.Info("updated appointment status",
		zap.String("appointment_id", id.String()),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", status),
		zap.String("updated_by", updatedBy))

	return nil
}

// AddNote appends a note entry to an appointment's history. Returns
// ErrNotFound when the appointment does not exist.
func (s *SchedulerService) AddNote(ctx context.Context, id uuid.UUID, note, addedBy string) error {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if apt == nil {
		return ErrNotFound
	}

	if addedBy == "" {
		addedBy = "system"
	}
	now := s.now().In(s.loc)
	apt.NotesHistory = append(apt.NotesHistory, domain.NoteEntry{
		Note:      note,
		AddedBy:   addedBy,
		Timestamp: now.Format(time.RFC3339),
	})
	apt.UpdatedAt = now

	if err := s.appointmentRepo.Update(ctx, apt); err != nil {
		return fmt.Errorf("failed to add appointment note: %w", err)
	}

	return nil
}

// ByDateRange returns appointments between two dates inclusive, sorted by
// date then time
func (s *SchedulerService) ByDateRange(ctx context.Context, start, end string) ([]domain.Appointment, error) {
	if _, err := timeutil.ParseDate(start); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, start)
	}
	if _, err := timeutil.ParseDate(end); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, end)
	}
	return s.appointmentRepo.ListByDateRange(ctx, start, end)
}

// WeeklySchedule groups one week of appointments by date, anchored to the
// Monday of the current week in the business timezone plus weekOffset
// weeks
func (s *SchedulerService) WeeklySchedule(ctx context.Context, weekOffset int) (*domain.WeeklySchedule, error) {
	monday := timeutil.MondayOfWeek(s.now().In(s.loc)).AddDate(0, 0, 7*weekOffset)

	weekDates := make([]string, 7)
	schedule := make(map[string][]domain.Appointment, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format(timeutil.DateLayout)
		weekDates[i] = date
		schedule[date] = []domain.Appointment{}
	}

	weekStart := weekDates[0]
	weekEnd := weekDates[6]
	appointments, err := s.appointmentRepo.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly schedule: %w", err)
	}

	for _, apt := range appointments {
		schedule[apt.ScheduledDate] = append(schedule[apt.ScheduledDate], apt)
	}

	return &domain.WeeklySchedule{
		WeekDates:         weekDates,
		Schedule:          schedule,
		TotalAppointments: len(appointments),
		WeekStart:         weekStart,
		WeekEnd:           weekEnd,
	}, nil
}

// StaffSchedule returns the appointments assigned to a staff member,
// optionally narrowed to a single date, sorted by date then time
func (s *SchedulerService) StaffSchedule(ctx context.Context, staffID, date string) ([]domain.Appointment, error) {
	var candidates []domain.Appointment
	var err error
	if date != "" {
		candidates, err = s.appointmentRepo.ListByDateRange(ctx, date, date)
	} else {
		candidates, err = s.appointmentRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staff schedule: %w", err)
	}

	assigned := []domain.Appointment{}
	for _, apt := range candidates {
		if apt.AssignedStaff.Contains(staffID) {
			assigned = append(assigned, apt)
		}
	}
	return assigned, nil
}

// ClientProjectHistory returns a client's projects newest first
func (s *SchedulerService) ClientProjectHistory(ctx context.Context, clientID string) ([]domain.ProjectSummary, error) {
	appointments, err := s.appointmentRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client history: %w", err)
	}

	history := make([]domain.ProjectSummary, len(appointments))
	for i, apt := range appointments {
		history[i] = domain.ProjectSummary{
			JobID:         apt.JobID,
			ProjectName:   defaultString(apt.ProjectName, apt.ServiceType),
			ServiceType:   apt.ServiceType,
			Status:        apt.Status,
			ScheduledDate: apt.ScheduledDate,
		}
	}
	return history, nil
}

// RepeatClients returns clients with more than one project, most projects
// first
func (s *SchedulerService) RepeatClients(ctx context.Context) ([]domain.RepeatClient, error) {
	return s.appointmentRepo.ListRepeatClients(ctx)
}

// MigrateLegacy imports appointments from the legacy export shape. One
// bad record never aborts the batch: failures are logged and counted.
func (s *SchedulerService) MigrateLegacy(ctx context.Context, records []domain.LegacyAppointment) domain.MigrationResult {
	result := domain.MigrationResult{}

	for i, legacy := range records {
		req := &domain.CreateAppointmentRequest{
			ClientName:       defaultString(legacy.ClientName, "Unknown"),
			ClientPhone:      legacy.ClientPhone,
			ClientEmail:      legacy.ClientEmail,
			ServiceType:      defaultString(legacy.Service, "General Service"),
			ScheduledDate:    legacy.Date,
			ScheduledTime:    defaultString(legacy.Time, domain.DefaultScheduledTime),
			Status:           defaultString(legacy.Status, string(domain.StatusScheduled)),
			Notes:            legacy.Notes,
			CreatedBy:        defaultString(legacy.CreatedBy, "migration"),
			Tags:             []string{"migrated"},
			BookingReference: nilIfEmpty(legacy.BookingID),
		}
		if legacy.StaffID != "" {
			req.AssignedStaff = []string{legacy.StaffID}
		}

		if _, err := s.CreateAppointment(ctx, req); err != nil {
			result.Failed++
			s.logger.Error("failed to migrate legacy appointment",
				zap.Int("record", i),
				zap.String("client_name", legacy.ClientName),
				zap.Error(err))
			continue
		}
		result.Migrated++
	}

	s.logger.Info("migrated legacy appointments",
		zap.Int("migrated", result.Migrated),
		zap.Int("failed", result.Failed))

	return result
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func defaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
