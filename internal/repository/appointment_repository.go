package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/spankks/scheduling-api/internal/domain"
	"gorm.io/gorm"
)

// AppointmentRepository handles database operations for appointments.
// Appointments are never deleted here; cancellation is a status value.
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, apt *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(apt).Error
}

func (r *AppointmentRepository) Update(ctx context.Context, apt *domain.Appointment) error {
	return r.db.WithContext(ctx).Save(apt).Error
}

// GetByID returns nil, nil when no appointment matches; lookup misses are
// not errors in this subsystem.
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	var apt domain.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&apt).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

// GetByClientAndJob looks up an appointment by its client/job ID pair
func (r *AppointmentRepository) GetByClientAndJob(ctx context.Context, clientID, jobID string) (*domain.Appointment, error) {
	var apt domain.Appointment
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND job_id = ?", clientID, jobID).
		First(&apt).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}

// ListByDateRange returns appointments with start <= scheduled_date <= end,
// ordered by date then time of day
func (r *AppointmentRepository) ListByDateRange(ctx context.Context, start, end string) ([]domain.Appointment, error) {
	var apts []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date <= ?", start, end).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&apts).Error
	return apts, err
}

// ListActiveByDate returns the non-cancelled appointments on a date. This
// is the set conflict detection runs against.
func (r *AppointmentRepository) ListActiveByDate(ctx context.Context, date string) ([]domain.Appointment, error) {
	var apts []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("scheduled_date = ? AND status <> ?", date, domain.StatusCancelled).
		Order("scheduled_time ASC").
		Find(&apts).Error
	return apts, err
}

// ListByClient returns every appointment belonging to a client, newest
// scheduled date first
func (r *AppointmentRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Appointment, error) {
	var apts []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("scheduled_date DESC, scheduled_time DESC").
		Find(&apts).Error
	return apts, err
}

// ListAll returns every appointment ordered by date then time
func (r *AppointmentRepository) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	var apts []domain.Appointment
	err := r.db.WithContext(ctx).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&apts).Error
	return apts, err
}

// FindClientIDByEmail returns the client_id of the oldest appointment with
// a case-insensitive exact email match, or "" when none matches
func (r *AppointmentRepository) FindClientIDByEmail(ctx context.Context, email string) (string, error) {
	return r.findClientID(ctx, "LOWER(client_email) = ?", strings.ToLower(email))
}

// FindClientIDByPhone returns the client_id of the oldest appointment with
// an exact phone string match, or "" when none matches
func (r *AppointmentRepository) FindClientIDByPhone(ctx context.Context, phone string) (string, error) {
	return r.findClientID(ctx, "client_phone = ?", phone)
}

// FindClientIDByName returns the client_id of the oldest appointment with
// a case-insensitive exact name match, or "" when none matches
func (r *AppointmentRepository) FindClientIDByName(ctx context.Context, name string) (string, error) {
	return r.findClientID(ctx, "LOWER(client_name) = ?", strings.ToLower(name))
}

func (r *AppointmentRepository) findClientID(ctx context.Context, cond string, arg string) (string, error) {
	var apt domain.Appointment
	err := r.db.WithContext(ctx).
		Select("client_id").
		Where(cond, arg).
		Order("created_at ASC").
		First(&apt).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return apt.ClientID, nil
}

// UpdateRelatedJobs rewrites the related_jobs column of a single
// appointment. Used by the per-client full recompute after each create.
func (r *AppointmentRepository) UpdateRelatedJobs(ctx context.Context, id uuid.UUID, jobs domain.RelatedJobList) error {
	return r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Update("related_jobs", jobs).Error
}

// ListRepeatClients returns clients with more than one appointment,
// ordered by project count descending
func (r *AppointmentRepository) ListRepeatClients(ctx context.Context) ([]domain.RepeatClient, error) {
	var clients []domain.RepeatClient
	err := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Select("client_id, MAX(client_name) AS client_name, COUNT(*) AS project_count").
		Group("client_id").
		Having("COUNT(*) > 1").
		Order("project_count DESC").
		Scan(&clients).Error
	return clients, err
}

// Count returns the total number of appointments
func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Appointment{}).Count(&count).Error
	return count, err
}
