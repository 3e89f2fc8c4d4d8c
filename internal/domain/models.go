package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment.
// The set is open: callers may write other values, but these are the
// statuses the scheduler itself knows about.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusInProgress  AppointmentStatus = "in_progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusTentative   AppointmentStatus = "tentative"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusQuoted      AppointmentStatus = "quoted"
	StatusPending     AppointmentStatus = "pending"
)

// AppointmentPriority represents the priority of an appointment
type AppointmentPriority string

const (
	PriorityLow    AppointmentPriority = "low"
	PriorityNormal AppointmentPriority = "normal"
	PriorityHigh   AppointmentPriority = "high"
	PriorityUrgent AppointmentPriority = "urgent"
)

// Default scheduling values applied when the creation payload omits them
const (
	DefaultScheduledTime     = "09:00"
	DefaultEstimatedDuration = 120 // minutes
)

// Appointment is a scheduled service visit tied to a client and a job.
// Dates are stored as YYYY-MM-DD and times of day as HH:MM so that
// (scheduled_date, scheduled_time) ordering is plain string ordering.
// Appointments are never physically deleted; cancellation is a status.
type Appointment struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey" json:"appointmentId"`
	ClientID            string              `gorm:"type:varchar(20);not null;index;column:client_id" json:"clientId"`
	JobID               string              `gorm:"type:varchar(20);not null;uniqueIndex;column:job_id" json:"jobId"`
	ClientName          string              `gorm:"type:varchar(200);not null;index" json:"clientName"`
	ClientPhone         string              `gorm:"type:varchar(50)" json:"clientPhone"`
	ClientEmail         string              `gorm:"type:varchar(255);index" json:"clientEmail"`
	ServiceType         string              `gorm:"type:varchar(200);not null" json:"serviceType"`
	ProjectName         string              `gorm:"type:varchar(200)" json:"projectName,omitempty"`
	ScheduledDate       string              `gorm:"type:varchar(10);not null;index" json:"scheduledDate"`
	ScheduledTime       string              `gorm:"type:varchar(5);not null" json:"scheduledTime"`
	EstimatedDuration   int                 `gorm:"not null;default:120" json:"estimatedDuration"`
	Status              AppointmentStatus   `gorm:"type:varchar(50);not null;default:'scheduled';index" json:"status"`
	Priority            AppointmentPriority `gorm:"type:varchar(50);not null;default:'normal'" json:"priority"`
	AssignedStaff       StringList          `gorm:"type:text" json:"assignedStaff"`
	Location            string              `gorm:"type:varchar(500)" json:"location"`
	Notes               string              `gorm:"type:text" json:"notes"`
	QuoteID             *string             `gorm:"type:varchar(50)" json:"quoteId,omitempty"`
	BookingReference    *string             `gorm:"type:varchar(50)" json:"bookingReference,omitempty"`
	Tags                StringList          `gorm:"type:text" json:"tags"`
	MaterialsNeeded     StringList          `gorm:"type:text" json:"materialsNeeded"`
	SpecialInstructions string              `gorm:"type:text" json:"specialInstructions"`
	ProjectPhase        string              `gorm:"type:varchar(100)" json:"projectPhase,omitempty"`
	RelatedJobs         RelatedJobList      `gorm:"type:text" json:"relatedJobs"`
	StatusHistory       StringList          `gorm:"type:text" json:"statusHistory"`
	NotesHistory        NoteList            `gorm:"type:text" json:"notesHistory"`
	CreatedBy           string              `gorm:"type:varchar(100);not null;default:'system'" json:"createdBy"`
	UpdatedBy           string              `gorm:"type:varchar(100)" json:"updatedBy,omitempty"`
	CreatedAt           time.Time           `gorm:"not null" json:"createdAt"`
	UpdatedAt           time.Time           `gorm:"not null" json:"updatedAt"`
}

// RelatedJob is a summary of another appointment belonging to the same
// client. The list on each appointment is recomputed in full whenever a
// new appointment is created for that client, never patched incrementally.
type RelatedJob struct {
	JobID         string            `json:"jobId"`
	ProjectName   string            `json:"projectName"`
	ServiceType   string            `json:"serviceType"`
	Status        AppointmentStatus `json:"status"`
	ScheduledDate string            `json:"scheduledDate"`
}

// NoteEntry is one entry in an appointment's append-only notes history
type NoteEntry struct {
	Note      string `json:"note"`
	AddedBy   string `json:"addedBy"`
	Timestamp string `json:"timestamp"`
}

// SequenceName identifies one of the two independent ID counters
type SequenceName string

const (
	SequenceClient SequenceName = "client"
	SequenceJob    SequenceName = "job"
)

// IDSequence is a persisted monotonic counter. Allocated identifiers are
// never reused, even when the owning appointment is cancelled.
type IDSequence struct {
	Name      SequenceName `gorm:"type:varchar(20);primaryKey" json:"name"`
	NextID    int          `gorm:"not null;default:1;column:next_id" json:"nextId"`
	Prefix    string       `gorm:"type:varchar(10);not null" json:"prefix"`
	UpdatedAt time.Time    `gorm:"not null" json:"updatedAt"`
}

// Weekday names as used in the business-hours configuration
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// LunchBreakKey is the business-hours row holding the lunch exclusion window
const LunchBreakKey = "lunch_break"

// BusinessHoursEntry is one row of the business-hours configuration:
// either a weekday's open window or the lunch break.
type BusinessHoursEntry struct {
	Weekday   string    `gorm:"type:varchar(20);primaryKey" json:"weekday"`
	StartTime string    `gorm:"type:varchar(5);not null;column:start_time" json:"start"`
	EndTime   string    `gorm:"type:varchar(5);not null;column:end_time" json:"end"`
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// ScheduleSettings holds the scalar scheduling knobs. Single row.
type ScheduleSettings struct {
	ID            int       `gorm:"primaryKey" json:"-"`
	BufferMinutes int       `gorm:"not null;default:30;column:buffer_minutes" json:"bufferMinutes"`
	Timezone      string    `gorm:"type:varchar(100);not null;default:'Pacific/Honolulu'" json:"timezone"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

// HoursWindow is a weekday window in the assembled configuration
type HoursWindow struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Enabled bool   `json:"enabled"`
}

// BusinessHoursConfig is the assembled, read-only view the availability
// logic validates against: one window per weekday, a lunch window, a
// conflict buffer and the business timezone.
type BusinessHoursConfig struct {
	Days          map[string]HoursWindow `json:"days"`
	LunchBreak    HoursWindow            `json:"lunchBreak"`
	BufferMinutes int                    `json:"bufferMinutes"`
	Timezone      string                 `json:"timezone"`
}

// DefaultBusinessHours returns the stock SPANKKS configuration:
// Mon-Fri 07:00-17:00 with a 12:00-13:00 lunch, Sat 08:00-15:00 without
// lunch, closed Sundays, 30 minute travel buffer, Hawaii time.
func DefaultBusinessHours() BusinessHoursConfig {
	days := map[string]HoursWindow{
		"saturday": {Start: "08:00", End: "15:00", Enabled: true},
		"sunday":   {Start: "00:00", End: "00:00", Enabled: false},
	}
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		days[d] = HoursWindow{Start: "07:00", End: "17:00", Enabled: true}
	}
	return BusinessHoursConfig{
		Days:          days,
		LunchBreak:    HoursWindow{Start: "12:00", End: "13:00", Enabled: true},
		BufferMinutes: 30,
		Timezone:      "Pacific/Honolulu",
	}
}
