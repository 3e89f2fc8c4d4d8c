package domain

// Request and response shapes for the scheduling API

// CreateAppointmentRequest is the appointment creation payload. ClientID
// and JobID may be supplied explicitly (migrations, imports); otherwise the
// scheduler resolves or allocates them.
type CreateAppointmentRequest struct {
	ClientID            string   `json:"clientId,omitempty"`
	JobID               string   `json:"jobId,omitempty"`
	ClientName          string   `json:"clientName" validate:"required,max=200"`
	ClientPhone         string   `json:"clientPhone,omitempty" validate:"max=50"`
	ClientEmail         string   `json:"clientEmail,omitempty" validate:"omitempty,email"`
	ServiceType         string   `json:"serviceType" validate:"required,max=200"`
	ProjectName         string   `json:"projectName,omitempty" validate:"max=200"`
	ScheduledDate       string   `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	ScheduledTime       string   `json:"scheduledTime,omitempty" validate:"omitempty,datetime=15:04"`
	EstimatedDuration   int      `json:"estimatedDuration,omitempty" validate:"omitempty,gt=0"`
	Status              string   `json:"status,omitempty"`
	Priority            string   `json:"priority,omitempty"`
	AssignedStaff       []string `json:"assignedStaff,omitempty"`
	Location            string   `json:"location,omitempty"`
	Notes               string   `json:"notes,omitempty"`
	QuoteID             *string  `json:"quoteId,omitempty"`
	BookingReference    *string  `json:"bookingReference,omitempty"`
	CreatedBy           string   `json:"createdBy,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	MaterialsNeeded     []string `json:"materialsNeeded,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	ProjectPhase        string   `json:"projectPhase,omitempty"`
}

// UpdateStatusRequest changes an appointment's status
type UpdateStatusRequest struct {
	Status    string `json:"status" validate:"required,max=50"`
	UpdatedBy string `json:"updatedBy,omitempty"`
}

// AddNoteRequest appends a note to an appointment's history
type AddNoteRequest struct {
	Note    string `json:"note" validate:"required"`
	AddedBy string `json:"addedBy,omitempty"`
}

// ValidationType tags which check a slot validation failed on
type ValidationType string

const (
	ValidationBusinessHours ValidationType = "business_hours"
	ValidationConflict      ValidationType = "scheduling_conflict"
)

// SlotValidationResult is the outcome of validating a proposed slot.
// Rejections are results, not errors: the caller renders the reason and
// the suggestions.
type SlotValidationResult struct {
	Valid            bool           `json:"valid"`
	Type             ValidationType `json:"type,omitempty"`
	Reason           string         `json:"reason,omitempty"`
	Conflicts        []ConflictInfo `json:"conflicts,omitempty"`
	Suggestions      []SlotOption   `json:"suggestions,omitempty"`
	AlternativeDates []DateOption   `json:"alternativeDates,omitempty"`
}

// ConflictInfo summarizes an existing appointment that overlaps a
// proposed slot
type ConflictInfo struct {
	AppointmentID     string `json:"appointmentId"`
	ClientName        string `json:"clientName"`
	ServiceType       string `json:"serviceType"`
	ScheduledTime     string `json:"scheduledTime"`
	EstimatedDuration int    `json:"estimatedDuration"`
}

// ConflictCheckResult is the outcome of a conflict-only check
type ConflictCheckResult struct {
	HasConflicts bool           `json:"hasConflicts"`
	Conflicts    []ConflictInfo `json:"conflicts"`
	Suggestions  []SlotOption   `json:"suggestions,omitempty"`
}

// SlotOption is a suggested alternative start time
type SlotOption struct {
	Time        string `json:"time"`
	DisplayTime string `json:"displayTime"`
}

// DateOption is a suggested alternative date (closed-day fallback)
type DateOption struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// ValidateSlotRequest asks whether a proposed slot can be booked
type ValidateSlotRequest struct {
	ScheduledDate     string `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	ScheduledTime     string `json:"scheduledTime" validate:"required,datetime=15:04"`
	EstimatedDuration int    `json:"estimatedDuration,omitempty" validate:"omitempty,gt=0"`
	ExcludeID         string `json:"excludeId,omitempty"`
}

// WeeklySchedule groups a week of appointments by date, Monday-anchored
type WeeklySchedule struct {
	WeekDates         []string                 `json:"weekDates"`
	Schedule          map[string][]Appointment `json:"schedule"`
	TotalAppointments int                      `json:"totalAppointments"`
	WeekStart         string                   `json:"weekStart"`
	WeekEnd           string                   `json:"weekEnd"`
}

// ProjectSummary is one line of a client's project history
type ProjectSummary struct {
	JobID         string            `json:"jobId"`
	ProjectName   string            `json:"projectName"`
	ServiceType   string            `json:"serviceType"`
	Status        AppointmentStatus `json:"status"`
	ScheduledDate string            `json:"scheduledDate"`
}

// RepeatClient summarizes a client with more than one project
type RepeatClient struct {
	ClientID     string `json:"clientId"`
	ClientName   string `json:"clientName"`
	ProjectCount int    `json:"projectCount"`
}

// CalendarEvent is the calendar projection of an appointment, shaped for
// FullCalendar-style rendering
type CalendarEvent struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Start           string                 `json:"start"`
	BackgroundColor string                 `json:"backgroundColor"`
	BorderColor     string                 `json:"borderColor"`
	TextColor       string                 `json:"textColor"`
	ExtendedProps   CalendarEventExtension `json:"extendedProps"`
}

// CalendarEventExtension carries the scheduling detail a calendar popover
// needs
type CalendarEventExtension struct {
	ClientID string            `json:"clientId"`
	JobID    string            `json:"jobId"`
	Status   AppointmentStatus `json:"status"`
	Staff    []string          `json:"staff"`
	Phone    string            `json:"phone"`
	Notes    string            `json:"notes"`
}

// LegacyAppointment is the older appointment shape accepted by the
// migration endpoint. Field names follow the legacy export.
type LegacyAppointment struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Service     string `json:"service"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	StaffID     string `json:"staff_id"`
	BookingID   string `json:"booking_id"`
	CreatedBy   string `json:"created_by"`
}

// MigrationResult reports a best-effort legacy import
type MigrationResult struct {
	Migrated int `json:"migrated"`
	Failed   int `json:"failed"`
}

// UpdateBusinessHoursRequest replaces the business-hours configuration
type UpdateBusinessHoursRequest struct {
	Days          map[string]HoursWindow `json:"days" validate:"required"`
	LunchBreak    HoursWindow            `json:"lunchBreak"`
	BufferMinutes int                    `json:"bufferMinutes" validate:"gte=0"`
	Timezone      string                 `json:"timezone,omitempty"`
}
