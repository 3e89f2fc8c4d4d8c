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

const (
	// slotStepMinutes is the spacing between candidate start times
	slotStepMinutes = 30
	// maxSlotSuggestions caps alternative start times per response
	maxSlotSuggestions = 10
	// maxDateSuggestions caps alternative dates on closed days
	maxDateSuggestions = 3
	// dateScanWindowDays bounds the forward scan for open weekdays
	dateScanWindowDays = 7
	// minimumNoticeMinutes is how far ahead a same-day suggestion must be
	minimumNoticeMinutes = 120
)

// AvailabilityService validates proposed appointment slots against
// business hours and existing bookings, and suggests alternatives when a
// slot is rejected. Rejections are structured results, not errors.
type AvailabilityService struct {
	appointmentRepo *repository.AppointmentRepository
	hoursRepo       *repository.BusinessHoursRepository
	logger          *zap.Logger
	now             func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(
	appointmentRepo *repository.AppointmentRepository,
	hoursRepo *repository.BusinessHoursRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		appointmentRepo: appointmentRepo,
		hoursRepo:       hoursRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// IsWithinBusinessHours checks a date/time against the configured hours.
// On a closed day the result suggests the next open weekdays; outside
// hours or during lunch it suggests free slots on the same date.
func (s *AvailabilityService) IsWithinBusinessHours(ctx context.Context, date, timeOfDay string) (domain.SlotValidationResult, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return domain.SlotValidationResult{}, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	minutes, err := timeutil.MinutesOfDay(timeOfDay)
	if err != nil {
		return domain.SlotValidationResult{}, fmt.Errorf("%w: %s", ErrInvalidTime, timeOfDay)
	}

	cfg, err := s.hoursRepo.GetConfig(ctx)
	if err != nil {
		return domain.SlotValidationResult{}, err
	}

	weekday := timeutil.WeekdayName(day)
	window := cfg.Days[weekday]

	if !window.Enabled {
		return domain.SlotValidationResult{
			Valid:            false,
			Type:             domain.ValidationBusinessHours,
			Reason:           fmt.Sprintf("We are closed on %ss", weekday),
			AlternativeDates: s.nextOpenDates(cfg, day),
		}, nil
	}

	openMin, err := timeutil.MinutesOfDay(window.Start)
	if err != nil {
		return domain.SlotValidationResult{}, fmt.Errorf("malformed business hours for %s: %w", weekday, err)
	}
	closeMin, err := timeutil.MinutesOfDay(window.End)
	if err != nil {
		return domain.SlotValidationResult{}, fmt.Errorf("malformed business hours for %s: %w", weekday, err)
	}

	if minutes < openMin || minutes >= closeMin {
		suggestions, serr := s.AvailableTimes(ctx, date, domain.DefaultEstimatedDuration)
		if serr != nil {
			s.logger.Warn("failed to compute slot suggestions", zap.String("date", date), zap.Error(serr))
		}
		return domain.SlotValidationResult{
			Valid:       false,
			Type:        domain.ValidationBusinessHours,
			Reason:      fmt.Sprintf("Business hours on %ss are %s to %s", weekday, window.Start, window.End),
			Suggestions: suggestions,
		}, nil
	}

	if cfg.LunchBreak.Enabled {
		if inWindow, _ := minutesInWindow(minutes, cfg.LunchBreak); inWindow {
			suggestions, serr := s.AvailableTimes(ctx, date, domain.DefaultEstimatedDuration)
			if serr != nil {
				s.logger.Warn("failed to compute slot suggestions", zap.String("date", date), zap.Error(serr))
			}
			return domain.SlotValidationResult{
				Valid:       false,
				Type:        domain.ValidationBusinessHours,
				Reason:      fmt.Sprintf("That time falls during the lunch break (%s to %s)", cfg.LunchBreak.Start, cfg.LunchBreak.End),
				Suggestions: suggestions,
			}, nil
		}
	}

	return domain.SlotValidationResult{Valid: true}, nil
}

// CheckConflicts compares a proposed interval against the non-cancelled
// appointments on the same date. The travel buffer expands the EXISTING
// appointment's interval on both ends; the proposed interval is taken
// as-is. When conflicts exist the result carries up to ten alternative
// start times for the date.
func (s *AvailabilityService) CheckConflicts(ctx context.Context, date, timeOfDay string, durationMinutes int, excludeID string) (domain.ConflictCheckResult, error) {
	conflicts, err := s.findConflicts(ctx, date, timeOfDay, durationMinutes, excludeID)
	if err != nil {
		return domain.ConflictCheckResult{}, err
	}

	result := domain.ConflictCheckResult{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}
	if result.HasConflicts {
		suggestions, serr := s.AvailableTimes(ctx, date, durationMinutes)
		if serr != nil {
			s.logger.Warn("failed to compute slot suggestions", zap.String("date", date), zap.Error(serr))
		}
		result.Suggestions = suggestions
	}
	return result, nil
}

// ValidateAppointmentTime runs the business-hours check first and the
// conflict check second, returning the first failure found
func (s *AvailabilityService) ValidateAppointmentTime(ctx context.Context, date, timeOfDay string, durationMinutes int, excludeID string) (domain.SlotValidationResult, error) {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultEstimatedDuration
	}

	hoursResult, err := s.IsWithinBusinessHours(ctx, date, timeOfDay)
	if err != nil {
		return domain.SlotValidationResult{}, err
	}
	if !hoursResult.Valid {
		return hoursResult, nil
	}

	conflictResult, err := s.CheckConflicts(ctx, date, timeOfDay, durationMinutes, excludeID)
	if err != nil {
		return domain.SlotValidationResult{}, err
	}
	if conflictResult.HasConflicts {
		return domain.SlotValidationResult{
			Valid:       false,
			Type:        domain.ValidationConflict,
			Reason:      fmt.Sprintf("The requested time overlaps %d existing appointment(s)", len(conflictResult.Conflicts)),
			Conflicts:   conflictResult.Conflicts,
			Suggestions: conflictResult.Suggestions,
		}, nil
	}

	return domain.SlotValidationResult{Valid: true}, nil
}

// AvailableTimes generates candidate start times every thirty minutes
// from the day's open time through close minus duration, drops candidates
// that fall in the lunch window or conflict with existing bookings, and
// returns up to ten in chronological order. Brute force by design; the
// daily appointment count is small.
func (s *AvailabilityService) AvailableTimes(ctx context.Context, date string, durationMinutes int) ([]domain.SlotOption, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultEstimatedDuration
	}

	cfg, err := s.hoursRepo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	window := cfg.Days[timeutil.WeekdayName(day)]
	if !window.Enabled {
		return []domain.SlotOption{}, nil
	}
	openMin, err := timeutil.MinutesOfDay(window.Start)
	if err != nil {
		return nil, err
	}
	closeMin, err := timeutil.MinutesOfDay(window.End)
	if err != nil {
		return nil, err
	}

	// When suggesting slots for today, anything already past (plus the
	// minimum notice window) is unusable.
	minStart := -1
	if today := s.now().In(timeutil.LoadLocation(cfg.Timezone)); date == today.Format(timeutil.DateLayout) {
		minStart = today.Hour()*60 + today.Minute() + minimumNoticeMinutes
	}

	var slots []domain.SlotOption
	for start := openMin; start+durationMinutes <= closeMin; start += slotStepMinutes {
		if start < minStart {
			continue
		}
		if cfg.LunchBreak.Enabled {
			if inLunch, _ := minutesInWindow(start, cfg.LunchBreak); inLunch {
				continue
			}
		}

		candidate := timeutil.FormatMinutes(start)
		conflicts, err := s.findConflicts(ctx, date, candidate, durationMinutes, "")
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			continue
		}

		slots = append(slots, domain.SlotOption{
			Time:        candidate,
			DisplayTime: timeutil.DisplayTime(candidate),
		})
		if len(slots) >= maxSlotSuggestions {
			break
		}
	}

	if slots == nil {
		slots = []domain.SlotOption{}
	}
	return slots, nil
}

// AvailableDates scans the next daysAhead days starting tomorrow and
// returns the dates that still have at least one free default-length slot
func (s *AvailabilityService) AvailableDates(ctx context.Context, from string, daysAhead int) ([]string, error) {
	start, err := timeutil.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, from)
	}

	dates := []string{}
	for i := 1; i <= daysAhead; i++ {
		date := start.AddDate(0, 0, i).Format(timeutil.DateLayout)
		slots, err := s.AvailableTimes(ctx, date, domain.DefaultEstimatedDuration)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			dates = append(dates, date)
		}
	}
	return dates, nil
}

// findConflicts is the raw overlap scan shared by CheckConflicts and
// AvailableTimes. Appointments with unparseable stored times are skipped
// with a warning rather than failing the whole check.
func (s *AvailabilityService) findConflicts(ctx context.Context, date, timeOfDay string, durationMinutes int, excludeID string) ([]domain.ConflictInfo, error) {
	proposedStart, err := timeutil.MinutesOfDay(timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTime, timeOfDay)
	}
	proposedEnd := proposedStart + durationMinutes

	cfg, err := s.hoursRepo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.appointmentRepo.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for %s: %w", date, err)
	}

	var conflicts []domain.ConflictInfo
	for _, apt := range existing {
		if excludeID != "" && apt.ID.String() == excludeID {
			continue
		}

		existingStart, err := timeutil.MinutesOfDay(apt.ScheduledTime)
		if err != nil {
			s.logger.Warn("skipping appointment with malformed scheduled time",
				zap.String("appointment_id", apt.ID.String()),
				zap.String("scheduled_time", apt.ScheduledTime))
			continue
		}
		duration := apt.EstimatedDuration
		if duration <= 0 {
			duration = domain.DefaultEstimatedDuration
		}

		bufferedStart := existingStart - cfg.BufferMinutes
		bufferedEnd := existingStart + duration + cfg.BufferMinutes

		if proposedStart < bufferedEnd && proposedEnd > bufferedStart {
			conflicts = append(conflicts, domain.ConflictInfo{
				AppointmentID:     apt.ID.String(),
				ClientName:        apt.ClientName,
				ServiceType:       apt.ServiceType,
				ScheduledTime:     apt.ScheduledTime,
				EstimatedDuration: apt.EstimatedDuration,
			})
		}
	}

	return conflicts, nil
}

// nextOpenDates walks forward day by day and collects the next enabled
// weekdays within the scan window
func (s *AvailabilityService) nextOpenDates(cfg domain.BusinessHoursConfig, from time.Time) []domain.DateOption {
	options := []domain.DateOption{}
	for i := 1; i <= dateScanWindowDays && len(options) < maxDateSuggestions; i++ {
		candidate := from.AddDate(0, 0, i)
		weekday := timeutil.WeekdayName(candidate)
		if cfg.Days[weekday].Enabled {
			options = append(options, domain.DateOption{
				Date:    candidate.Format(timeutil.DateLayout),
				Weekday: weekday,
			})
		}
	}
	return options
}

// minutesInWindow reports whether a minutes-of-day value falls inside
// [window.Start, window.End). The error is swallowed into a false result
// when the window itself is malformed.
func minutesInWindow(minutes int, window domain.HoursWindow) (bool, error) {
	start, err := timeutil.MinutesOfDay(window.Start)
	if err != nil {
		return false, err
	}
	end, err := timeutil.MinutesOfDay(window.End)
	if err != nil {
		return false, err
	}
	return minutes >= start && minutes < end, nil
}
