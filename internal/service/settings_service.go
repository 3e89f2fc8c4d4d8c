package service

import (
	"context"
	"fmt"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/repository"
	"github.com/spankks/scheduling-api/internal/timeutil"
	"go.uber.org/zap"
)

// SettingsService exposes the business-hours configuration to the admin
// surface. The scheduler itself only ever reads this configuration.
type SettingsService struct {
	hoursRepo *repository.BusinessHoursRepository
	logger    *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(hoursRepo *repository.BusinessHoursRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{hoursRepo: hoursRepo, logger: logger}
}

// GetBusinessHours returns the current configuration, defaults included
func (s *SettingsService) GetBusinessHours(ctx context.Context) (domain.BusinessHoursConfig, error) {
	return s.hoursRepo.GetConfig(ctx)
}

// UpdateBusinessHours validates and persists a replacement configuration
func (s *SettingsService) UpdateBusinessHours(ctx context.Context, req *domain.UpdateBusinessHoursRequest) (domain.BusinessHoursConfig, error) {
	cfg := domain.BusinessHoursConfig{
		Days:          make(map[string]domain.HoursWindow, len(domain.Weekdays)),
		LunchBreak:    req.LunchBreak,
		BufferMinutes: req.BufferMinutes,
		Timezone:      req.Timezone,
	}
	if cfg.Timezone == "" {
		cfg.Timezone = domain.DefaultBusinessHours().Timezone
	}

	for _, weekday := range domain.Weekdays {
		window, ok := req.Days[weekday]
		if !ok {
			return domain.BusinessHoursConfig{}, fmt.Errorf("%w: missing hours for %s", ErrInvalidInput, weekday)
		}
		if window.Enabled {
			if err := validateWindow(weekday, window); err != nil {
				return domain.BusinessHoursConfig{}, err
			}
		}
		cfg.Days[weekday] = window
	}
	for weekday := range req.Days {
		if _, known := cfg.Days[weekday]; !known {
			return domain.BusinessHoursConfig{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, weekday)
		}
	}

	if cfg.LunchBreak.Enabled {
		if err := validateWindow("lunch break", cfg.LunchBreak); err != nil {
			return domain.BusinessHoursConfig{}, err
		}
	}

	if err := s.hoursRepo.SaveConfig(ctx, cfg); err != nil {
		return domain.BusinessHoursConfig{}, fmt.Errorf("failed to save business hours: %w", err)
	}

	s.logger.Info("updated business hours",
		zap.Int("buffer_minutes", cfg.BufferMinutes),
		zap.String("timezone", cfg.Timezone))

	return s.hoursRepo.GetConfig(ctx)
}

func validateWindow(name string, window domain.HoursWindow) error {
	start, err := timeutil.MinutesOfDay(window.Start)
	if err != nil {
		return fmt.Errorf("%w: %s start %q", ErrInvalidInput, name, window.Start)
	}
	end, err := timeutil.MinutesOfDay(window.End)
	if err != nil {
		return fmt.Errorf("%w: %s end %q", ErrInvalidInput, name, window.End)
	}
	if start >= end {
		return fmt.Errorf("%w: %s start must be before end", ErrInvalidInput, name)
	}
	return nil
}
