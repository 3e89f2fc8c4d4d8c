package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/spankks/scheduling-api/internal/domain"
	"gorm.io/gorm"
)

// BusinessHoursRepository reads and writes the business-hours
// configuration. The scheduler only reads it; writes come from the admin
// settings endpoint.
type BusinessHoursRepository struct {
	db *gorm.DB
}

// NewBusinessHoursRepository creates a new BusinessHoursRepository
func NewBusinessHoursRepository(db *gorm.DB) *BusinessHoursRepository {
	return &BusinessHoursRepository{db: db}
}

// GetConfig assembles the full configuration from the weekday rows, the
// lunch-break row and the settings row. Missing pieces fall back to the
// stock defaults so the scheduler always has a complete configuration to
// validate against.
func (r *BusinessHoursRepository) GetConfig(ctx context.Context) (domain.BusinessHoursConfig, error) {
	cfg := domain.DefaultBusinessHours()

	var entries []domain.BusinessHoursEntry
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return cfg, fmt.Errorf("failed to read business hours: %w", err)
	}
	for _, e := range entries {
		window := domain.HoursWindow{Start: e.StartTime, End: e.EndTime, Enabled: e.Enabled}
		if e.Weekday == domain.LunchBreakKey {
			cfg.LunchBreak = window
		} else {
			cfg.Days[e.Weekday] = window
		}
	}

	var settings domain.ScheduleSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == nil {
		cfg.BufferMinutes = settings.BufferMinutes
		cfg.Timezone = settings.Timezone
	} else if err != gorm.ErrRecordNotFound {
		return cfg, fmt.Errorf("failed to read schedule settings: %w", err)
	}

	return cfg, nil
}

// SaveConfig replaces the stored configuration with the given one
func (r *BusinessHoursRepository) SaveConfig(ctx context.Context, cfg domain.BusinessHoursConfig) error {
	now := time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for weekday, window := range cfg.Days {
			entry := domain.BusinessHoursEntry{
				Weekday:   weekday,
				StartTime: window.Start,
				EndTime:   window.End,
				Enabled:   window.Enabled,
				UpdatedAt: now,
			}
			if err := tx.Save(&entry).Error; err != nil {
				return fmt.Errorf("failed to save hours for %s: %w", weekday, err)
			}
		}

		lunch := domain.BusinessHoursEntry{
			Weekday:   domain.LunchBreakKey,
			StartTime: cfg.LunchBreak.Start,
			EndTime:   cfg.LunchBreak.End,
			Enabled:   cfg.LunchBreak.Enabled,
			UpdatedAt: now,
		}
		if err := tx.Save(&lunch).Error; err != nil {
			return fmt.Errorf("failed to save lunch break: %w", err)
		}

		settings := domain.ScheduleSettings{
			ID:            1,
			BufferMinutes: cfg.BufferMinutes,
			Timezone:      cfg.Timezone,
			UpdatedAt:     now,
		}
		if err := tx.Save(&settings).Error; err != nil {
			return fmt.Errorf("failed to save schedule settings: %w", err)
		}

		return nil
	})
}
