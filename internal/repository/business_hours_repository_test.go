package repository

import (
	"context"
	"testing"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigReturnsDefaultsOnEmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBusinessHoursRepository(db)

	cfg, err := repo.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.HoursWindow{Start: "07:00", End: "17:00", Enabled: true}, cfg.Days["monday"])
	assert.Equal(t, domain.HoursWindow{Start: "08:00", End: "15:00", Enabled: true}, cfg.Days["saturday"])
	assert.False(t, cfg.Days["sunday"].Enabled)
	assert.Equal(t, domain.HoursWindow{Start: "12:00", End: "13:00", Enabled: true}, cfg.LunchBreak)
	assert.Equal(t, 30, cfg.BufferMinutes)
	assert.Equal(t, "Pacific/Honolulu", cfg.Timezone)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBusinessHoursRepository(db)
	ctx := context.Background()

	cfg := domain.DefaultBusinessHours()
	cfg.Days["wednesday"] = domain.HoursWindow{Start: "10:00", End: "14:00", Enabled: true}
	cfg.Days["saturday"] = domain.HoursWindow{Start: "00:00", End: "00:00", Enabled: false}
	cfg.LunchBreak = domain.HoursWindow{Start: "11:30", End: "12:30", Enabled: true}
	cfg.BufferMinutes = 45
	cfg.Timezone = "Pacific/Honolulu"

	require.NoError(t, repo.SaveConfig(ctx, cfg))

	got, err := repo.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.HoursWindow{Start: "10:00", End: "14:00", Enabled: true}, got.Days["wednesday"])
	assert.False(t, got.Days["saturday"].Enabled)
	assert.Equal(t, "11:30", got.LunchBreak.Start)
	assert.Equal(t, 45, got.BufferMinutes)

	// Untouched weekdays keep their stored windows
	assert.Equal(t, domain.HoursWindow{Start: "07:00", End: "17:00", Enabled: true}, got.Days["monday"])
}
