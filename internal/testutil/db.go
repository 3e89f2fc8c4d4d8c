package testutil

import (
	"testing"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database with the scheduling
// schema migrated. Each call returns an isolated database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	err = db.AutoMigrate(
		&domain.Appointment{},
		&domain.IDSequence{},
		&domain.BusinessHoursEntry{},
		&domain.ScheduleSettings{},
	)
	require.NoError(t, err, "failed to migrate test schema")

	return db
}
