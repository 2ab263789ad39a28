package database

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/job-board-api/internal/config"
	"github.com/yukikurage/job-board-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestMigrateDatabase_CreatesSchemaAndIndexes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	log := quietLogger()
	require.NoError(t, MigrateDatabase(db, log))

	migrator := db.Migrator()
	require.True(t, migrator.HasTable(&models.Application{}))
	require.True(t, migrator.HasIndex(&models.Application{}, "idx_applications_user_job"))
	require.True(t, migrator.HasIndex("applications", "idx_applications_company_status"))
	require.True(t, migrator.HasIndex("jobs", "idx_jobs_company_active"))

	// Running again is a no-op
	require.NoError(t, MigrateDatabase(db, log))
}

func TestDialectorFor_UnsupportedDriver(t *testing.T) {
	_, err := dialectorFor(&config.Config{DBDriver: "oracle"})
	require.Error(t, err)
}

func TestDialectorFor_KnownDrivers(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		dialector, err := dialectorFor(&config.Config{DBDriver: driver, DBName: "test"})
		require.NoError(t, err, driver)
		require.Equal(t, driver, dialector.Name())
	}
}
