package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by the dashboard queries
func AddIndexes(db *gorm.DB, log logrus.FieldLogger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Tenant-scoped application listings and statistics
		{"applications", "idx_applications_company_status", "company_id, status"},
		{"applications", "idx_applications_user_status", "user_id, status"},
		{"applications", "idx_applications_job_created", "job_id, created_at"},

		// Company job board
		{"jobs", "idx_jobs_company_active", "company_id, active"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(logrus.Fields{
			"index":   idx.name,
			"table":   idx.table,
			"columns": idx.columns,
		}).Info("Created index")
	}

	return nil
}

// MigrateDatabase runs the schema migration followed by the extra indexes
func MigrateDatabase(db *gorm.DB, log logrus.FieldLogger) error {
	if err := Migrate(db, log); err != nil {
		return err
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
