package infra

import (
	"fmt"

	"github.com/parmenasoares/track-and-work/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema. Exposed separately so seed commands can
// reuse it against a fresh database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.Machine{},
		&model.Client{},
		&model.Location{},
		&model.Service{},
		&model.Activity{},
		&model.UserCompliance{},
		&model.UserVerification{},
		&model.UserDocumentFile{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one open activity per operator. "Open" means status is
		// still PENDING_VALIDATION and the end fields were never written.
		// The service layer checks this too; the index closes the race
		// between two concurrent starts.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_activities_open_per_operator') THEN
		    CREATE UNIQUE INDEX uni_activities_open_per_operator
		        ON activities (operator_id)
		        WHERE status = 'PENDING_VALIDATION' AND end_time IS NULL;
		  END IF;
		END $$`,
		// Review queue query: status filter ordered by start_time.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_activities_status_start_time') THEN
		    CREATE INDEX idx_activities_status_start_time
		        ON activities (status, start_time DESC);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
