package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/config"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

const slowQueryThreshold = 200 * time.Millisecond

// NewDB connects to postgres and tunes the pool.
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := Open(postgres.Open(cfg.DBUrl), log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Open wraps gorm.Open with the slog adapter; tests pass a sqlite dialector.
func Open(dialector gorm.Dialector, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.NewGormAdapter(log, slowQueryThreshold),
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		for _, stmt := range []string{
			`CREATE EXTENSION IF NOT EXISTS btree_gist`,
			appointmentOverlapConstraint,
		} {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
	}

	return db.Exec(`
        UPDATE studios
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTimezone).Error
}

// A staff member cannot hold two pending/confirmed appointments that overlap.
const appointmentOverlapConstraint = `
DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'appointments_staff_no_overlap') THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_staff_no_overlap
            EXCLUDE USING gist (
                staff_member_id WITH =,
                tstzrange(start_time, end_time) WITH &&
            )
            WHERE (staff_member_id IS NOT NULL AND status IN ('pending', 'confirmed'));
    END IF;
END
$$`

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
