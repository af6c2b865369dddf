package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/booking-engine/internal/config"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// activeSlotIndex makes the storage the final arbiter of double booking:
// one non-cancelled booking per (business, date, start minute).
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_active_slot
	ON bookings (business_id, date, start_minute)
	WHERE status <> 'cancelled'
`

const timezoneBackfill = `
	UPDATE businesses
	SET timezone = 'UTC'
	WHERE timezone IS NULL OR timezone = ''
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Business{},
		&models.Service{},
		&models.Customer{},
		&models.Availability{},
		&models.Booking{},
		&models.DeviceToken{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return migrateRaw(db)
}

// migrateRaw runs the statements AutoMigrate cannot express.
func migrateRaw(db *gorm.DB) error {
	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}

	if err := db.Exec(timezoneBackfill).Error; err != nil {
		return fmt.Errorf("backfill business timezone: %w", err)
	}

	return nil
}
