package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestMigrateRaw(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_active_slot`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE businesses\s+SET timezone = 'UTC'`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, migrateRaw(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateRaw_BackfillErrorIsReturned(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("permission denied for table businesses")

	mock.ExpectExec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_active_slot`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE businesses`).
		WillReturnError(boom)

	err := migrateRaw(db)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "backfill business timezone")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateRaw_IndexErrorStopsBeforeBackfill(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`CREATE UNIQUE INDEX`).
		WillReturnError(errors.New("could not create unique index"))

	err := migrateRaw(db)

	assert.ErrorContains(t, err, "create active slot index")
	assert.NoError(t, mock.ExpectationsWereMet())
}
