package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

const pgUniqueViolation = "23505"

var errBookingModified = httperr.BusinessError{
	Kind:    httperr.KindConflict,
	Code:    "booking_modified",
	Message: "the booking was changed by another request, reload and retry",
}

// isUniqueViolation covers both the raw pgconn error and gorm's translated one.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// mapErr turns storage errors into business errors; anything unexpected is
// wrapped with op so the cause stays in the logs.
func mapErr(op string, err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != "" {
		return httperr.ErrNotFound(notFound)
	}
	if httperr.IsKind(err, httperr.KindConflict) ||
		httperr.IsKind(err, httperr.KindNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
