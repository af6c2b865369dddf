package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/slot"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// parseWhen validates the calendar date and the start time of a booking.
func parseWhen(date, clock string) (string, int, error) {
	d, err := slot.ParseDate(date)
	if err != nil {
		return "", 0, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	minute, err := slot.ParseTime(clock)
	if err != nil {
		return "", 0, httperr.ErrValidation("invalid_time", `time must look like "2:00 PM" or "14:00"`)
	}
	return d.Format(slot.DateLayout), minute, nil
}

// checkSlot verifies that minute is a generated slot of an open day and is
// not held by another booking. self is ignored when rescheduling.
// The storage unique index stays the final guard against races.
func checkSlot(
	ctx context.Context,
	repo domain.Repository,
	businessID uuid.UUID,
	date string,
	minute int,
	self uuid.UUID,
) error {

	day, err := slot.ParseDate(date)
	if err != nil {
		return httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}

	week, err := repo.ListAvailability(ctx, businessID)
	if err != nil {
		return err
	}
	existing, err := repo.ListBookingsForDate(ctx, businessID, date)
	if err != nil {
		return err
	}

	others := make([]models.Booking, 0, len(existing))
	for _, b := range existing {
		if b.ID != self {
			others = append(others, b)
		}
	}

	res := slot.Compute(day, week, others)
	if res.Closed {
		return httperr.ErrValidation("business_closed", "the business is closed on "+date)
	}
	s, ok := res.Contains(minute)
	if !ok {
		return httperr.ErrValidation("outside_working_hours", slot.Label(minute)+" is not a bookable slot")
	}
	if !s.Available {
		return httperr.ErrConflict("slot_taken")
	}
	return nil
}
