package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/slot"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lists the bookings of a business, optionally for a single date.
func (uc *ListBookings) Execute(
	ctx context.Context,
	businessID uuid.UUID,
	date string,
) ([]models.Booking, error) {

	biz, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if date = strings.TrimSpace(date); date == "" {
		return uc.repo.ListBookings(ctx, biz.ID)
	}

	day, err := slot.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	return uc.repo.ListBookingsForDate(ctx, biz.ID, day.Format(slot.DateLayout))
}

// Get returns one booking; a non-nil businessID scopes the lookup.
func (uc *ListBookings) Get(
	ctx context.Context,
	businessID uuid.UUID,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if businessID != uuid.Nil && b.BusinessID != businessID {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	return b, nil
}
