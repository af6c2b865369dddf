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

// UpdateBookingInput is a partial patch; nil fields are left untouched.
// BusinessID is optional and, when set, scopes the lookup.
type UpdateBookingInput struct {
	BusinessID uuid.UUID
	BookingID  uuid.UUID

	Status     *string
	Notes      *string
	TotalPrice *int64
	Date       *string
	Time       *string
}

type UpdateBooking struct {
	repo    domain.Repository
	effects Effects
}

func NewUpdateBooking(repo domain.Repository, effects Effects) *UpdateBooking {
	return &UpdateBooking{
		repo:    repo,
		effects: effects,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if in.BusinessID != uuid.Nil && b.BusinessID != in.BusinessID {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	biz, err := uc.repo.GetBusiness(ctx, b.BusinessID)
	if err != nil {
		return nil, err
	}

	from := b.Status

	// --------------------------------------------------
	// Plain fields
	// --------------------------------------------------
	if in.TotalPrice != nil {
		if *in.TotalPrice < 0 {
			return nil, httperr.ErrValidation("invalid_total_price", "totalPrice must be >= 0")
		}
		b.TotalPrice = *in.TotalPrice
	}
	if in.Notes != nil {
		b.Notes = strings.TrimSpace(*in.Notes)
	}

	// --------------------------------------------------
	// Reschedule
	// --------------------------------------------------
	if in.Date != nil || in.Time != nil {
		if domain.Status(b.Status).IsTerminal() {
			return nil, httperr.BusinessError{
				Kind:    httperr.KindRule,
				Code:    "booking_closed",
				Message: "a " + b.Status + " booking cannot be rescheduled",
			}
		}

		date := b.Date
		if in.Date != nil {
			date = *in.Date
		}
		clock := slot.FormatHHMM(b.StartMinute)
		if in.Time != nil {
			clock = *in.Time
		}

		newDate, minute, err := parseWhen(date, clock)
		if err != nil {
			return nil, err
		}
		if newDate != b.Date || minute != b.StartMinute {
			if err := checkSlot(ctx, uc.repo, biz.ID, newDate, minute, b.ID); err != nil {
				if httperr.IsKind(err, httperr.KindConflict) {
					uc.effects.conflict()
				}
				return nil, err
			}
			b.Date = newDate
			b.StartMinute = minute
		}
	}

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	changed := false
	if in.Status != nil {
		to, err := domain.ParseStatus(strings.TrimSpace(*in.Status))
		if err != nil {
			return nil, err
		}
		if changed, err = domain.Transition(b, to); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateBooking(ctx, b, from); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			uc.effects.conflict()
		}
		return nil, err
	}

	uc.effects.updated(ctx, eventFor(biz, b), from, changed)

	return b, nil
}
