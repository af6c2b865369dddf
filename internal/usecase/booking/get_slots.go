package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/slot"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

type GetSlotsInput struct {
	BusinessID uuid.UUID
	Date       string
	ServiceID  string
}

type SlotsOutput struct {
	Date    string          `json:"date"`
	Slots   []slot.TimeSlot `json:"slots"`
	Message string          `json:"message,omitempty"`
}

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

// Execute lists the slots of one date. A serviceId, when given, must belong
// to the business; the grid itself does not depend on the service.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in GetSlotsInput,
) (*SlotsOutput, error) {

	day, err := slot.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	date := day.Format(slot.DateLayout)

	biz, err := uc.repo.GetBusiness(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	if s := strings.TrimSpace(in.ServiceID); s != "" {
		serviceID, err := uuid.Parse(s)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_service_id", "serviceId must be a UUID")
		}
		if _, err := uc.repo.GetService(ctx, biz.ID, serviceID); err != nil {
			return nil, err
		}
	}

	week, err := uc.repo.ListAvailability(ctx, biz.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := uc.repo.ListBookingsForDate(ctx, biz.ID, date)
	if err != nil {
		return nil, err
	}

	res := slot.Compute(day, week, bookings)

	out := &SlotsOutput{Date: date, Slots: res.Slots}
	if res.Closed {
		out.Message = "Closed on " + day.Weekday().String()
	}
	return out, nil
}
