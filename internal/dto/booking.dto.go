package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/domain/slot"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// BookingDTO is the wire shape of a booking; Time is the 12-hour display label.
type BookingDTO struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"businessId"`
	CustomerID uuid.UUID `json:"customerId"`
	ServiceID  uuid.UUID `json:"serviceId"`

	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	ServiceName   string `json:"serviceName,omitempty"`

	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	TotalPrice int64  `json:"totalPrice"`
	Notes      string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromBooking(b models.Booking) BookingDTO {
	out := BookingDTO{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		CustomerID: b.CustomerID,
		ServiceID:  b.ServiceID,
		Date:       b.Date,
		Time:       slot.Label(b.StartMinute),
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if b.Customer != nil {
		out.CustomerName = b.Customer.Name
		out.CustomerEmail = b.Customer.Email
	}
	if b.Service != nil {
		out.ServiceName = b.Service.Name
	}
	return out
}

func FromBookings(bs []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}
