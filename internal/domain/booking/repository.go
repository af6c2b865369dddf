package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// NewCustomer identifies the person booking; (BusinessID, Email) resolves
// to an existing customer when one exists.
type NewCustomer struct {
	Name  string
	Email string
	Phone string
}

type Repository interface {
	// -------- Business / Service --------
	GetBusiness(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Business, error)

	GetService(
		ctx context.Context,
		businessID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.Service, error)

	// -------- Availability --------
	ListAvailability(
		ctx context.Context,
		businessID uuid.UUID,
	) ([]models.Availability, error)

	// -------- Booking (create) --------

	// CreateBooking resolves or creates the customer, inserts the booking and
	// increments the customer's booking counter as one atomic unit. A booking
	// that collides with a non-cancelled booking on the same slot fails with a
	// conflict error and leaves nothing behind.
	CreateBooking(
		ctx context.Context,
		customer NewCustomer,
		b *models.Booking,
	) (*models.Customer, error)

	// -------- Booking (read / state change) --------
	GetBooking(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	// UpdateBooking writes b only while the stored status still equals
	// fromStatus; otherwise it fails with a booking_modified conflict.
	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
		fromStatus string,
	) error

	ListBookingsForDate(
		ctx context.Context,
		businessID uuid.UUID,
		date string,
	) ([]models.Booking, error)

	// ListBookings returns every booking of the business with Customer and
	// Service preloaded, newest first.
	ListBookings(
		ctx context.Context,
		businessID uuid.UUID,
	) ([]models.Booking, error)

	GetCustomer(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Customer, error)
}
