package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BusinessID uuid.UUID

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ServiceID string

	Date   string
	Time   string
	Notes  string
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	effects Effects
}

func NewCreateBooking(repo domain.Repository, effects Effects) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		effects: effects,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, httperr.ErrValidation("invalid_customer_name", "customerName is required")
	}
	email, ok := validators.NormalizeEmail(in.CustomerEmail)
	if !ok {
		return nil, httperr.ErrValidation("invalid_customer_email", "customerEmail must be a valid email address")
	}
	serviceID, err := uuid.Parse(strings.TrimSpace(in.ServiceID))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_service_id", "serviceId must be a UUID")
	}
	date, minute, err := parseWhen(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	status := domain.InitialStatus()
	if s := strings.TrimSpace(in.Status); s != "" {
		if status, err = domain.ParseStatus(s); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 2. Business + service
	// --------------------------------------------------
	biz, err := uc.repo.GetBusiness(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	service, err := uc.repo.GetService(ctx, biz.ID, serviceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrValidation("service_inactive", "the service is not bookable")
	}

	// --------------------------------------------------
	// 3. Slot grid + early conflict check
	// --------------------------------------------------
	if err := checkSlot(ctx, uc.repo, biz.ID, date, minute, uuid.Nil); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.effects.conflict()
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Customer + booking + counter, atomically
	// --------------------------------------------------
	b := &models.Booking{
		BusinessID:  biz.ID,
		ServiceID:   service.ID,
		Date:        date,
		StartMinute: minute,
		Status:      string(status),
		TotalPrice:  service.Price,
		Notes:       strings.TrimSpace(in.Notes),
	}

	customer, err := uc.repo.CreateBooking(ctx, domain.NewCustomer{
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(in.CustomerPhone),
	}, b)
	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.effects.conflict()
		}
		return nil, err
	}
	b.Customer = customer
	b.Service = service

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	uc.effects.created(ctx, eventFor(biz, b))

	return b, nil
}
