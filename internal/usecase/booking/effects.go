package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/metrics"
	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
)

// Notifier receives booking events after they are committed.
type Notifier interface {
	BookingCreated(ev notify.BookingEvent)
	StatusChanged(ev notify.BookingEvent)
}

type Auditor interface {
	Record(ev audit.Event)
}

// StatsInvalidator drops cached dashboard data of a business.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, businessID uuid.UUID)
}

// Effects are the post-commit side effects of booking writes. None of them
// can fail the write; nil members are skipped.
type Effects struct {
	Notifier Notifier
	Audit    Auditor
	Stats    StatsInvalidator
	Metrics  *metrics.Metrics
}

func (e Effects) created(ctx context.Context, ev notify.BookingEvent) {
	e.Metrics.BookingCreated()
	if e.Stats != nil {
		e.Stats.Invalidate(ctx, ev.Business.ID)
	}
	if e.Audit != nil {
		id := ev.Booking.ID
		e.Audit.Record(audit.Event{
			BusinessID: ev.Business.ID,
			Action:     "booking_created",
			Entity:     "booking",
			EntityID:   &id,
			Metadata: map[string]any{
				"date":   ev.Booking.Date,
				"status": ev.Booking.Status,
			},
		})
	}
	if e.Notifier != nil {
		e.Notifier.BookingCreated(ev)
	}
}

func (e Effects) updated(ctx context.Context, ev notify.BookingEvent, from string, statusChanged bool) {
	if e.Stats != nil {
		e.Stats.Invalidate(ctx, ev.Business.ID)
	}
	if !statusChanged {
		return
	}

	e.Metrics.StatusChanged(ev.Booking.Status)
	if e.Audit != nil {
		id := ev.Booking.ID
		e.Audit.Record(audit.Event{
			BusinessID: ev.Business.ID,
			Action:     "booking_status_changed",
			Entity:     "booking",
			EntityID:   &id,
			Metadata: map[string]string{
				"from": from,
				"to":   ev.Booking.Status,
			},
		})
	}
	if e.Notifier != nil && domain.NotifiesOn(domain.Status(ev.Booking.Status)) {
		e.Notifier.StatusChanged(ev)
	}
}

func (e Effects) conflict() {
	e.Metrics.BookingConflict()
}

func eventFor(biz *models.Business, b *models.Booking) notify.BookingEvent {
	ev := notify.BookingEvent{
		Business: *biz,
		Booking:  *b,
	}
	ev.Booking.Business, ev.Booking.Customer, ev.Booking.Service = nil, nil, nil
	if b.Customer != nil {
		ev.Customer = *b.Customer
	}
	if b.Service != nil {
		ev.ServiceName = b.Service.Name
	}
	return ev
}
