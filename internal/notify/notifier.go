package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/slot"
	"github.com/BruksfildServices01/booking-engine/internal/metrics"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// BookingEvent carries everything the messages need, copied by value so a
// queued job never sees later mutations.
type BookingEvent struct {
	Business    models.Business
	Booking     models.Booking
	Customer    models.Customer
	ServiceName string
}

// BookingNotifier fans booking events out to the customer (email) and the
// business owner (push). Everything runs on the dispatcher after the
// triggering request has returned.
type BookingNotifier struct {
	dispatcher *Dispatcher
	push       PushSender
	email      EmailSender
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewBookingNotifier(
	d *Dispatcher,
	push PushSender,
	email EmailSender,
	logger *slog.Logger,
	m *metrics.Metrics,
) *BookingNotifier {
	if push == nil {
		push = NoopPushSender{}
	}
	if email == nil {
		email = NoopEmailSender{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingNotifier{
		dispatcher: d,
		push:       push,
		email:      email,
		logger:     logger,
		metrics:    m,
	}
}

func (n *BookingNotifier) BookingCreated(ev BookingEvent) {
	label := slot.Label(ev.Booking.StartMinute)

	n.sendEmail("booking_created_email", ev)
	n.sendPush("booking_created_push", ev,
		"New booking",
		fmt.Sprintf("%s booked %s on %s at %s", ev.Customer.Name, ev.ServiceName, ev.Booking.Date, label),
	)
}

// StatusChanged notifies only for statuses the customer cares about.
func (n *BookingNotifier) StatusChanged(ev BookingEvent) {
	st := booking.Status(ev.Booking.Status)
	if !booking.NotifiesOn(st) {
		return
	}

	label := slot.Label(ev.Booking.StartMinute)
	title := "Booking confirmed"
	if st == booking.StatusCancelled {
		title = "Booking cancelled"
	}

	n.sendEmail("booking_status_email", ev)
	n.sendPush("booking_status_push", ev,
		title,
		fmt.Sprintf("%s - %s on %s at %s", ev.Customer.Name, ev.ServiceName, ev.Booking.Date, label),
	)
}

func (n *BookingNotifier) sendEmail(name string, ev BookingEvent) {
	if ev.Customer.Email == "" {
		return
	}
	msg := BookingEmail{
		To:           ev.Customer.Email,
		CustomerName: ev.Customer.Name,
		BusinessName: ev.Business.Name,
		ServiceName:  ev.ServiceName,
		Date:         ev.Booking.Date,
		Time:         slot.Label(ev.Booking.StartMinute),
		Status:       ev.Booking.Status,
	}

	n.dispatcher.Dispatch(Job{
		Name: name,
		Run: func(ctx context.Context) error {
			ok := n.email.Send(ctx, msg)
			n.metrics.Notification("email", ok)
			if !ok {
				return fmt.Errorf("email to %s not delivered", msg.To)
			}
			return nil
		},
	})
}

func (n *BookingNotifier) sendPush(name string, ev BookingEvent, title, body string) {
	if !ev.Business.NotificationsEnabled {
		return
	}
	businessID := ev.Business.ID
	data := map[string]string{
		"bookingId": ev.Booking.ID.String(),
		"status":    ev.Booking.Status,
	}

	n.dispatcher.Dispatch(Job{
		Name: name,
		Run: func(ctx context.Context) error {
			sent, errs := n.push.Send(ctx, businessID, title, body, data)
			for _, err := range errs {
				n.logger.Warn("push delivery failed", "business_id", businessID, "err", err)
			}
			n.metrics.Notification("push", len(errs) == 0)
			n.logger.Debug("push sent", "business_id", businessID, "devices", sent)
			return nil
		},
	})
}
