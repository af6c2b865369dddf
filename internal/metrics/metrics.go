package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of the service. A nil *Metrics is valid and
// records nothing, so callers never need to check whether metrics are on.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	BookingsCreated  prometheus.Counter
	BookingConflicts prometheus.Counter
	StatusChanges    *prometheus.CounterVec

	Notifications *prometheus.CounterVec
	QueueDropped  prometheus.Counter
}

func New(service string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by route, method and status code.",
			ConstLabels: labels,
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route and method.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"route", "method"}),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings successfully created.",
			ConstLabels: labels,
		}),
		BookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken.",
			ConstLabels: labels,
		}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_changes_total",
			Help:        "Booking status transitions by target status.",
			ConstLabels: labels,
		}, []string{"status"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification attempts by channel and result.",
			ConstLabels: labels,
		}, []string{"channel", "result"}),
		QueueDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "notify_queue_dropped_total",
			Help:        "Background jobs dropped because the queue was full.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.BookingsCreated,
		m.BookingConflicts,
		m.StatusChanges,
		m.Notifications,
		m.QueueDropped,
	)

	return m
}

func (m *Metrics) ObserveHTTP(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(seconds)
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) BookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) Notification(channel string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.Notifications.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) Dropped() {
	if m == nil {
		return
	}
	m.QueueDropped.Inc()
}
