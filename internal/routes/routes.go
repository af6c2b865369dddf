package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/handlers"
	"github.com/BruksfildServices01/booking-engine/internal/metrics"
	"github.com/BruksfildServices01/booking-engine/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/booking-engine/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/booking-engine/internal/usecase/booking"
	ucStats "github.com/BruksfildServices01/booking-engine/internal/usecase/stats"
)

// Deps are the singletons the router is built from. Optional members may be
// nil: no notifier, no audit, no cache, no limiter, no /metrics.
type Deps struct {
	Bookings booking.Repository
	Catalog  catalog.Repository

	Notifier ucBooking.Notifier
	Audit    ucBooking.Auditor

	Cache    ucStats.Cache
	StatsTTL time.Duration

	Limiter            middleware.Counter
	RateLimitPerMinute int

	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	HealthChecks   map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(d.Logger, d.Metrics),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// USE CASES
	// ======================================================
	dashboardUC := ucStats.NewGetDashboard(d.Bookings, d.Cache, d.StatsTTL, d.Logger)

	effects := ucBooking.Effects{
		Notifier: d.Notifier,
		Audit:    d.Audit,
		Stats:    dashboardUC,
		Metrics:  d.Metrics,
	}

	createBookingUC := ucBooking.NewCreateBooking(d.Bookings, effects)
	updateBookingUC := ucBooking.NewUpdateBooking(d.Bookings, effects)
	slotsUC := ucBooking.NewGetAvailableSlots(d.Bookings)
	listBookingsUC := ucBooking.NewListBookings(d.Bookings)
	availabilityUC := ucAvailability.NewManage(d.Catalog)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateBookingUC,
		slotsUC,
		listBookingsUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	statsHandler := handlers.NewStatsHandler(dashboardUC)

	businessHandler := handlers.NewBusinessHandler(d.Catalog)
	serviceHandler := handlers.NewServiceHandler(d.Catalog)
	customerHandler := handlers.NewCustomerHandler(d.Catalog)
	deviceTokenHandler := handlers.NewDeviceTokenHandler(d.Catalog)
	healthHandler := handlers.NewHealthHandler(d.HealthChecks)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Get)
	if d.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(d.MetricsHandler))
	}

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/public/:slug", businessHandler.Public)

	bookingLimit := middleware.RateLimit(
		d.Limiter,
		d.RateLimitPerMinute,
		time.Minute,
		"ratelimit:bookings",
		d.Logger,
	)

	// ======================================================
	// BUSINESSES
	// ======================================================
	r.POST("/businesses", businessHandler.Create)

	biz := r.Group("/businesses/:businessId")
	{
		biz.GET("", businessHandler.Get)
		biz.PATCH("", businessHandler.Update)

		biz.GET("/availability", availabilityHandler.Get)
		biz.PUT("/availability", availabilityHandler.Replace)

		biz.GET("/slots/:date", bookingHandler.Slots)

		biz.GET("/bookings", bookingHandler.List)
		biz.POST("/bookings", bookingLimit, bookingHandler.Create)

		biz.GET("/services", serviceHandler.List)
		biz.POST("/services", serviceHandler.Create)
		biz.PATCH("/services/:serviceId", serviceHandler.Update)
		biz.DELETE("/services/:serviceId", serviceHandler.Delete)

		biz.GET("/customers", customerHandler.List)
		biz.POST("/device-tokens", deviceTokenHandler.Register)

		biz.GET("/stats", statsHandler.Get)
	}

	// ======================================================
	// BOOKINGS
	// ======================================================
	r.GET("/bookings/:id", bookingHandler.Get)
	r.PATCH("/bookings/:id", bookingHandler.Update)
}
