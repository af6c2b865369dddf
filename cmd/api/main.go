package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	"github.com/BruksfildServices01/booking-engine/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-engine/internal/db"
	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/handlers"
	"github.com/BruksfildServices01/booking-engine/internal/infra/cache"
	"github.com/BruksfildServices01/booking-engine/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/booking-engine/internal/infra/repository"
	"github.com/BruksfildServices01/booking-engine/internal/logging"
	"github.com/BruksfildServices01/booking-engine/internal/metrics"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
	"github.com/BruksfildServices01/booking-engine/internal/routes"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{
		StatsTTL:           cfg.StatsCacheTTL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
		HealthChecks:       map[string]handlers.Pinger{},
	}

	// -------- Metrics --------
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Metrics = metrics.New(cfg.ServiceName, reg)
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	// -------- Storage --------
	var (
		bookings booking.Repository
		cat      catalog.Repository
		auditW   audit.Writer
	)

	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		bookings, cat = store, store
		auditW = audit.NewSlogWriter(logger)
		logger.Info("using in-memory storage")
	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		bookings = infraRepo.NewBookingGormRepository(db)
		cat = infraRepo.NewCatalogGormRepository(db)
		auditW = audit.New(db)
		deps.HealthChecks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	deps.Bookings = bookings
	deps.Catalog = cat

	// -------- Cache / rate limit --------
	if cfg.RedisURL != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		c := cache.NewRedis(rdb, cfg.ServiceName)
		deps.Cache, deps.Limiter = c, c
		deps.HealthChecks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	} else {
		c := cache.NewMemory()
		deps.Cache, deps.Limiter = c, c
	}

	// -------- Notifications --------
	dispatcher := notify.NewDispatcher(
		cfg.NotifyWorkers,
		cfg.NotifyQueueSize,
		10*time.Second,
		logger,
		deps.Metrics,
	)

	var push notify.PushSender = notify.NoopPushSender{}
	switch cfg.PushDriver {
	case "expo":
		push = notify.NewExpoSender(cfg.ExpoPushURL, cfg.ExpoAccessToken, cat)
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when PUSH_DRIVER=kafka")
		}
		kp := notify.NewKafkaPushSender(cfg.KafkaBrokers, cfg.KafkaPushTopic)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Warn("kafka writer close failed", "err", err)
			}
		}()
		push = kp
	}

	var email notify.EmailSender = notify.NoopEmailSender{}
	if cfg.SMTPHost != "" && cfg.SMTPFrom != "" {
		email = notify.NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, logger)
	}

	deps.Notifier = notify.NewBookingNotifier(dispatcher, push, email, logger, deps.Metrics)
	deps.Audit = audit.NewRecorder(auditW, dispatcher)

	logger.Info("notifications configured",
		"push_driver", cfg.PushDriver,
		"smtp", cfg.SMTPHost != "",
	)

	// -------- HTTP --------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", "err", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("notification queue not drained", "err", err)
	}
	return nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("database close failed", "err", err)
	}
}
