package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/stats"
)

// Cache is a byte cache with per-key TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// GetDashboard serves the stats endpoint through an optional cache-aside.
// Cache failures degrade to a direct computation.
type GetDashboard struct {
	repo   booking.Repository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewGetDashboard(repo booking.Repository, cache Cache, ttl time.Duration, logger *slog.Logger) *GetDashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetDashboard{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func cacheKey(businessID uuid.UUID) string {
	return "stats:" + businessID.String()
}

func (uc *GetDashboard) Execute(ctx context.Context, businessID uuid.UUID) (*domain.Dashboard, error) {
	biz, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && uc.ttl > 0 {
		raw, ok, err := uc.cache.Get(ctx, cacheKey(biz.ID))
		if err != nil {
			uc.logger.Warn("stats cache read failed", "business_id", biz.ID, "err", err)
		}
		if ok {
			var d domain.Dashboard
			if err := json.Unmarshal(raw, &d); err == nil {
				return &d, nil
			}
		}
	}

	bookings, err := uc.repo.ListBookings(ctx, biz.ID)
	if err != nil {
		return nil, err
	}
	d := domain.Aggregate(bookings, uc.now())

	if uc.cache != nil && uc.ttl > 0 {
		if raw, err := json.Marshal(d); err == nil {
			if err := uc.cache.Set(ctx, cacheKey(biz.ID), raw, uc.ttl); err != nil {
				uc.logger.Warn("stats cache write failed", "business_id", biz.ID, "err", err)
			}
		}
	}

	return &d, nil
}

// Invalidate drops the cached dashboard of a business.
func (uc *GetDashboard) Invalidate(ctx context.Context, businessID uuid.UUID) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, cacheKey(businessID)); err != nil {
		uc.logger.Warn("stats cache invalidation failed", "business_id", businessID, "err", err)
	}
}
