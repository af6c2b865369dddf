package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/infra/cache"
	"github.com/BruksfildServices01/booking-engine/internal/infra/memory"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

var today = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T) (*memory.Store, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	biz := &models.Business{Name: "Acme", Slug: "acme"}
	require.NoError(t, store.CreateBusiness(ctx, biz))

	for i, b := range []struct {
		status string
		price  int64
	}{
		{"confirmed", 4500},
		{"pending", 8500},
		{"cancelled", 2000},
	} {
		_, err := store.CreateBooking(ctx, booking.NewCustomer{Name: "C", Email: uuid.NewString() + "@x.io"}, &models.Booking{
			BusinessID:  biz.ID,
			ServiceID:   uuid.New(),
			Date:        "2026-10-16",
			StartMinute: 540 + 30*i,
			Status:      b.status,
			TotalPrice:  b.price,
		})
		require.NoError(t, err)
	}
	return store, biz.ID
}

func newUseCase(store *memory.Store, c Cache) *GetDashboard {
	uc := NewGetDashboard(store, c, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	uc.now = func() time.Time { return today }
	return uc
}

func TestGetDashboard(t *testing.T) {
	store, biz := seed(t)

	d, err := newUseCase(store, nil).Execute(context.Background(), biz)

	require.NoError(t, err)
	assert.Equal(t, int64(4500), d.TotalRevenue)
	assert.Equal(t, 3, d.TodayBookings)
	assert.Equal(t, 1, d.PendingBookings)
	assert.Len(t, d.RecentBookings, 3)
	assert.Equal(t, int64(4500), d.WeeklyRevenue[6].Revenue)
}

func TestGetDashboard_CacheAside(t *testing.T) {
	store, biz := seed(t)
	ctx := context.Background()
	c := cache.NewMemory()
	uc := newUseCase(store, c)

	first, err := uc.Execute(ctx, biz)
	require.NoError(t, err)

	_, ok, _ := c.Get(ctx, cacheKey(biz))
	require.True(t, ok)

	// a write that bypasses invalidation is not visible until the key goes
	_, err = store.CreateBooking(ctx, booking.NewCustomer{Email: "late@x.io"}, &models.Booking{
		BusinessID: biz, ServiceID: uuid.New(), Date: "2026-10-16", StartMinute: 720, Status: "confirmed", TotalPrice: 1000,
	})
	require.NoError(t, err)

	cached, err := uc.Execute(ctx, biz)
	require.NoError(t, err)
	assert.Equal(t, first.TotalRevenue, cached.TotalRevenue)

	uc.Invalidate(ctx, biz)
	fresh, err := uc.Execute(ctx, biz)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), fresh.TotalRevenue)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("redis down")
}
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("redis down")
}
func (brokenCache) Delete(context.Context, ...string) error { return errors.New("redis down") }

func TestGetDashboard_CacheErrorsDegrade(t *testing.T) {
	store, biz := seed(t)
	uc := newUseCase(store, brokenCache{})

	d, err := uc.Execute(context.Background(), biz)

	require.NoError(t, err)
	assert.Equal(t, int64(4500), d.TotalRevenue)
	assert.NotPanics(t, func() { uc.Invalidate(context.Background(), biz) })
}

func TestGetDashboard_UnknownBusiness(t *testing.T) {
	store, _ := seed(t)

	_, err := newUseCase(store, nil).Execute(context.Background(), uuid.New())

	assert.Error(t, err)
}

func TestGetDashboard_TodayIgnoresBusinessTimezone(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	// already 2026-10-17 in Auckland when the server clock reads 2026-10-16
	biz := &models.Business{Name: "Kiwi", Slug: "kiwi", Timezone: "Pacific/Auckland"}
	require.NoError(t, store.CreateBusiness(ctx, biz))
	_, err := store.CreateBooking(ctx, booking.NewCustomer{Email: "a@x.io"}, &models.Booking{
		BusinessID: biz.ID, ServiceID: uuid.New(), Date: "2026-10-16", StartMinute: 600, Status: "pending",
	})
	require.NoError(t, err)

	uc := newUseCase(store, nil)
	uc.now = func() time.Time { return time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC) }

	d, err := uc.Execute(ctx, biz.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, d.TodayBookings)
	assert.Equal(t, "2026-10-16", d.WeeklyRevenue[6].Date)
}
