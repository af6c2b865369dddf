package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

func newBooking(businessID uuid.UUID, minute int, status string) *models.Booking {
	return &models.Booking{
		BusinessID:  businessID,
		ServiceID:   uuid.New(),
		Date:        "2026-10-19",
		StartMinute: minute,
		Status:      status,
		TotalPrice:  4500,
	}
}

func TestCreateBooking_ReusesCustomerByEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	biz := uuid.New()

	c1, err := s.CreateBooking(ctx, booking.NewCustomer{Name: "Ana", Email: "Ana@Example.com"}, newBooking(biz, 600, "pending"))
	require.NoError(t, err)
	c2, err := s.CreateBooking(ctx, booking.NewCustomer{Name: "Ana B", Email: " ana@example.com "}, newBooking(biz, 630, "pending"))
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)
	assert.Equal(t, 2, c2.TotalBookings)
	assert.Equal(t, "ana@example.com", c2.Email)

	customers, err := s.ListCustomers(ctx, biz, "")
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	biz := uuid.New()

	_, err := s.CreateBooking(ctx, booking.NewCustomer{Email: "a@x.io"}, newBooking(biz, 600, "pending"))
	require.NoError(t, err)

	_, err = s.CreateBooking(ctx, booking.NewCustomer{Email: "b@x.io"}, newBooking(biz, 600, "confirmed"))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	// a failed create leaves no customer behind
	customers, _ := s.ListCustomers(ctx, biz, "b@x.io")
	assert.Empty(t, customers)

	// other businesses are independent
	_, err = s.CreateBooking(ctx, booking.NewCustomer{Email: "a@x.io"}, newBooking(uuid.New(), 600, "pending"))
	assert.NoError(t, err)
}

func TestCreateBooking_CancelledFreesSlot(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	biz := uuid.New()

	first := newBooking(biz, 600, "pending")
	_, err := s.CreateBooking(ctx, booking.NewCustomer{Email: "a@x.io"}, first)
	require.NoError(t, err)

	first.Status = "cancelled"
	require.NoError(t, s.UpdateBooking(ctx, first, "pending"))

	_, err = s.CreateBooking(ctx, booking.NewCustomer{Email: "b@x.io"}, newBooking(biz, 600, "pending"))
	assert.NoError(t, err)

	// the cancelled booking cannot come back onto an occupied slot
	first.Status = "pending"
	err = s.UpdateBooking(ctx, first, "cancelled")
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	biz := uuid.New()

	var ok, conflicts int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateBooking(ctx, booking.NewCustomer{Email: uuid.NewString() + "@x.io"}, newBooking(biz, 600, "pending"))
			if err == nil {
				atomic.AddInt32(&ok, 1)
			} else if httperr.IsKind(err, httperr.KindConflict) {
				atomic.AddInt32(&conflicts, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(19), conflicts)
}

func TestBusinessSlugUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.CreateBusiness(ctx, &models.Business{Name: "A", Slug: "acme"}))
	err := s.CreateBusiness(ctx, &models.Business{Name: "B", Slug: "acme"})
	assert.True(t, httperr.IsBusiness(err, "slug_taken"))

	b, err := s.GetBusinessBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "A", b.Name)
}

func TestServiceSoftDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	biz := uuid.New()

	svc := &models.Service{BusinessID: biz, Name: "Cut", DurationMin: 30, Price: 4500, IsActive: true}
	require.NoError(t, s.CreateService(ctx, svc))

	b := newBooking(biz, 600, "pending")
	b.ServiceID = svc.ID
	_, err := s.CreateBooking(ctx, booking.NewCustomer{Email: "a@x.io"}, b)
	require.NoError(t, err)

	require.NoError(t, s.DeleteService(ctx, biz, svc.ID))

	_, err = s.GetService(ctx, biz, svc.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	list, _ := s.ListServices(ctx, biz, false)
	assert.Empty(t, list)

	got, err := s.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Service)
	assert.Equal(t, "Cut", got.Service.Name)
	assert.Equal(t, int64(4500), got.TotalPrice)
}

func TestReplaceAvailability(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	biz := uuid.New()

	_, err := s.ReplaceAvailability(ctx, biz, []models.Availability{
		{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00", IsActive: true},
	})
	require.NoError(t, err)

	week, err := s.ReplaceAvailability(ctx, biz, []models.Availability{
		{DayOfWeek: 5, StartTime: "08:00", EndTime: "12:00", IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, 5, week[0].DayOfWeek)
	assert.Equal(t, biz, week[0].BusinessID)

	stored, _ := s.ListAvailability(ctx, biz)
	assert.Equal(t, week, stored)
}

func TestSaveDeviceTokenIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	biz := uuid.New()

	require.NoError(t, s.SaveDeviceToken(ctx, &models.DeviceToken{BusinessID: biz, Token: "tok", Platform: "ios"}))
	require.NoError(t, s.SaveDeviceToken(ctx, &models.DeviceToken{BusinessID: biz, Token: "tok", Platform: "android"}))

	tokens, _ := s.ListDeviceTokens(ctx, biz)
	require.Len(t, tokens, 1)
	assert.Equal(t, "android", tokens[0].Platform)
}

func TestUpdateBooking_StaleStatusIsRejected(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	b := newBooking(uuid.New(), 600, "confirmed")
	_, err := s.CreateBooking(ctx, booking.NewCustomer{Email: "a@x.io"}, b)
	require.NoError(t, err)

	completed := *b
	completed.Status = "completed"
	require.NoError(t, s.UpdateBooking(ctx, &completed, "confirmed"))

	cancelled := *b
	cancelled.Status = "cancelled"
	err = s.UpdateBooking(ctx, &cancelled, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "booking_modified"))

	got, err := s.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
}
