package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/domain/slot"
	"github.com/BruksfildServices01/booking-engine/internal/dto"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

const (
	WeekDays    = 7
	RecentLimit = 5
)

type DayRevenue struct {
	Date    string `json:"date"`
	Day     string `json:"day"`
	Revenue int64  `json:"revenue"`
}

type Dashboard struct {
	TotalRevenue    int64            `json:"totalRevenue"`
	TodayBookings   int              `json:"todayBookings"`
	TotalBookings   int              `json:"totalBookings"`
	PendingBookings int              `json:"pendingBookings"`
	TotalCustomers  int              `json:"totalCustomers"`
	WeeklyRevenue   []DayRevenue     `json:"weeklyRevenue"`
	RecentBookings  []dto.BookingDTO `json:"recentBookings"`
}

// Aggregate folds a business's bookings into dashboard metrics.
//
// Revenue (total and weekly) only counts confirmed and completed bookings.
// today is compared by calendar date string; no timezone normalisation.
func Aggregate(bookings []models.Booking, today time.Time) Dashboard {
	todayKey := today.Format(slot.DateLayout)

	week := make([]DayRevenue, WeekDays)
	index := make(map[string]int, WeekDays)
	for i := 0; i < WeekDays; i++ {
		d := today.AddDate(0, 0, i-(WeekDays-1))
		key := d.Format(slot.DateLayout)
		week[i] = DayRevenue{Date: key, Day: d.Weekday().String()[:3]}
		index[key] = i
	}

	out := Dashboard{
		TotalBookings: len(bookings),
		WeeklyRevenue: week,
	}
	customers := make(map[uuid.UUID]struct{})

	for _, b := range bookings {
		st := booking.Status(b.Status)
		customers[b.CustomerID] = struct{}{}

		if b.Date == todayKey {
			out.TodayBookings++
		}
		if st == booking.StatusPending {
			out.PendingBookings++
		}
		if !st.CountsAsRevenue() {
			continue
		}
		out.TotalRevenue += b.TotalPrice
		if i, ok := index[b.Date]; ok {
			week[i].Revenue += b.TotalPrice
		}
	}
	out.TotalCustomers = len(customers)
	out.RecentBookings = dto.FromBookings(Recent(bookings, RecentLimit))

	return out
}

// Recent returns up to n bookings, newest CreatedAt first.
func Recent(bookings []models.Booking, n int) []models.Booking {
	sorted := make([]models.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
