package slot

import (
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/domain/booking"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// SlotStep is the spacing of generated candidates within an hour.
const SlotStep = 30

type TimeSlot struct {
	Time      string `json:"time"`
	Minute    int    `json:"-"`
	Available bool   `json:"available"`
}

type Result struct {
	Slots  []TimeSlot
	Closed bool
}

func closed() Result {
	return Result{Slots: []TimeSlot{}, Closed: true}
}

// Compute lists the candidate slots of one calendar date.
//
// The open window is truncated to whole hours and every hour yields an
// on-the-hour and a half-hour slot. A slot is unavailable when a booking on
// that date that still blocks its slot (anything but cancelled) starts at
// the same minute. Stored windows that fail to parse close the day.
func Compute(date time.Time, week []models.Availability, bookingsOnDate []models.Booking) Result {
	window, ok := ForWeekday(week, date.Weekday())
	if !ok {
		return closed()
	}

	startHour, endHour, err := hourRange(window)
	if err != nil {
		return closed()
	}

	day := date.Format(DateLayout)
	taken := make(map[int]struct{}, len(bookingsOnDate))
	for _, b := range bookingsOnDate {
		if b.Date != "" && b.Date != day {
			continue
		}
		if !booking.Status(b.Status).BlocksSlot() {
			continue
		}
		taken[b.StartMinute] = struct{}{}
	}

	slots := make([]TimeSlot, 0, 2*max(0, endHour-startHour))
	for h := startHour; h < endHour; h++ {
		for m := 0; m < 60; m += SlotStep {
			minute := h*60 + m
			_, busy := taken[minute]
			slots = append(slots, TimeSlot{
				Time:      Label(minute),
				Minute:    minute,
				Available: !busy,
			})
		}
	}

	return Result{Slots: slots}
}

// ForWeekday returns the first active window of the given weekday.
func ForWeekday(week []models.Availability, day time.Weekday) (models.Availability, bool) {
	for _, a := range week {
		if a.DayOfWeek == int(day) && a.IsActive {
			return a, true
		}
	}
	return models.Availability{}, false
}

// Contains reports whether minute is one of the generated slot starts of res.
func (r Result) Contains(minute int) (TimeSlot, bool) {
	for _, s := range r.Slots {
		if s.Minute == minute {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// hourRange truncates the window to [startHour, endHour). Minutes are dropped.
func hourRange(a models.Availability) (int, int, error) {
	start, err := ParseHHMM(a.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseHHMM(a.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start / 60, end / 60, nil
}
