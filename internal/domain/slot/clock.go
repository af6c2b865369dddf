package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	MinutesPerDay = 24 * 60
)

// ParseDate parses a calendar date (YYYY-MM-DD). The result is midnight UTC;
// only the calendar fields are meaningful.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ParseHHMM parses a 24-hour "HH:MM" wall-clock string into minutes since midnight.
func ParseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatHHMM renders minutes since midnight as "HH:MM".
func FormatHHMM(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// Label renders minutes since midnight as a 12-hour display label, e.g. "1:30 PM".
func Label(minute int) string {
	h, m := minute/60, minute%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

// ParseTime accepts either a display label ("2:00 PM", "2:00pm") or a
// 24-hour "HH:MM" value and returns minutes since midnight.
func ParseTime(s string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty time")
	}

	var suffix string
	switch {
	case strings.HasSuffix(v, "AM"):
		suffix = "AM"
	case strings.HasSuffix(v, "PM"):
		suffix = "PM"
	default:
		return ParseHHMM(v)
	}

	clock := strings.TrimSpace(strings.TrimSuffix(v, suffix))
	minute, err := ParseHHMM(clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, m := minute/60, minute%60
	if h < 1 || h > 12 {
		return 0, fmt.Errorf("invalid 12-hour time %q", s)
	}
	h %= 12
	if suffix == "PM" {
		h += 12
	}
	return h*60 + m, nil
}
