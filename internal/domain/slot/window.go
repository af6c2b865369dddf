package slot

import (
	"fmt"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// ValidateWeek checks a weekly schedule before it is stored.
func ValidateWeek(week []models.Availability) error {
	seen := make(map[int]bool, len(week))
	for _, a := range week {
		if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
			return httperr.ErrValidation("invalid_day_of_week",
				fmt.Sprintf("dayOfWeek %d must be between 0 (Sunday) and 6", a.DayOfWeek))
		}
		if seen[a.DayOfWeek] {
			return httperr.ErrValidation("duplicate_day_of_week",
				fmt.Sprintf("dayOfWeek %d appears more than once", a.DayOfWeek))
		}
		seen[a.DayOfWeek] = true

		if err := ValidateWindow(a); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWindow requires well-formed HH:MM strings and, for active days,
// a start strictly before the end. Inactive days may omit both times.
func ValidateWindow(a models.Availability) error {
	if !a.IsActive && a.StartTime == "" && a.EndTime == "" {
		return nil
	}
	start, err := ParseHHMM(a.StartTime)
	if err != nil {
		return httperr.ErrValidation("invalid_start_time", err.Error())
	}
	end, err := ParseHHMM(a.EndTime)
	if err != nil {
		return httperr.ErrValidation("invalid_end_time", err.Error())
	}
	if a.IsActive && start >= end {
		return httperr.ErrValidation("invalid_window",
			fmt.Sprintf("startTime %s must be before endTime %s", a.StartTime, a.EndTime))
	}
	return nil
}
