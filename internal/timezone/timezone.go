package timezone

import "time"

// DefaultTimezone is assigned to businesses created without one. The field
// is informational; nothing converts times into it.
const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}
