package booking

import (
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves b to the target status when the lifecycle allows it.
// It reports whether the status actually changed.
func Transition(b *models.Booking, to Status) (bool, error) {
	from := Status(b.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}
	b.Status = string(to)
	return true, nil
}

// NotifiesOn reports whether entering status s triggers owner/customer notifications.
func NotifiesOn(s Status) bool {
	return s == StatusConfirmed || s == StatusCancelled
}
