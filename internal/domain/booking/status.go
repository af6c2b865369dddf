package booking

import "github.com/BruksfildServices01/booking-engine/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// allowed lists the forward transitions of the lifecycle.
// completed and cancelled are terminal.
var allowed = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ===============================
// Validations
// ===============================

// ParseStatus rejects anything outside the four known statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", httperr.ErrValidation("invalid_status", "status must be one of pending, confirmed, completed, cancelled")
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// BlocksSlot reports whether a booking in this status occupies its slot.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled
}

// CountsAsRevenue reports whether the booking's price is earned revenue.
func (s Status) CountsAsRevenue() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// CanTransition validates a status change. Setting the current status again is a no-op.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return httperr.BusinessError{
		Kind:    httperr.KindRule,
		Code:    "invalid_transition",
		Message: "cannot move booking from " + string(from) + " to " + string(to),
	}
}

// InitialStatus is used when the caller does not pick one.
func InitialStatus() Status {
	return StatusPending
}
