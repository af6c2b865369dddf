package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPending, StatusPending, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s -> %s: %v", tc.from, tc.to, err)
		assert.True(t, httperr.IsKind(err, httperr.KindRule))
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	for _, bad := range []string{"", "CONFIRMED", "booked", "no_show"} {
		_, err := ParseStatus(bad)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"), bad)
	}
}

func TestTransition_FullLifecycle(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}

	changed, err := Transition(b, StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = Transition(b, StatusCompleted)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "completed", b.Status)

	_, err = Transition(b, StatusPending)
	assert.Error(t, err)
	assert.Equal(t, "completed", b.Status)
}

func TestTransition_SameStatusIsNoop(t *testing.T) {
	b := &models.Booking{Status: string(StatusConfirmed)}

	changed, err := Transition(b, StatusConfirmed)

	require.NoError(t, err)
	assert.False(t, changed)
}

func TestStatusPredicates(t *testing.T) {
	assert.False(t, StatusCancelled.BlocksSlot())
	assert.True(t, StatusCompleted.BlocksSlot())
	assert.True(t, StatusConfirmed.CountsAsRevenue())
	assert.True(t, StatusCompleted.CountsAsRevenue())
	assert.False(t, StatusPending.CountsAsRevenue())
	assert.True(t, NotifiesOn(StatusCancelled))
	assert.False(t, NotifiesOn(StatusCompleted))
}
