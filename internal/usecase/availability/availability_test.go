package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/infra/memory"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

func setup(t *testing.T) (*Manage, uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	biz := &models.Business{Name: "Acme", Slug: "acme"}
	require.NoError(t, store.CreateBusiness(context.Background(), biz))
	return NewManage(store), biz.ID
}

func TestReplaceAndGet(t *testing.T) {
	uc, biz := setup(t)
	ctx := context.Background()

	_, err := uc.Replace(ctx, biz, []DayInput{
		{DayOfWeek: 5, StartTime: "09:00", EndTime: "13:00", IsActive: true},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 0, IsActive: false},
	})
	require.NoError(t, err)

	week, err := uc.Get(ctx, biz)
	require.NoError(t, err)
	require.Len(t, week, 3)
	assert.Equal(t, []int{0, 1, 5}, []int{week[0].DayOfWeek, week[1].DayOfWeek, week[2].DayOfWeek})
}

func TestReplace_RejectsInvalidWeek(t *testing.T) {
	uc, biz := setup(t)
	ctx := context.Background()

	_, err := uc.Replace(ctx, biz, []DayInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true}})
	require.NoError(t, err)

	tests := []struct {
		name string
		days []DayInput
		code string
	}{
		{"day out of range", []DayInput{{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00", IsActive: true}}, "invalid_day_of_week"},
		{"duplicate day", []DayInput{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", IsActive: true},
			{DayOfWeek: 2, StartTime: "11:00", EndTime: "12:00", IsActive: true},
		}, "duplicate_day_of_week"},
		{"bad start", []DayInput{{DayOfWeek: 2, StartTime: "9am", EndTime: "10:00", IsActive: true}}, "invalid_start_time"},
		{"inverted", []DayInput{{DayOfWeek: 2, StartTime: "17:00", EndTime: "09:00", IsActive: true}}, "invalid_window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Replace(ctx, biz, tt.days)
			assert.True(t, httperr.IsKind(err, httperr.KindValidation))
			assert.True(t, httperr.IsBusiness(err, tt.code), err.Error())
		})
	}

	// a rejected replace leaves the stored week alone
	week, _ := uc.Get(ctx, biz)
	require.Len(t, week, 1)
	assert.Equal(t, 1, week[0].DayOfWeek)
}

func TestUnknownBusiness(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Get(context.Background(), uuid.New())
	assert.True(t, httperr.IsBusiness(err, "business_not_found"))
}
