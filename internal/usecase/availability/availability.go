package availability

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/booking-engine/internal/domain/slot"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type DayInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
	IsActive  bool
}

type Manage struct {
	repo catalog.Repository
}

func NewManage(repo catalog.Repository) *Manage {
	return &Manage{repo: repo}
}

// Get returns the weekly schedule ordered by day of week.
func (uc *Manage) Get(ctx context.Context, businessID uuid.UUID) ([]models.Availability, error) {
	if _, err := uc.repo.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return uc.repo.ListAvailability(ctx, businessID)
}

// Replace swaps the whole weekly schedule. Days not listed become closed.
func (uc *Manage) Replace(ctx context.Context, businessID uuid.UUID, days []DayInput) ([]models.Availability, error) {
	if _, err := uc.repo.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	week := make([]models.Availability, 0, len(days))
	for _, d := range days {
		week = append(week, models.Availability{
			BusinessID: businessID,
			DayOfWeek:  d.DayOfWeek,
			StartTime:  strings.TrimSpace(d.StartTime),
			EndTime:    strings.TrimSpace(d.EndTime),
			IsActive:   d.IsActive,
		})
	}
	if err := slot.ValidateWeek(week); err != nil {
		return nil, err
	}

	return uc.repo.ReplaceAvailability(ctx, businessID, week)
}
