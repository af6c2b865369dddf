package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is the opening window of one weekday (0 = Sunday).
type Availability struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_availability_business_day,priority:1" json:"businessId"`
	Business   *Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DayOfWeek int    `gorm:"not null;uniqueIndex:ux_availability_business_day,priority:2" json:"dayOfWeek"`
	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`
	IsActive  bool   `gorm:"not null" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
