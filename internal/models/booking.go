package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`
	Business   *Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"serviceId"`
	Service   *Service  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	// Date is a calendar date (YYYY-MM-DD) in the business's wall clock.
	Date string `gorm:"size:10;not null;index" json:"date"`
	// StartMinute is minutes since midnight; the display label is derived from it.
	StartMinute int `gorm:"not null" json:"-"`

	Status string `gorm:"size:20;not null" json:"status"`
	// TotalPrice is a snapshot of the service price at creation, in minor units.
	TotalPrice int64  `gorm:"not null" json:"totalPrice"`
	Notes      string `gorm:"size:500" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
