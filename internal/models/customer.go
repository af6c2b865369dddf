package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is identified by (business, email); repeat bookers reuse the same row.
type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_customers_business_email,priority:1" json:"businessId"`
	Business   *Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name          string `gorm:"size:100;not null" json:"name"`
	Email         string `gorm:"size:100;not null;uniqueIndex:ux_customers_business_email,priority:2" json:"email"`
	Phone         string `gorm:"size:20" json:"phone,omitempty"`
	TotalBookings int    `gorm:"not null" json:"totalBookings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
