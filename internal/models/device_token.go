package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceToken is an owner device registered for push notifications.
type DeviceToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_device_tokens_business_token,priority:1" json:"businessId"`
	Business   *Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Token    string `gorm:"size:255;not null;uniqueIndex:ux_device_tokens_business_token,priority:2" json:"token"`
	Platform string `gorm:"size:20" json:"platform"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *DeviceToken) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
