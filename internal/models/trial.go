package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceTrial records that a device has consumed its one free trial.
// Rows are created once and never mutated or deleted (fraud-prevention ledger).
type DeviceTrial struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID         string    `gorm:"size:255;not null;uniqueIndex" json:"device_id"`
	FirstTrialUserID uuid.UUID `gorm:"type:uuid;not null" json:"first_trial_user_id"`
	TrialUsedAt      time.Time `gorm:"not null" json:"trial_used_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func (d *DeviceTrial) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// UserTrial records that a user has consumed its one free trial.
// Same lifecycle as DeviceTrial.
type UserTrial struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TrialUsedAt time.Time `gorm:"not null" json:"trial_used_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *UserTrial) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
