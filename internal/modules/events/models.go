package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event types surfaced by the client calendar.
var EventTypes = []string{"vet_appointment", "grooming", "medication", "walk", "birthday", "other"}

type Event struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PetID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Type            string         `gorm:"size:30;not null;default:'other'" json:"type"`
	StartsAt        time.Time      `gorm:"not null;index" json:"starts_at"`
	ReminderMinutes int            `gorm:"default:0" json:"reminder_minutes"`
	Notes           string         `gorm:"type:text" json:"notes"`
	Completed       bool           `gorm:"default:false" json:"completed"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// --- DTOs ---

type CreateEventRequest struct {
	PetID           uuid.UUID  `json:"pet_id"`
	Title           string     `json:"title"`
	Type            string     `json:"type"`
	StartsAt        *time.Time `json:"starts_at"`
	ReminderMinutes int        `json:"reminder_minutes"`
	Notes           string     `json:"notes"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title"`
	Type            *string    `json:"type"`
	StartsAt        *time.Time `json:"starts_at"`
	ReminderMinutes *int       `json:"reminder_minutes"`
	Notes           *string    `json:"notes"`
	Completed       *bool      `json:"completed"`
}

type EventListResponse struct {
	Events []Event `json:"events"`
	Total  int64   `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}
