package feeding

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedingSchedule is one daily feeding slot for a pet. DaysOfWeek holds a JSON
// array of weekday numbers (0 = Sunday); empty means every day.
type FeedingSchedule struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PetID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Label      string         `gorm:"size:100" json:"label"`
	TimeOfDay  string         `gorm:"size:5;not null" json:"time_of_day"` // HH:MM, 24h
	FoodType   string         `gorm:"size:100" json:"food_type"`
	AmountGrams int           `gorm:"default:0" json:"amount_grams"`
	DaysOfWeek datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"days_of_week"`
	Enabled    bool           `gorm:"default:true" json:"enabled"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *FeedingSchedule) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// --- DTOs ---

type CreateScheduleRequest struct {
	Label       string         `json:"label"`
	TimeOfDay   string         `json:"time_of_day"`
	FoodType    string         `json:"food_type"`
	AmountGrams int            `json:"amount_grams"`
	DaysOfWeek  datatypes.JSON `json:"days_of_week"`
	Enabled     *bool          `json:"enabled"`
}

type UpdateScheduleRequest struct {
	Label       *string        `json:"label"`
	TimeOfDay   *string        `json:"time_of_day"`
	FoodType    *string        `json:"food_type"`
	AmountGrams *int           `json:"amount_grams"`
	DaysOfWeek  datatypes.JSON `json:"days_of_week"`
	Enabled     *bool          `json:"enabled"`
}

type ScheduleListResponse struct {
	Schedules []FeedingSchedule `json:"schedules"`
	Total     int64             `json:"total"`
}
