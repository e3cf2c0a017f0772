package medical

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Health record types.
var RecordTypes = []string{"vaccination", "vet_visit", "medication", "weight", "other"}

type HealthRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PetID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"pet_id"`
	Type        string         `gorm:"size:20;not null" json:"type"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Date        time.Time      `gorm:"not null;index" json:"date"`
	WeightKg    *float64       `json:"weight_kg"`
	VetName     string         `gorm:"size:100" json:"vet_name"`
	Notes       string         `gorm:"type:text" json:"notes"`
	Attachments datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"attachments"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *HealthRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// --- DTOs ---

type CreateRecordRequest struct {
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Date        *time.Time     `json:"date"`
	WeightKg    *float64       `json:"weight_kg"`
	VetName     string         `json:"vet_name"`
	Notes       string         `json:"notes"`
	Attachments datatypes.JSON `json:"attachments"`
}

type UpdateRecordRequest struct {
	Type        *string        `json:"type"`
	Title       *string        `json:"title"`
	Date        *time.Time     `json:"date"`
	WeightKg    *float64       `json:"weight_kg"`
	VetName     *string        `json:"vet_name"`
	Notes       *string        `json:"notes"`
	Attachments datatypes.JSON `json:"attachments"`
}

type RecordListResponse struct {
	Records []HealthRecord `json:"records"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}
