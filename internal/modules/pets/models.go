package pets

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Species   string         `gorm:"size:50" json:"species"`
	Breed     string         `gorm:"size:100" json:"breed"`
	Gender    string         `gorm:"size:10" json:"gender"`
	BirthDate *time.Time     `json:"birth_date"`
	WeightKg  float64        `json:"weight_kg"`
	PhotoURL  string         `gorm:"type:text" json:"photo_url"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

var Species = []string{"dog", "cat", "bird", "rabbit", "fish", "reptile", "other"}

// --- DTOs ---

type CreatePetRequest struct {
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
	WeightKg  float64    `json:"weight_kg"`
	PhotoURL  string     `json:"photo_url"`
	Notes     string     `json:"notes"`
}

type UpdatePetRequest struct {
	Name      *string    `json:"name"`
	Species   *string    `json:"species"`
	Breed     *string    `json:"breed"`
	Gender    *string    `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
	WeightKg  *float64   `json:"weight_kg"`
	PhotoURL  *string    `json:"photo_url"`
	Notes     *string    `json:"notes"`
}

type PetListResponse struct {
	Pets   []Pet `json:"pets"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type DeletePetResponse struct {
	Message string `json:"message"`
}
