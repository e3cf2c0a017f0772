package budget

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense categories surfaced by the client.
var Categories = []string{"food", "vet", "grooming", "toys", "insurance", "medication", "other"}

type Expense struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PetID     *uuid.UUID     `gorm:"type:uuid;index" json:"pet_id"`
	Amount    float64        `gorm:"not null" json:"amount"`
	Currency  string         `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Category  string         `gorm:"size:30;not null;default:'other'" json:"category"`
	Date      time.Time      `gorm:"not null;index" json:"date"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Budget is the user's single monthly spending cap.
type Budget struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Amount         float64   `gorm:"not null" json:"amount"`
	Currency       string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	AlertThreshold float64   `gorm:"not null;default:0.8" json:"alert_threshold"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// --- DTOs ---

type CreateExpenseRequest struct {
	PetID    *uuid.UUID `json:"pet_id"`
	Amount   float64    `json:"amount"`
	Currency string     `json:"currency"`
	Category string     `json:"category"`
	Date     *time.Time `json:"date"`
	Notes    string     `json:"notes"`
}

type UpdateExpenseRequest struct {
	Amount   *float64   `json:"amount"`
	Currency *string    `json:"currency"`
	Category *string    `json:"category"`
	Date     *time.Time `json:"date"`
	Notes    *string    `json:"notes"`
}

type ExpenseListResponse struct {
	Expenses []Expense `json:"expenses"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

type SetBudgetRequest struct {
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	AlertThreshold *float64 `json:"alert_threshold"`
}

type BudgetStatusResponse struct {
	BudgetAmount float64   `json:"budget_amount"`
	Spent        float64   `json:"spent"`
	Remaining    float64   `json:"remaining"`
	Percentage   float64   `json:"percentage"`
	IsAlert      bool      `json:"is_alert"`
	Currency     string    `json:"currency"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
}
