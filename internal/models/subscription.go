package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription providers.
const (
	ProviderInternal   = "internal"
	ProviderRevenueCat = "revenuecat"
)

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Subscription is the user's current entitlement. At most one row per user;
// provider transitions (trial to paid) update in place.
type Subscription struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Provider   string    `gorm:"size:20;not null;default:'internal'" json:"provider"`
	ExternalID *string   `gorm:"size:255;index" json:"external_id"`
	Tier       string    `gorm:"size:50;not null;default:'pro'" json:"tier"`
	Status     string    `gorm:"size:20;not null;default:'active'" json:"status"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the subscription currently grants access.
// Cancelled subscriptions retain access until expiry.
func (s *Subscription) IsActive(now time.Time) bool {
	if s.Status == SubscriptionExpired {
		return false
	}
	return s.ExpiresAt.After(now)
}
