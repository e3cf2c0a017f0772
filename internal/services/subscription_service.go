package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"github.com/pawtrack/pawtrack-backend/internal/dto"
	"github.com/pawtrack/pawtrack-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUnknownAppUser       = errors.New("no user found for app_user_id")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewSubscriptionService(db *gorm.DB, cfg *config.Config) *SubscriptionService {
	return &SubscriptionService{db: db, cfg: cfg}
}

// HandleWebhookEvent applies a RevenueCat event to the stored subscription
// state. All mutations are unconditional sets keyed by user or transaction
// identifier, so replaying an event leaves the same resulting state.
func (s *SubscriptionService) HandleWebhookEvent(event *dto.RevenueCatEvent) error {
	switch event.Type {
	case "INITIAL_PURCHASE", "RENEWAL", "UNCANCELLATION", "NON_RENEWING_PURCHASE", "PRODUCT_CHANGE":
		return s.applyPurchase(event)
	case "CANCELLATION", "SUBSCRIPTION_PAUSED":
		return s.applyCancellation(event)
	case "EXPIRATION", "BILLING_ISSUE":
		return s.applyExpiration(event)
	default:
		// Unrecognized event types are acknowledged without action.
		return nil
	}
}

// applyPurchase upserts the user's subscription to an active paid state.
// This is also the trial-to-paid conversion path: an internal trial row is
// switched to the revenuecat provider in place.
func (s *SubscriptionService) applyPurchase(event *dto.RevenueCatEvent) error {
	user, err := s.findUserByAppUserID(event.AppUserID)
	if err != nil {
		return err
	}

	externalID := event.ExternalID()

	// Lifetime and some non-renewing purchases carry no expiration_at_ms.
	// Blindly converting 0 would store an expiry at the 1970 epoch and make
	// the subscription dead on arrival.
	expiresAt := time.Now().UTC().AddDate(100, 0, 0)
	if event.ExpirationAtMs > 0 {
		expiresAt = msToTime(event.ExpirationAtMs)
	}

	var sub models.Subscription
	err = s.db.Where("user_id = ?", user.ID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = models.Subscription{
			ID:         uuid.New(),
			UserID:     user.ID,
			Provider:   models.ProviderRevenueCat,
			ExternalID: &externalID,
			Tier:       "pro",
			Status:     models.SubscriptionActive,
			ExpiresAt:  expiresAt,
		}
		return s.db.Create(&sub).Error
	}
	if err != nil {
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	return s.db.Model(&sub).Updates(map[string]interface{}{
		"provider":    models.ProviderRevenueCat,
		"external_id": externalID,
		"status":      models.SubscriptionActive,
		"expires_at":  expiresAt,
	}).Error
}

// applyCancellation marks the subscription cancelled. The user retains access
// until the expiry reported by the provider.
func (s *SubscriptionService) applyCancellation(event *dto.RevenueCatEvent) error {
	sub, err := s.findByExternalID(event.ExternalID())
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"status": models.SubscriptionCancelled}
	if event.ExpirationAtMs > 0 {
		updates["expires_at"] = msToTime(event.ExpirationAtMs)
	}
	return s.db.Model(sub).Updates(updates).Error
}

func (s *SubscriptionService) applyExpiration(event *dto.RevenueCatEvent) error {
	sub, err := s.findByExternalID(event.ExternalID())
	if err != nil {
		return err
	}
	return s.db.Model(sub).Update("status", models.SubscriptionExpired).Error
}

func (s *SubscriptionService) findByExternalID(externalID string) (*models.Subscription, error) {
	if externalID == "" {
		return nil, ErrSubscriptionNotFound
	}
	var sub models.Subscription
	if err := s.db.Where("external_id = ?", externalID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// findUserByAppUserID maps RevenueCat's app_user_id to an internal user.
// The client registers its internal user UUID as the RevenueCat app user id,
// so the mapping is the identity function.
func (s *SubscriptionService) findUserByAppUserID(appUserID string) (*models.User, error) {
	userID, err := uuid.Parse(appUserID)
	if err != nil {
		return nil, ErrUnknownAppUser
	}
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAppUser
		}
		return nil, err
	}
	return &user, nil
}

// Status summarizes the user's current entitlement for the client.
func (s *SubscriptionService) Status(userID uuid.UUID, deviceID string) (*dto.SubscriptionStatusResponse, error) {
	now := time.Now().UTC()

	resp := &dto.SubscriptionStatusResponse{
		SubscriptionType: "none",
		CanStartTrial:    s.CanStartTrial(deviceID, &userID),
	}

	var sub models.Subscription
	err := s.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	resp.Tier = sub.Tier
	resp.Provider = sub.Provider
	resp.Status = sub.Status
	resp.ExpiresAt = &sub.ExpiresAt
	resp.HasActiveSubscription = sub.IsActive(now)
	resp.IsExpired = sub.Status == models.SubscriptionExpired || !sub.ExpiresAt.After(now)
	resp.IsCancelled = sub.Status == models.SubscriptionCancelled

	if sub.Provider == models.ProviderInternal {
		resp.SubscriptionType = "trial"
	} else {
		resp.SubscriptionType = "paid"
	}

	if remaining := sub.ExpiresAt.Sub(now); remaining > 0 {
		resp.DaysRemaining = int(remaining.Hours() / 24)
	}

	return resp, nil
}

func msToTime(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC()
}
