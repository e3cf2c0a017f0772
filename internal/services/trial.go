package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSubscriptionExists = errors.New("an active subscription already exists")
	ErrDeviceTrialUsed    = errors.New("this device has already used a free trial")
	ErrUserTrialUsed      = errors.New("this account has already used a free trial")
)

// CanStartTrial reports whether a trial may be started from the given device.
// Pure read, no side effects. Lookup failures report false rather than
// offering a trial the registry cannot vouch for.
func (s *SubscriptionService) CanStartTrial(deviceID string, userID *uuid.UUID) bool {
	if deviceID != "" {
		var count int64
		if err := s.db.Model(&models.DeviceTrial{}).Where("device_id = ?", deviceID).Count(&count).Error; err != nil {
			slog.Error("device trial lookup failed", "error", err)
			return false
		}
		if count > 0 {
			return false
		}
	}

	if userID != nil {
		var count int64
		if err := s.db.Model(&models.UserTrial{}).Where("user_id = ?", *userID).Count(&count).Error; err != nil {
			slog.Error("user trial lookup failed", "error", err)
			return false
		}
		if count > 0 {
			return false
		}
	}

	return true
}

// StartTrial grants a one-week internal trial. The subscription row and both
// trial-registry rows are written in a single transaction so a failure cannot
// leave a device or user half-registered.
func (s *SubscriptionService) StartTrial(userID uuid.UUID, deviceID string) (*models.Subscription, error) {
	now := time.Now().UTC()

	var existing models.Subscription
	hasExisting := false
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		hasExisting = true
		if existing.Status != models.SubscriptionExpired && existing.ExpiresAt.After(now) {
			return nil, ErrSubscriptionExists
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var deviceCount int64
	if err := s.db.Model(&models.DeviceTrial{}).Where("device_id = ?", deviceID).Count(&deviceCount).Error; err != nil {
		return nil, err
	}
	if deviceCount > 0 {
		return nil, ErrDeviceTrialUsed
	}

	var userCount int64
	if err := s.db.Model(&models.UserTrial{}).Where("user_id = ?", userID).Count(&userCount).Error; err != nil {
		return nil, err
	}
	if userCount > 0 {
		return nil, ErrUserTrialUsed
	}

	sub := models.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		Provider:  models.ProviderInternal,
		Tier:      "pro",
		Status:    models.SubscriptionActive,
		ExpiresAt: now.Add(s.cfg.TrialPeriod),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if hasExisting {
			// An expired row is revived in place; the user_id unique index
			// keeps the row count at one per user.
			sub.ID = existing.ID
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"provider":    models.ProviderInternal,
				"external_id": nil,
				"tier":        sub.Tier,
				"status":      models.SubscriptionActive,
				"expires_at":  sub.ExpiresAt,
			}).Error; err != nil {
				return err
			}
		} else if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.DeviceTrial{
			ID:               uuid.New(),
			DeviceID:         deviceID,
			FirstTrialUserID: userID,
			TrialUsedAt:      now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserTrial{
			ID:          uuid.New(),
			UserID:      userID,
			TrialUsedAt: now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &sub, nil
}
