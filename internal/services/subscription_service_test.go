package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/config"
	"github.com/pawtrack/pawtrack-backend/internal/dto"
	"github.com/pawtrack/pawtrack-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Subscription{},
		&models.DeviceTrial{},
		&models.UserTrial{},
	))
	return db
}

func newTestService(t *testing.T) (*SubscriptionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{TrialPeriod: 168 * time.Hour}
	return NewSubscriptionService(db, cfg), db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hashed"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func purchaseEvent(eventType, appUserID, txnID string, expiresAt time.Time) *dto.RevenueCatEvent {
	return &dto.RevenueCatEvent{
		Type:                  eventType,
		ID:                    uuid.NewString(),
		AppUserID:             appUserID,
		ProductID:             "pawtrack_pro_monthly",
		OriginalTransactionID: txnID,
		ExpirationAtMs:        expiresAt.UnixMilli(),
	}
}

func TestStartTrial(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "trial@example.com")

	sub, err := svc.StartTrial(user.ID, "device-1")
	require.NoError(t, err)

	assert.Equal(t, models.ProviderInternal, sub.Provider)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Nil(t, sub.ExternalID)
	assert.WithinDuration(t, time.Now().UTC().Add(168*time.Hour), sub.ExpiresAt, time.Minute)

	var deviceTrials, userTrials int64
	db.Model(&models.DeviceTrial{}).Count(&deviceTrials)
	db.Model(&models.UserTrial{}).Count(&userTrials)
	assert.Equal(t, int64(1), deviceTrials)
	assert.Equal(t, int64(1), userTrials)
}

func TestStartTrial_ActiveSubscriptionExists(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "active@example.com")

	_, err := svc.StartTrial(user.ID, "device-1")
	require.NoError(t, err)

	_, err = svc.StartTrial(user.ID, "device-2")
	assert.ErrorIs(t, err, ErrSubscriptionExists)

	// The failed attempt must not consume the second device's trial.
	var count int64
	db.Model(&models.DeviceTrial{}).Where("device_id = ?", "device-2").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestStartTrial_DeviceAlreadyUsed(t *testing.T) {
	svc, db := newTestService(t)
	first := createTestUser(t, db, "first@example.com")
	second := createTestUser(t, db, "second@example.com")

	_, err := svc.StartTrial(first.ID, "shared-device")
	require.NoError(t, err)

	// A different account on the same device is refused.
	_, err = svc.StartTrial(second.ID, "shared-device")
	assert.ErrorIs(t, err, ErrDeviceTrialUsed)

	var count int64
	db.Model(&models.Subscription{}).Where("user_id = ?", second.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestStartTrial_UserAlreadyUsed(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "used@example.com")

	// Trial consumed in the past, subscription since expired.
	require.NoError(t, db.Create(&models.UserTrial{
		UserID:      user.ID,
		TrialUsedAt: time.Now().UTC().Add(-60 * 24 * time.Hour),
	}).Error)

	_, err := svc.StartTrial(user.ID, "fresh-device")
	assert.ErrorIs(t, err, ErrUserTrialUsed)
}

func TestStartTrial_RevivesExpiredRow(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "revive@example.com")

	externalID := "txn_old"
	old := models.Subscription{
		UserID:     user.ID,
		Provider:   models.ProviderRevenueCat,
		ExternalID: &externalID,
		Tier:       "pro",
		Status:     models.SubscriptionExpired,
		ExpiresAt:  time.Now().UTC().Add(-24 * time.Hour),
	}
	require.NoError(t, db.Create(&old).Error)

	sub, err := svc.StartTrial(user.ID, "device-1")
	require.NoError(t, err)

	// Same row, back to an internal trial.
	assert.Equal(t, old.ID, sub.ID)

	var count int64
	db.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var stored models.Subscription
	require.NoError(t, db.First(&stored, "id = ?", old.ID).Error)
	assert.Equal(t, models.ProviderInternal, stored.Provider)
	assert.Equal(t, models.SubscriptionActive, stored.Status)
	assert.Nil(t, stored.ExternalID)
}

func TestStartTrial_DuplicateKeyTranslated(t *testing.T) {
	// Concurrent trial starts race to the registry unique indexes; the driver
	// violation must surface as gorm.ErrDuplicatedKey so the handler can map
	// it to a 409.
	_, db := newTestService(t)

	require.NoError(t, db.Create(&models.DeviceTrial{
		DeviceID:         "raced-device",
		FirstTrialUserID: uuid.New(),
		TrialUsedAt:      time.Now().UTC(),
	}).Error)

	err := db.Create(&models.DeviceTrial{
		DeviceID:         "raced-device",
		FirstTrialUserID: uuid.New(),
		TrialUsedAt:      time.Now().UTC(),
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCanStartTrial_FailsClosedOnLookupError(t *testing.T) {
	svc, db := newTestService(t)
	userID := uuid.New()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.False(t, svc.CanStartTrial("device-1", &userID))
}

func TestCanStartTrial(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "can@example.com")

	assert.True(t, svc.CanStartTrial("device-1", &user.ID))

	_, err := svc.StartTrial(user.ID, "device-1")
	require.NoError(t, err)

	assert.False(t, svc.CanStartTrial("device-1", &user.ID))
	assert.False(t, svc.CanStartTrial("device-2", &user.ID))
	assert.False(t, svc.CanStartTrial("device-1", nil))

	other := createTestUser(t, db, "other@example.com")
	assert.True(t, svc.CanStartTrial("device-2", &other.ID))
}

func TestHandleWebhook_InitialPurchase(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "buyer@example.com")
	expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Millisecond)

	event := purchaseEvent("INITIAL_PURCHASE", user.ID.String(), "txn_1", expiresAt)
	require.NoError(t, svc.HandleWebhookEvent(event))

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.ProviderRevenueCat, sub.Provider)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.ExternalID)
	assert.Equal(t, "txn_1", *sub.ExternalID)
	assert.WithinDuration(t, expiresAt, sub.ExpiresAt, time.Second)
}

func TestHandleWebhook_PurchaseWithoutExpiry(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "lifetime@example.com")

	// Lifetime purchases omit expiration_at_ms.
	event := &dto.RevenueCatEvent{
		Type:                  "NON_RENEWING_PURCHASE",
		ID:                    uuid.NewString(),
		AppUserID:             user.ID.String(),
		ProductID:             "pawtrack_pro_lifetime",
		OriginalTransactionID: "txn_life",
	}
	require.NoError(t, svc.HandleWebhookEvent(event))

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.True(t, sub.IsActive(time.Now().UTC()))
	assert.True(t, sub.ExpiresAt.After(time.Now().UTC().AddDate(50, 0, 0)))
}

func TestHandleWebhook_ReplayIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "replay@example.com")
	expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour)

	event := purchaseEvent("INITIAL_PURCHASE", user.ID.String(), "txn_1", expiresAt)
	require.NoError(t, svc.HandleWebhookEvent(event))
	require.NoError(t, svc.HandleWebhookEvent(event))
	require.NoError(t, svc.HandleWebhookEvent(event))

	var count int64
	db.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHandleWebhook_TrialConversion(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "convert@example.com")

	trial, err := svc.StartTrial(user.ID, "device-1")
	require.NoError(t, err)

	expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour)
	event := purchaseEvent("INITIAL_PURCHASE", user.ID.String(), "txn_conv", expiresAt)
	require.NoError(t, svc.HandleWebhookEvent(event))

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "user_id = ?", user.ID).Error)

	// The trial row converts in place rather than growing a second row.
	assert.Equal(t, trial.ID, sub.ID)
	assert.Equal(t, models.ProviderRevenueCat, sub.Provider)
	require.NotNil(t, sub.ExternalID)
	assert.Equal(t, "txn_conv", *sub.ExternalID)
}

func TestHandleWebhook_CancellationKeepsAccessUntilExpiry(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "cancel@example.com")
	expiresAt := time.Now().UTC().Add(20 * 24 * time.Hour)

	require.NoError(t, svc.HandleWebhookEvent(purchaseEvent("INITIAL_PURCHASE", user.ID.String(), "txn_1", expiresAt)))
	require.NoError(t, svc.HandleWebhookEvent(purchaseEvent("CANCELLATION", user.ID.String(), "txn_1", expiresAt)))

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.SubscriptionCancelled, sub.Status)
	assert.True(t, sub.IsActive(time.Now().UTC()))
}

func TestHandleWebhook_Expiration(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "expire@example.com")
	expiresAt := time.Now().UTC().Add(20 * 24 * time.Hour)

	require.NoError(t, svc.HandleWebhookEvent(purchaseEvent("INITIAL_PURCHASE", user.ID.String(), "txn_1", expiresAt)))
	require.NoError(t, svc.HandleWebhookEvent(purchaseEvent("EXPIRATION", user.ID.String(), "txn_1", expiresAt)))

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.SubscriptionExpired, sub.Status)
	assert.False(t, sub.IsActive(time.Now().UTC()))
}

func TestHandleWebhook_LifecycleOrdering(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "lifecycle@example.com")
	expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour)

	steps := []struct {
		event  string
		status string
	}{
		{"INITIAL_PURCHASE", models.SubscriptionActive},
		{"CANCELLATION", models.SubscriptionCancelled},
		{"UNCANCELLATION", models.SubscriptionActive},
		{"CANCELLATION", models.SubscriptionCancelled},
		{"EXPIRATION", models.SubscriptionExpired},
	}
	for _, step := range steps {
		require.NoError(t, svc.HandleWebhookEvent(purchaseEvent(step.event, user.ID.String(), "txn_1", expiresAt)))

		var sub models.Subscription
		require.NoError(t, db.First(&sub, "user_id = ?", user.ID).Error)
		assert.Equal(t, step.status, sub.Status, "after %s", step.event)
	}
}

func TestHandleWebhook_UnknownAppUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.HandleWebhookEvent(purchaseEvent("INITIAL_PURCHASE", "not-a-uuid", "txn_1", time.Now()))
	assert.ErrorIs(t, err, ErrUnknownAppUser)

	err = svc.HandleWebhookEvent(purchaseEvent("INITIAL_PURCHASE", uuid.NewString(), "txn_1", time.Now()))
	assert.ErrorIs(t, err, ErrUnknownAppUser)
}

func TestHandleWebhook_CancellationForUnknownTransaction(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.HandleWebhookEvent(purchaseEvent("CANCELLATION", uuid.NewString(), "txn_missing", time.Now()))
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestHandleWebhook_UnknownEventTypeIsNoOp(t *testing.T) {
	svc, db := newTestService(t)

	err := svc.HandleWebhookEvent(&dto.RevenueCatEvent{Type: "TEST", AppUserID: "whatever"})
	require.NoError(t, err)

	var count int64
	db.Model(&models.Subscription{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestStatus_NoSubscription(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "fresh@example.com")

	status, err := svc.Status(user.ID, "device-1")
	require.NoError(t, err)

	assert.False(t, status.HasActiveSubscription)
	assert.Equal(t, "none", status.SubscriptionType)
	assert.True(t, status.CanStartTrial)
	assert.Nil(t, status.ExpiresAt)
}

func TestStatus_Trial(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "trialuser@example.com")

	_, err := svc.StartTrial(user.ID, "device-1")
	require.NoError(t, err)

	status, err := svc.Status(user.ID, "device-1")
	require.NoError(t, err)

	assert.True(t, status.HasActiveSubscription)
	assert.Equal(t, "trial", status.SubscriptionType)
	assert.Equal(t, models.ProviderInternal, status.Provider)
	assert.False(t, status.CanStartTrial)
	assert.Equal(t, 6, status.DaysRemaining)
}

func TestStatus_CancelledPaid(t *testing.T) {
	svc, db := newTestService(t)
	user := createTestUser(t, db, "paid@example.com")
	expiresAt := time.Now().UTC().Add(10 * 24 * time.Hour)

	require.NoError(t, svc.HandleWebhookEvent(purchaseEvent("INITIAL_PURCHASE", user.ID.String(), "txn_1", expiresAt)))
	require.NoError(t, svc.HandleWebhookEvent(purchaseEvent("CANCELLATION", user.ID.String(), "txn_1", expiresAt)))

	status, err := svc.Status(user.ID, "")
	require.NoError(t, err)

	assert.True(t, status.HasActiveSubscription)
	assert.True(t, status.IsCancelled)
	assert.False(t, status.IsExpired)
	assert.Equal(t, "paid", status.SubscriptionType)
}
