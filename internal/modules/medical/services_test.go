package medical

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*RecordService, uuid.UUID, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&pets.Pet{}, &HealthRecord{}))

	userID := uuid.New()
	pet := pets.Pet{UserID: userID, Name: "Mochi", Species: "cat"}
	require.NoError(t, db.Create(&pet).Error)
	return NewRecordService(db), userID, pet.ID
}

func TestCreateRecord(t *testing.T) {
	svc, userID, petID := newTestService(t)

	weight := 4.3
	record, err := svc.Create(userID, petID, CreateRecordRequest{
		Type:     "weight",
		Title:    "Monthly weigh-in",
		WeightKg: &weight,
	})
	require.NoError(t, err)
	assert.Equal(t, "weight", record.Type)
	require.NotNil(t, record.WeightKg)
	assert.Equal(t, 4.3, *record.WeightKg)
	assert.WithinDuration(t, time.Now().UTC(), record.Date, time.Minute)

	_, err = svc.Create(userID, petID, CreateRecordRequest{Type: "haircut", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.Create(userID, petID, CreateRecordRequest{Type: "vaccination"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(uuid.New(), petID, CreateRecordRequest{Type: "vaccination", Title: "x"})
	assert.ErrorIs(t, err, pets.ErrNotOwner)
}

func TestListByPet_TypeFilter(t *testing.T) {
	svc, userID, petID := newTestService(t)

	for _, rt := range []string{"vaccination", "vaccination", "vet_visit"} {
		_, err := svc.Create(userID, petID, CreateRecordRequest{Type: rt, Title: "entry"})
		require.NoError(t, err)
	}

	records, total, err := svc.ListByPet(userID, petID, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 3)

	records, total, err = svc.ListByPet(userID, petID, "vaccination", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, records, 2)

	_, _, err = svc.ListByPet(uuid.New(), petID, "", 20, 0)
	assert.ErrorIs(t, err, pets.ErrNotOwner)
}

func TestRecordOwnershipAndLifecycle(t *testing.T) {
	svc, userID, petID := newTestService(t)

	record, err := svc.Create(userID, petID, CreateRecordRequest{Type: "medication", Title: "Flea treatment"})
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = svc.Get(stranger, record.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	vet := "Dr. Patel"
	updated, err := svc.Update(userID, record.ID, UpdateRecordRequest{VetName: &vet})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Patel", updated.VetName)
	assert.Equal(t, "Flea treatment", updated.Title)

	require.NoError(t, svc.Delete(userID, record.ID))
	_, err = svc.Get(userID, record.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
