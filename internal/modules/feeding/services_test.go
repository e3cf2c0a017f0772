package feeding

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*ScheduleService, uuid.UUID, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&pets.Pet{}, &FeedingSchedule{}))

	userID := uuid.New()
	pet := pets.Pet{UserID: userID, Name: "Mochi", Species: "cat"}
	require.NoError(t, db.Create(&pet).Error)
	return NewScheduleService(db), userID, pet.ID
}

func TestCreateSchedule(t *testing.T) {
	svc, userID, petID := newTestService(t)

	schedule, err := svc.Create(userID, petID, CreateScheduleRequest{
		Label:       "Breakfast",
		TimeOfDay:   "07:30",
		FoodType:    "dry",
		AmountGrams: 60,
		DaysOfWeek:  datatypes.JSON([]byte(`[1,2,3,4,5]`)),
	})
	require.NoError(t, err)
	assert.True(t, schedule.Enabled)
	assert.Equal(t, "07:30", schedule.TimeOfDay)

	for _, bad := range []string{"7:30", "24:00", "12:60", "noonish", ""} {
		_, err := svc.Create(userID, petID, CreateScheduleRequest{TimeOfDay: bad})
		assert.ErrorIs(t, err, ErrInvalidTime, "time %q", bad)
	}

	_, err = svc.Create(userID, petID, CreateScheduleRequest{TimeOfDay: "08:00", AmountGrams: -5})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(uuid.New(), petID, CreateScheduleRequest{TimeOfDay: "08:00"})
	assert.ErrorIs(t, err, pets.ErrNotOwner)
}

func TestListByPet_SortedByTime(t *testing.T) {
	svc, userID, petID := newTestService(t)

	for _, tod := range []string{"18:00", "07:30", "12:15"} {
		_, err := svc.Create(userID, petID, CreateScheduleRequest{TimeOfDay: tod})
		require.NoError(t, err)
	}

	schedules, total, err := svc.ListByPet(userID, petID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, schedules, 3)
	assert.Equal(t, "07:30", schedules[0].TimeOfDay)
	assert.Equal(t, "18:00", schedules[2].TimeOfDay)
}

func TestUpdateAndDeleteSchedule(t *testing.T) {
	svc, userID, petID := newTestService(t)

	schedule, err := svc.Create(userID, petID, CreateScheduleRequest{TimeOfDay: "07:30"})
	require.NoError(t, err)

	disabled := false
	tod := "08:00"
	updated, err := svc.Update(userID, schedule.ID, UpdateScheduleRequest{TimeOfDay: &tod, Enabled: &disabled})
	require.NoError(t, err)
	assert.Equal(t, "08:00", updated.TimeOfDay)
	assert.False(t, updated.Enabled)

	bad := "25:00"
	_, err = svc.Update(userID, schedule.ID, UpdateScheduleRequest{TimeOfDay: &bad})
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = svc.Get(uuid.New(), schedule.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.Delete(userID, schedule.ID))
	_, err = svc.Get(userID, schedule.ID)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
