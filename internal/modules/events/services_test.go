package events

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

func newTestService(t *testing.T) (*EventService, uuid.UUID, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&pets.Pet{}, &Event{}))

	userID := uuid.New()
	pet := pets.Pet{UserID: userID, Name: "Mochi", Species: "cat"}
	require.NoError(t, db.Create(&pet).Error)
	return NewEventService(db), userID, pet.ID
}

func TestCreateEvent(t *testing.T) {
	svc, userID, petID := newTestService(t)
	startsAt := time.Now().UTC().Add(24 * time.Hour)

	event, err := svc.Create(userID, CreateEventRequest{
		PetID:           petID,
		Title:           "Rabies booster",
		Type:            "vet_appointment",
		StartsAt:        &startsAt,
		ReminderMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "vet_appointment", event.Type)
	assert.False(t, event.Completed)

	_, err = svc.Create(userID, CreateEventRequest{PetID: petID, StartsAt: &startsAt})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(userID, CreateEventRequest{PetID: petID, Title: "x"})
	assert.ErrorIs(t, err, ErrStartsAtMissing)

	_, err = svc.Create(userID, CreateEventRequest{PetID: petID, Title: "x", Type: "party", StartsAt: &startsAt})
	assert.ErrorIs(t, err, ErrInvalidType)

	// Attaching to someone else's pet is refused.
	_, err = svc.Create(uuid.New(), CreateEventRequest{PetID: petID, Title: "x", StartsAt: &startsAt})
	assert.ErrorIs(t, err, pets.ErrNotOwner)
}

func TestUpcoming(t *testing.T) {
	svc, userID, petID := newTestService(t)
	now := time.Now().UTC()

	mk := func(title string, startsAt time.Time) *Event {
		event, err := svc.Create(userID, CreateEventRequest{PetID: petID, Title: title, StartsAt: &startsAt})
		require.NoError(t, err)
		return event
	}

	mk("past", now.Add(-2*time.Hour))
	done := mk("done", now.Add(3*time.Hour))
	mk("soon", now.Add(time.Hour))
	mk("later", now.Add(48*time.Hour))

	completed := true
	_, err := svc.Update(userID, done.ID, UpdateEventRequest{Completed: &completed})
	require.NoError(t, err)

	upcoming, err := svc.Upcoming(userID, 10)
	require.NoError(t, err)

	require.Len(t, upcoming, 2)
	assert.Equal(t, "soon", upcoming[0].Title)
	assert.Equal(t, "later", upcoming[1].Title)
}

func TestEventOwnership(t *testing.T) {
	svc, userID, petID := newTestService(t)
	startsAt := time.Now().UTC().Add(time.Hour)

	event, err := svc.Create(userID, CreateEventRequest{PetID: petID, Title: "Walk", Type: "walk", StartsAt: &startsAt})
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = svc.Get(stranger, event.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(stranger, event.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.Delete(userID, event.ID))
	_, err = svc.Get(userID, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
