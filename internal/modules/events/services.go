package events

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrNotOwner        = errors.New("you do not own this event")
	ErrTitleRequired   = errors.New("event title is required")
	ErrInvalidType     = errors.New("invalid event type")
	ErrStartsAtMissing = errors.New("starts_at is required")
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

func (s *EventService) Create(userID uuid.UUID, req CreateEventRequest) (*Event, error) {
	if err := pets.EnsureOwned(s.db, userID, req.PetID); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.StartsAt == nil {
		return nil, ErrStartsAtMissing
	}
	eventType := req.Type
	if eventType == "" {
		eventType = "other"
	}
	if !isValidType(eventType) {
		return nil, ErrInvalidType
	}

	event := Event{
		ID:              uuid.New(),
		UserID:          userID,
		PetID:           req.PetID,
		Title:           req.Title,
		Type:            eventType,
		StartsAt:        req.StartsAt.UTC(),
		ReminderMinutes: req.ReminderMinutes,
		Notes:           req.Notes,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) List(userID uuid.UUID, petID *uuid.UUID, limit, offset int) ([]Event, int64, error) {
	query := s.db.Model(&Event{}).Scopes(auth.ForUser(userID))
	if petID != nil {
		query = query.Where("pet_id = ?", *petID)
	}

	var total int64
	query.Count(&total)

	var eventList []Event
	err := query.Order("starts_at DESC").Limit(limit).Offset(offset).Find(&eventList).Error
	return eventList, total, err
}

// Upcoming returns the next pending events across all of the user's pets.
func (s *EventService) Upcoming(userID uuid.UUID, limit int) ([]Event, error) {
	var eventList []Event
	err := s.db.Scopes(auth.ForUser(userID)).
		Where("starts_at >= ? AND completed = false", time.Now().UTC()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&eventList).Error
	return eventList, err
}

func (s *EventService) Get(userID, eventID uuid.UUID) (*Event, error) {
	var event Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.UserID != userID {
		return nil, ErrNotOwner
	}
	return &event, nil
}

func (s *EventService) Update(userID, eventID uuid.UUID, req UpdateEventRequest) (*Event, error) {
	event, err := s.Get(userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrTitleRequired
		}
		event.Title = *req.Title
	}
	if req.Type != nil {
		if !isValidType(*req.Type) {
			return nil, ErrInvalidType
		}
		event.Type = *req.Type
	}
	if req.StartsAt != nil {
		event.StartsAt = req.StartsAt.UTC()
	}
	if req.ReminderMinutes != nil {
		event.ReminderMinutes = *req.ReminderMinutes
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if req.Completed != nil {
		event.Completed = *req.Completed
	}

	if err := s.db.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(userID, eventID uuid.UUID) error {
	event, err := s.Get(userID, eventID)
	if err != nil {
		return err
	}
	return s.db.Delete(event).Error
}

func isValidType(t string) bool {
	for _, valid := range EventTypes {
		if t == valid {
			return true
		}
	}
	return false
}
