package feeding

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound = errors.New("feeding schedule not found")
	ErrNotOwner         = errors.New("you do not own this feeding schedule")
	ErrInvalidTime      = errors.New("time_of_day must be HH:MM in 24-hour format")
	ErrInvalidAmount    = errors.New("amount_grams must not be negative")
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

func (s *ScheduleService) Create(userID, petID uuid.UUID, req CreateScheduleRequest) (*FeedingSchedule, error) {
	if err := pets.EnsureOwned(s.db, userID, petID); err != nil {
		return nil, err
	}
	if !timeOfDayRe.MatchString(req.TimeOfDay) {
		return nil, ErrInvalidTime
	}
	if req.AmountGrams < 0 {
		return nil, ErrInvalidAmount
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	schedule := FeedingSchedule{
		ID:          uuid.New(),
		UserID:      userID,
		PetID:       petID,
		Label:       req.Label,
		TimeOfDay:   req.TimeOfDay,
		FoodType:    req.FoodType,
		AmountGrams: req.AmountGrams,
		DaysOfWeek:  req.DaysOfWeek,
		Enabled:     enabled,
	}

	if err := s.db.Create(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *ScheduleService) ListByPet(userID, petID uuid.UUID) ([]FeedingSchedule, int64, error) {
	if err := pets.EnsureOwned(s.db, userID, petID); err != nil {
		return nil, 0, err
	}

	var schedules []FeedingSchedule
	err := s.db.Scopes(auth.ForUser(userID)).
		Where("pet_id = ?", petID).
		Order("time_of_day ASC").
		Find(&schedules).Error
	return schedules, int64(len(schedules)), err
}

func (s *ScheduleService) Get(userID, scheduleID uuid.UUID) (*FeedingSchedule, error) {
	var schedule FeedingSchedule
	if err := s.db.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if schedule.UserID != userID {
		return nil, ErrNotOwner
	}
	return &schedule, nil
}

func (s *ScheduleService) Update(userID, scheduleID uuid.UUID, req UpdateScheduleRequest) (*FeedingSchedule, error) {
	schedule, err := s.Get(userID, scheduleID)
	if err != nil {
		return nil, err
	}

	if req.TimeOfDay != nil {
		if !timeOfDayRe.MatchString(*req.TimeOfDay) {
			return nil, ErrInvalidTime
		}
		schedule.TimeOfDay = *req.TimeOfDay
	}
	if req.Label != nil {
		schedule.Label = *req.Label
	}
	if req.FoodType != nil {
		schedule.FoodType = *req.FoodType
	}
	if req.AmountGrams != nil {
		if *req.AmountGrams < 0 {
			return nil, ErrInvalidAmount
		}
		schedule.AmountGrams = *req.AmountGrams
	}
	if req.DaysOfWeek != nil {
		schedule.DaysOfWeek = req.DaysOfWeek
	}
	if req.Enabled != nil {
		schedule.Enabled = *req.Enabled
	}

	if err := s.db.Save(schedule).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) Delete(userID, scheduleID uuid.UUID) error {
	schedule, err := s.Get(userID, scheduleID)
	if err != nil {
		return err
	}
	return s.db.Delete(schedule).Error
}
