package medical

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("health record not found")
	ErrNotOwner       = errors.New("you do not own this health record")
	ErrInvalidType    = errors.New("invalid record type")
	ErrTitleRequired  = errors.New("record title is required")
)

type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

func (s *RecordService) Create(userID, petID uuid.UUID, req CreateRecordRequest) (*HealthRecord, error) {
	if err := pets.EnsureOwned(s.db, userID, petID); err != nil {
		return nil, err
	}
	if !isValidType(req.Type) {
		return nil, ErrInvalidType
	}
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	record := HealthRecord{
		ID:          uuid.New(),
		UserID:      userID,
		PetID:       petID,
		Type:        req.Type,
		Title:       req.Title,
		Date:        date,
		WeightKg:    req.WeightKg,
		VetName:     req.VetName,
		Notes:       req.Notes,
		Attachments: req.Attachments,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RecordService) ListByPet(userID, petID uuid.UUID, recordType string, limit, offset int) ([]HealthRecord, int64, error) {
	if err := pets.EnsureOwned(s.db, userID, petID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&HealthRecord{}).Scopes(auth.ForUser(userID)).Where("pet_id = ?", petID)
	if recordType != "" {
		query = query.Where("type = ?", recordType)
	}

	var total int64
	query.Count(&total)

	var records []HealthRecord
	err := query.Order("date DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

func (s *RecordService) Get(userID, recordID uuid.UUID) (*HealthRecord, error) {
	var record HealthRecord
	if err := s.db.First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, ErrNotOwner
	}
	return &record, nil
}

func (s *RecordService) Update(userID, recordID uuid.UUID, req UpdateRecordRequest) (*HealthRecord, error) {
	record, err := s.Get(userID, recordID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !isValidType(*req.Type) {
			return nil, ErrInvalidType
		}
		record.Type = *req.Type
	}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrTitleRequired
		}
		record.Title = *req.Title
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.WeightKg != nil {
		record.WeightKg = req.WeightKg
	}
	if req.VetName != nil {
		record.VetName = *req.VetName
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.Attachments != nil {
		record.Attachments = req.Attachments
	}

	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService) Delete(userID, recordID uuid.UUID) error {
	record, err := s.Get(userID, recordID)
	if err != nil {
		return err
	}
	return s.db.Delete(record).Error
}

func isValidType(t string) bool {
	for _, valid := range RecordTypes {
		if t == valid {
			return true
		}
	}
	return false
}
