package pets

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"gorm.io/gorm"
)

var (
	ErrPetNotFound    = errors.New("pet not found")
	ErrNotOwner       = errors.New("you do not own this pet")
	ErrNameRequired   = errors.New("pet name is required")
	ErrInvalidSpecies = errors.New("invalid species")
)

type PetService struct {
	db *gorm.DB
}

func NewPetService(db *gorm.DB) *PetService {
	return &PetService{db: db}
}

func (s *PetService) Create(userID uuid.UUID, req CreatePetRequest) (*Pet, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Species != "" && !isValidSpecies(req.Species) {
		return nil, ErrInvalidSpecies
	}

	pet := Pet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		Gender:    req.Gender,
		BirthDate: req.BirthDate,
		WeightKg:  req.WeightKg,
		PhotoURL:  req.PhotoURL,
		Notes:     req.Notes,
	}

	if err := s.db.Create(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (s *PetService) List(userID uuid.UUID, limit, offset int) ([]Pet, int64, error) {
	var petList []Pet
	var total int64

	s.db.Model(&Pet{}).Scopes(auth.ForUser(userID)).Count(&total)

	err := s.db.Scopes(auth.ForUser(userID)).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&petList).Error

	return petList, total, err
}

func (s *PetService) Get(userID, petID uuid.UUID) (*Pet, error) {
	var pet Pet
	if err := s.db.First(&pet, "id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	if pet.UserID != userID {
		return nil, ErrNotOwner
	}
	return &pet, nil
}

func (s *PetService) Update(userID, petID uuid.UUID, req UpdatePetRequest) (*Pet, error) {
	pet, err := s.Get(userID, petID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		pet.Name = *req.Name
	}
	if req.Species != nil {
		if !isValidSpecies(*req.Species) {
			return nil, ErrInvalidSpecies
		}
		pet.Species = *req.Species
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.Gender != nil {
		pet.Gender = *req.Gender
	}
	if req.BirthDate != nil {
		pet.BirthDate = req.BirthDate
	}
	if req.WeightKg != nil {
		pet.WeightKg = *req.WeightKg
	}
	if req.PhotoURL != nil {
		pet.PhotoURL = *req.PhotoURL
	}
	if req.Notes != nil {
		pet.Notes = *req.Notes
	}

	if err := s.db.Save(pet).Error; err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) Delete(userID, petID uuid.UUID) error {
	pet, err := s.Get(userID, petID)
	if err != nil {
		return err
	}
	return s.db.Delete(pet).Error
}

// EnsureOwned verifies that petID exists and belongs to userID. Sub-resource
// modules (health records, events, feeding, expenses) call this before
// attaching rows to a pet.
func EnsureOwned(db *gorm.DB, userID, petID uuid.UUID) error {
	var pet Pet
	if err := db.First(&pet, "id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	if pet.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

func isValidSpecies(species string) bool {
	for _, valid := range Species {
		if species == valid {
			return true
		}
	}
	return false
}
