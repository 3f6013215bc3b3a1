package service

import (
	"errors"

	"gorm.io/gorm"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/repository"
)

var (
	ErrConfessionNotFound = errors.New("confession not found")
	ErrNotOwner           = errors.New("not the owner")
)

type ConfessionService interface {
	List(category string, page, perPage int) ([]models.Confession, int64, error)
	Get(confessionID int64) (*models.Confession, error)
	GetByUser(userID string, page, perPage int) ([]models.Confession, int64, error)
	Create(userID string, req dto.CreateConfessionRequest) (*models.Confession, error)
	Update(confessionID int64, userID string, req dto.UpdateConfessionRequest) (*models.Confession, error)
	Delete(confessionID int64, userID string) error
}

type confessionService struct {
	confessionRepo repository.ConfessionRepository
	categoryRepo   repository.CategoryRepository
}

func NewConfessionService(confessionRepo repository.ConfessionRepository, categoryRepo repository.CategoryRepository) ConfessionService {
	return &confessionService{
		confessionRepo: confessionRepo,
		categoryRepo:   categoryRepo,
	}
}

// List returns the public feed. "All" (or empty) means no category filter.
func (s *confessionService) List(category string, page, perPage int) ([]models.Confession, int64, error) {
	if category == "All" {
		category = ""
	}
	return s.confessionRepo.List(category, page, perPage)
}

func (s *confessionService) Get(confessionID int64) (*models.Confession, error) {
	confession, err := s.confessionRepo.GetByID(confessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfessionNotFound
		}
		return nil, err
	}
	return confession, nil
}

func (s *confessionService) GetByUser(userID string, page, perPage int) ([]models.Confession, int64, error) {
	return s.confessionRepo.GetByUser(userID, page, perPage)
}

// Create stores a confession owned by the caller. The free-text category
// label is resolved against the categories table when it matches one, which
// keeps the category's denormalized confession_count in step.
func (s *confessionService) Create(userID string, req dto.CreateConfessionRequest) (*models.Confession, error) {
	isAnonymous := true
	if req.IsAnonymous != nil {
		isAnonymous = *req.IsAnonymous
	}

	confession := &models.Confession{
		UserID:      userID,
		Text:        req.Text,
		Category:    req.Category,
		IsAnonymous: isAnonymous,
	}

	if category, err := s.categoryRepo.FindByName(req.Category); err == nil {
		confession.CategoryID = &category.ID
	}

	if err := s.confessionRepo.Create(confession); err != nil {
		return nil, err
	}

	if confession.CategoryID != nil {
		if err := s.categoryRepo.IncrementConfessionCount(*confession.CategoryID, 1); err != nil {
			return nil, err
		}
	}

	// Reload with the author attached
	return s.confessionRepo.GetByID(confession.ID)
}

// Update applies a partial update. Only the owner may update; existence is
// not hidden from non-owners.
func (s *confessionService) Update(confessionID int64, userID string, req dto.UpdateConfessionRequest) (*models.Confession, error) {
	confession, err := s.confessionRepo.GetByID(confessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfessionNotFound
		}
		return nil, err
	}

	if confession.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.Text != nil {
		confession.Text = *req.Text
	}
	if req.IsAnonymous != nil {
		confession.IsAnonymous = *req.IsAnonymous
	}
	if req.Category != nil && *req.Category != confession.Category {
		oldCategoryID := confession.CategoryID
		confession.Category = *req.Category
		confession.CategoryID = nil
		if category, err := s.categoryRepo.FindByName(*req.Category); err == nil {
			confession.CategoryID = &category.ID
		}
		if err := s.moveCategoryCount(oldCategoryID, confession.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.confessionRepo.Save(confession); err != nil {
		return nil, err
	}

	return s.confessionRepo.GetByID(confessionID)
}

// Delete removes an owned confession; likes and comments cascade at the
// storage layer.
func (s *confessionService) Delete(confessionID int64, userID string) error {
	confession, err := s.confessionRepo.GetByID(confessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConfessionNotFound
		}
		return err
	}

	if confession.UserID != userID {
		return ErrNotOwner
	}

	if err := s.confessionRepo.Delete(confessionID); err != nil {
		return err
	}

	if confession.CategoryID != nil {
		return s.categoryRepo.IncrementConfessionCount(*confession.CategoryID, -1)
	}
	return nil
}

func (s *confessionService) moveCategoryCount(from, to *int64) error {
	if from != nil {
		if err := s.categoryRepo.IncrementConfessionCount(*from, -1); err != nil {
			return err
		}
	}
	if to != nil {
		return s.categoryRepo.IncrementConfessionCount(*to, 1)
	}
	return nil
}
