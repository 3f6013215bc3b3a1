package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"innervoice/internal/http-api/dto"
	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/repository"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameInUse = errors.New("category name already in use")
	ErrCategoryInUse     = errors.New("category has confessions")
)

const defaultCategoryColor = "#6366f1"

type CategoryService interface {
	GetAll() ([]models.Category, error)
	Get(categoryID int64) (*models.Category, error)
	Create(req dto.CreateCategoryRequest) (*models.Category, error)
	Update(categoryID int64, req dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(categoryID int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetAll() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *categoryService) Get(categoryID int64) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(req dto.CreateCategoryRequest) (*models.Category, error) {
	if _, err := s.categoryRepo.FindByName(req.Name); err == nil {
		return nil, ErrCategoryNameInUse
	}

	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
		Color:       color,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update applies a partial update; renaming regenerates the slug.
func (s *categoryService) Update(categoryID int64, req dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		if existing, err := s.categoryRepo.FindByName(*req.Name); err == nil && existing.ID != categoryID {
			return nil, ErrCategoryNameInUse
		}
		category.Name = *req.Name
		category.Slug = Slugify(*req.Name)
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.categoryRepo.Save(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses while the denormalized confession_count is non-zero:
// confessions must be reassigned or deleted first.
func (s *categoryService) Delete(categoryID int64) error {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if category.ConfessionCount > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(categoryID)
}

// Slugify derives a URL slug from a category name: lowercase, runs of
// non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
