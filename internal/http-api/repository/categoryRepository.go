package repository

import (
	"innervoice/internal/http-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	Save(category *models.Category) error
	Delete(categoryID int64) error
	GetByID(categoryID int64) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	GetAll() ([]models.Category, error)
	IncrementConfessionCount(categoryID int64, delta int) error
	Count() (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) Save(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(categoryID int64) error {
	return r.db.Delete(&models.Category{}, categoryID).Error
}

func (r *categoryRepository) GetByID(categoryID int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, categoryID).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// IncrementConfessionCount moves the denormalized confession_count by delta
// as a single atomic UPDATE.
func (r *categoryRepository) IncrementConfessionCount(categoryID int64, delta int) error {
	return r.db.Model(&models.Category{}).
		Where("id = ?", categoryID).
		UpdateColumn("confession_count", gorm.Expr("confession_count + ?", delta)).Error
}

func (r *categoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Count(&count).Error
	return count, err
}
