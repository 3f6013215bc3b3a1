package repository

import (
	"innervoice/internal/http-api/models"

	"gorm.io/gorm"
)

type ConfessionRepository interface {
	Create(confession *models.Confession) error
	Save(confession *models.Confession) error
	Delete(confessionID int64) error
	GetByID(confessionID int64) (*models.Confession, error)
	List(category string, page, pageSize int) ([]models.Confession, int64, error)
	GetByUser(userID string, page, pageSize int) ([]models.Confession, int64, error)
	IncrementLikes(confessionID int64, delta int) error
	IncrementComments(confessionID int64, delta int) error
	Count() (int64, error)
}

type confessionRepository struct {
	db *gorm.DB
}

func NewConfessionRepository(db *gorm.DB) ConfessionRepository {
	return &confessionRepository{db: db}
}

// Create a new confession
func (r *confessionRepository) Create(confession *models.Confession) error {
	return r.db.Create(confession).Error
}

// Save an existing confession
func (r *confessionRepository) Save(confession *models.Confession) error {
	return r.db.Save(confession).Error
}

// Delete a confession; likes and comments go with it via FK cascade
func (r *confessionRepository) Delete(confessionID int64) error {
	return r.db.Delete(&models.Confession{}, confessionID).Error
}

// GetByID retrieves a confession with its author
func (r *confessionRepository) GetByID(confessionID int64) (*models.Confession, error) {
	var confession models.Confession
	err := r.db.Where("id = ?", confessionID).
		Preload("User").
		First(&confession).Error
	if err != nil {
		return nil, err
	}
	return &confession, nil
}

// List retrieves the public feed, newest-first, with an optional category filter
func (r *confessionRepository) List(category string, page, pageSize int) ([]models.Confession, int64, error) {
	var confessions []models.Confession
	var total int64

	query := r.db.Model(&models.Confession{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&confessions).Error
	if err != nil {
		return nil, 0, err
	}

	return confessions, total, nil
}

// GetByUser retrieves all confessions by a specific user with pagination
func (r *confessionRepository) GetByUser(userID string, page, pageSize int) ([]models.Confession, int64, error) {
	var confessions []models.Confession
	var total int64

	if err := r.db.Model(&models.Confession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&confessions).Error
	if err != nil {
		return nil, 0, err
	}

	return confessions, total, nil
}

// IncrementLikes moves likes_count by delta as a single atomic UPDATE.
// Counter mutations must never be read-then-write: concurrent requests
// against the same confession would lose updates.
func (r *confessionRepository) IncrementLikes(confessionID int64, delta int) error {
	return r.db.Model(&models.Confession{}).
		Where("id = ?", confessionID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

// IncrementComments moves comments_count by delta as a single atomic UPDATE.
func (r *confessionRepository) IncrementComments(confessionID int64, delta int) error {
	return r.db.Model(&models.Confession{}).
		Where("id = ?", confessionID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", delta)).Error
}

func (r *confessionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Confession{}).Count(&count).Error
	return count, err
}
