package repository

import (
	"innervoice/internal/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *models.Like) error
	Delete(userID string, confessionID int64) error
	Exists(userID string, confessionID int64) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create a new like; the (user_id, confession_id) unique index rejects duplicates
func (r *likeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

// Delete a like by its composite key
func (r *likeRepository) Delete(userID string, confessionID int64) error {
	result := r.db.Where("user_id = ? AND confession_id = ?", userID, confessionID).Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists checks whether the user has liked the confession
func (r *likeRepository) Exists(userID string, confessionID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND confession_id = ?", userID, confessionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
