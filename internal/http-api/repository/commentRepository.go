package repository

import (
	"innervoice/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Save(comment *models.Comment) error
	Delete(commentID int64) error
	GetByID(commentID int64) (*models.Comment, error)
	GetRootsByConfession(confessionID int64) ([]models.Comment, error)
	GetRepliesByConfession(confessionID int64) ([]models.Comment, error)
	GetRepliesByParent(parentID int64) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Save an existing comment
func (r *commentRepository) Save(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete a comment; descendant replies go with it via the self-FK cascade
func (r *commentRepository) Delete(commentID int64) error {
	return r.db.Delete(&models.Comment{}, commentID).Error
}

// GetByID retrieves a comment with its author
func (r *commentRepository) GetByID(commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetRootsByConfession retrieves the top-level comments of a confession,
// newest-first. Replies are fetched separately and grouped in the service,
// so the tree is built in two bounded queries instead of recursive loading.
func (r *commentRepository) GetRootsByConfession(confessionID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("confession_id = ? AND parent_comment_id IS NULL", confessionID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetRepliesByConfession retrieves every reply under a confession in one query.
func (r *commentRepository) GetRepliesByConfession(confessionID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("confession_id = ? AND parent_comment_id IS NOT NULL", confessionID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetRepliesByParent retrieves the direct replies of one comment, newest-first.
func (r *commentRepository) GetRepliesByParent(parentID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_comment_id = ?", parentID).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
