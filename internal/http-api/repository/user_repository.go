package repository

import (
	"innervoice/internal/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(user *models.User) error
	Save(user *models.User) error
	Delete(id string) error
	FindByID(id string) (*models.User, error)
	FindByIDWithConfessions(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByTokenDigest(digest string) (*models.User, error)
	List(search string, verified *bool, page, pageSize int) ([]models.User, int64, error)
	Count() (int64, error)
	CountVerified() (int64, error)
	CountAdmins() (int64, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		// prevent returning a zero-value user struct => which make GORM think user is found
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithConfessions(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Confessions").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByTokenDigest resolves a bearer credential by its stored sha-256 digest.
func (r *userRepository) FindByTokenDigest(digest string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("api_token = ?", digest).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users for the admin panel with optional name/email search
// and verification filter, newest-first.
func (r *userRepository) List(search string, verified *bool, page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if verified != nil {
		query = query.Where("is_verified = ?", *verified)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountVerified() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_verified = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, err
}
