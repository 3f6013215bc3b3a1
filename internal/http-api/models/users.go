package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	IsVerified   bool       `gorm:"default:false;not null" json:"is_verified"`
	IsAdmin      bool       `gorm:"default:false;not null" json:"is_admin"`
	OtpCode      *string    `json:"-"` // set and cleared together with OtpExpiresAt
	OtpExpiresAt *time.Time `json:"-"`
	APIToken     *string    `gorm:"column:api_token;uniqueIndex" json:"-"` // sha-256 digest, never the raw token
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Associations
	Confessions []Confession `json:"confessions,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
