package models

import "time"

type Confession struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Text          string    `json:"text" gorm:"not null;type:text"`
	Category      string    `json:"category" gorm:"not null"` // legacy free-text label
	CategoryID    *int64    `json:"category_id" gorm:"index"`
	IsAnonymous   bool      `json:"is_anonymous" gorm:"default:true;not null"`
	LikesCount    int64     `json:"likes_count" gorm:"default:0;not null"`
	CommentsCount int64     `json:"comments_count" gorm:"default:0;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	CategoryRef *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
}

func (Confession) TableName() string {
	return "confessions"
}
