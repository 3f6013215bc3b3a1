package models

import "time"

type Like struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_confession"`
	ConfessionID int64     `json:"confession_id" gorm:"not null;uniqueIndex:idx_likes_user_confession"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User       User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Confession Confession `json:"confession,omitempty" gorm:"foreignKey:ConfessionID;constraint:OnDelete:CASCADE;"`
}

func (Like) TableName() string {
	return "likes"
}
