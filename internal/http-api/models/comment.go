package models

import "time"

type Comment struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          string    `json:"user_id" gorm:"type:uuid;not null;index"`
	ConfessionID    int64     `json:"confession_id" gorm:"not null;index"`
	Text            string    `json:"text" gorm:"not null;type:text"`
	ParentCommentID *int64    `json:"parent_comment_id" gorm:"index"` // null => root comment
	LikesCount      int64     `json:"likes_count" gorm:"default:0;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User       User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Confession Confession `json:"confession,omitempty" gorm:"foreignKey:ConfessionID;constraint:OnDelete:CASCADE;"`
	Parent     *Comment   `json:"-" gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE;"`
}

// IsRoot reports whether the comment is a top-level comment rather than a reply.
func (c *Comment) IsRoot() bool {
	return c.ParentCommentID == nil
}

func (Comment) TableName() string {
	return "comments"
}
