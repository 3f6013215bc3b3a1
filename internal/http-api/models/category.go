package models

import "time"

type Category struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug            string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description     string    `json:"description" gorm:"type:text"`
	Color           string    `json:"color" gorm:"default:'#6366f1';not null"`
	ConfessionCount int64     `json:"confession_count" gorm:"default:0;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
