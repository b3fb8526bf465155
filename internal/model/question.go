package model

import (
	"time"

	"gorm.io/gorm"
)

// Question type tags.
const (
	QuestionTypeFrontend = 1
	QuestionTypeBackend  = 2
)

// Question difficulty is an ordinal: 1 easy, 2 medium, 3 hard.
type Question struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	Type       int            `json:"type" gorm:"not null;index"`
	Difficulty int            `json:"difficulty" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
