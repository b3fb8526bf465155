package model

import (
	"time"
)

// UserAnswer is the user's own written answer for a question.
// Single-user deployment, so one answer per question; saving again
// updates the existing row.
type UserAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
