package model

import (
	"time"
)

// AIAnswer caches the generated reference answer for a question.
// The unique index on QuestionID is what enforces at most one stored
// answer per question; concurrent writers race on it and the loser
// gets a duplicate-key error instead of a second row.
//
// No soft delete here: a soft-deleted row would still occupy the unique
// index and block any later regeneration.
type AIAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
