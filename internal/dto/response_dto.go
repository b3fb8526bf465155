package dto

import "time"

type QuestionResponse struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	Type       int       `json:"type"`
	Difficulty int       `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AIAnswerResponse struct {
	QuestionID uint      `json:"question_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// AIAnswerViewResponse is the presenter-driven view of an AI answer.
// HTML is sanitized and safe to insert into a page without further escaping.
type AIAnswerViewResponse struct {
	State  string `json:"state"` // "unfetched", "loading", "resolved", "empty", "failed"
	HTML   string `json:"html,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type UserAnswerResponse struct {
	QuestionID uint      `json:"question_id"`
	Content    string    `json:"content"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
