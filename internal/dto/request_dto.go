package dto

// CreateQuestionRequest is the admin payload for adding a question.
type CreateQuestionRequest struct {
	Content    string `json:"content" binding:"required"`
	Type       int    `json:"type" binding:"required,oneof=1 2"`
	Difficulty int    `json:"difficulty" binding:"required,min=1,max=3"`
}

// SaveUserAnswerRequest saves (or overwrites) the user's own answer.
type SaveUserAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}
