package repository

import (
	"github.com/Kawaii2025/interview-qa-app/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AIAnswerRepository is the store gateway for generated answers.
// Create is insert-or-conflict: a second insert for the same question
// fails with gorm.ErrDuplicatedKey (unique index on question_id).
// Upsert replaces the single row in one statement, so regeneration
// never leaves a gap where a concurrent reader sees no answer.
type AIAnswerRepository interface {
	FindByQuestionID(questionID uint) (*model.AIAnswer, error)
	Create(answer *model.AIAnswer) error
	Upsert(answer *model.AIAnswer) error
}

type aiAnswerRepository struct {
	db *gorm.DB
}

func NewAIAnswerRepository(db *gorm.DB) AIAnswerRepository {
	return &aiAnswerRepository{db: db}
}

func (r *aiAnswerRepository) FindByQuestionID(questionID uint) (*model.AIAnswer, error) {
	var answer model.AIAnswer
	if err := r.db.Where("question_id = ?", questionID).First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *aiAnswerRepository) Create(answer *model.AIAnswer) error {
	return r.db.Create(answer).Error
}

func (r *aiAnswerRepository) Upsert(answer *model.AIAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(answer).Error
}
