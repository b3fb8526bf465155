package repository

import (
	"github.com/Kawaii2025/interview-qa-app/internal/model"
	"gorm.io/gorm"
)

type UserAnswerRepository interface {
	FindByQuestionID(questionID uint) (*model.UserAnswer, error)
	Create(answer *model.UserAnswer) error
	Update(answer *model.UserAnswer) error
}

type userAnswerRepository struct {
	db *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) UserAnswerRepository {
	return &userAnswerRepository{db: db}
}

func (r *userAnswerRepository) FindByQuestionID(questionID uint) (*model.UserAnswer, error) {
	var answer model.UserAnswer
	if err := r.db.Where("question_id = ?", questionID).First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *userAnswerRepository) Create(answer *model.UserAnswer) error {
	return r.db.Create(answer).Error
}

func (r *userAnswerRepository) Update(answer *model.UserAnswer) error {
	return r.db.Save(answer).Error
}
