package service

import (
	"errors"

	"github.com/Kawaii2025/interview-qa-app/internal/dto"
	"github.com/Kawaii2025/interview-qa-app/internal/model"
	"github.com/Kawaii2025/interview-qa-app/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserAnswerService interface {
	SaveAnswer(req dto.SaveUserAnswerRequest) (*dto.UserAnswerResponse, error)
	GetAnswer(questionID uint) (*dto.UserAnswerResponse, error)
}

type userAnswerService struct {
	repo         repository.UserAnswerRepository
	questionRepo repository.QuestionRepository
}

func NewUserAnswerService(repo repository.UserAnswerRepository, questionRepo repository.QuestionRepository) UserAnswerService {
	return &userAnswerService{repo: repo, questionRepo: questionRepo}
}

// SaveAnswer updates the existing answer for the question when one exists,
// otherwise inserts a new one.
func (s *userAnswerService) SaveAnswer(req dto.SaveUserAnswerRequest) (*dto.UserAnswerResponse, error) {
	if _, err := s.questionRepo.FindByID(req.QuestionID); err != nil {
		log.Warn().Err(err).Uint("questionID", req.QuestionID).Msg("Saving answer for unknown question")
		return nil, err
	}

	existing, err := s.repo.FindByQuestionID(req.QuestionID)
	switch {
	case err == nil:
		existing.Content = req.Content
		if err := s.repo.Update(existing); err != nil {
			return nil, err
		}
		var resp dto.UserAnswerResponse
		copier.Copy(&resp, existing)
		return &resp, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		answer := model.UserAnswer{QuestionID: req.QuestionID, Content: req.Content}
		if err := s.repo.Create(&answer); err != nil {
			return nil, err
		}
		var resp dto.UserAnswerResponse
		copier.Copy(&resp, &answer)
		return &resp, nil
	default:
		return nil, err
	}
}

func (s *userAnswerService) GetAnswer(questionID uint) (*dto.UserAnswerResponse, error) {
	answer, err := s.repo.FindByQuestionID(questionID)
	if err != nil {
		return nil, err
	}
	var resp dto.UserAnswerResponse
	copier.Copy(&resp, answer)
	return &resp, nil
}
