package controller

import (
	"errors"
	"net/http"

	"github.com/Kawaii2025/interview-qa-app/internal/dto"
	"github.com/Kawaii2025/interview-qa-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserAnswerController struct {
	userAnswerSvc service.UserAnswerService
}

func NewUserAnswerController(userAnswerSvc service.UserAnswerService) *UserAnswerController {
	return &UserAnswerController{userAnswerSvc: userAnswerSvc}
}

// SaveUserAnswer godoc
// @Summary Save the user's own answer for a question
// @Description Updates the existing answer when one exists, inserts otherwise.
// @Tags user-answers
// @Accept json
// @Produce json
// @Param answer body dto.SaveUserAnswerRequest true "Question ID and answer content"
// @Success 200 {object} dto.UserAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user-answers [post]
func (ctrl *UserAnswerController) SaveUserAnswer(c *gin.Context) {
	var req dto.SaveUserAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SaveUserAnswerRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := ctrl.userAnswerSvc.SaveAnswer(req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Question not found"})
			return
		}
		log.Error().Err(err).Uint("questionID", req.QuestionID).Msg("Failed to save user answer")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to save answer"})
		return
	}
	c.JSON(http.StatusOK, answer)
}

// GetUserAnswer godoc
// @Summary Get the user's stored answer for a question
// @Tags user-answers
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.UserAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "No answer saved for this question"
// @Router /questions/{question_id}/user-answer [get]
func (ctrl *UserAnswerController) GetUserAnswer(c *gin.Context) {
	id, ok := parseQuestionID(c)
	if !ok {
		return
	}

	answer, err := ctrl.userAnswerSvc.GetAnswer(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No answer saved for this question"})
			return
		}
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to get user answer")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve answer"})
		return
	}
	c.JSON(http.StatusOK, answer)
}
