package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kawaii2025/interview-qa-app/internal/dto"
	"github.com/Kawaii2025/interview-qa-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionController struct {
	questionSvc service.QuestionService
}

func NewQuestionController(questionSvc service.QuestionService) *QuestionController {
	return &QuestionController{questionSvc: questionSvc}
}

// GetAllQuestions godoc
// @Summary List all interview questions
// @Description Get every question, newest first
// @Tags questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [get]
func (ctrl *QuestionController) GetAllQuestions(c *gin.Context) {
	questions, err := ctrl.questionSvc.GetAllQuestions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list questions")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary Get a question by ID
// @Tags questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [get]
func (ctrl *QuestionController) GetQuestion(c *gin.Context) {
	id, ok := parseQuestionID(c)
	if !ok {
		return
	}
	question, err := ctrl.questionSvc.GetQuestion(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Question not found"})
			return
		}
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to get question")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve question"})
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestion godoc
// @Summary (Admin) Create a new question
// @Tags admin
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions [post]
func (ctrl *QuestionController) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateQuestionRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	question, err := ctrl.questionSvc.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create question"})
		return
	}
	c.JSON(http.StatusCreated, question)
}

// parseQuestionID reads the :question_id path param as a positive integer.
func parseQuestionID(c *gin.Context) (uint, bool) {
	idStr := c.Param("question_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid question ID format"})
		return 0, false
	}
	return uint(id), true
}
