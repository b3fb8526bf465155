package controller

import (
	"errors"
	"net/http"

	"github.com/Kawaii2025/interview-qa-app/internal/dto"
	"github.com/Kawaii2025/interview-qa-app/internal/presenter"
	"github.com/Kawaii2025/interview-qa-app/internal/render"
	"github.com/Kawaii2025/interview-qa-app/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AIAnswerController struct {
	resolver service.AnswerResolver
	renderer *render.Renderer
}

func NewAIAnswerController(resolver service.AnswerResolver, renderer *render.Renderer) *AIAnswerController {
	return &AIAnswerController{resolver: resolver, renderer: renderer}
}

// GetAIAnswer godoc
// @Summary Get the stored AI answer for a question
// @Description Cache lookup only; never triggers generation. 404 when no answer has been generated yet.
// @Tags ai-answers
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AIAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "No AI answer generated yet"
// @Failure 503 {object} dto.ErrorResponse "Answer store unavailable"
// @Router /questions/{question_id}/ai-answer [get]
func (ctrl *AIAnswerController) GetAIAnswer(c *gin.Context) {
	id, ok := parseQuestionID(c)
	if !ok {
		return
	}

	resolution, err := ctrl.resolver.Resolve(c.Request.Context(), id)
	if err != nil {
		ctrl.writeResolverError(c, id, err)
		return
	}
	if resolution.Status == service.ResolutionNotYetGenerated {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No AI answer for this question yet"})
		return
	}
	c.JSON(http.StatusOK, dto.AIAnswerResponse{QuestionID: id, Content: resolution.Content})
}

// GenerateAIAnswer godoc
// @Summary Generate and store the AI answer for a question
// @Description Explicit generation. If a concurrent request already stored an answer, that answer is returned.
// @Tags ai-answers
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AIAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Failure 503 {object} dto.ErrorResponse "Answer store unavailable"
// @Router /questions/{question_id}/ai-answer [post]
func (ctrl *AIAnswerController) GenerateAIAnswer(c *gin.Context) {
	id, ok := parseQuestionID(c)
	if !ok {
		return
	}

	resolution, err := ctrl.resolver.GenerateAndStore(c.Request.Context(), id)
	if err != nil {
		ctrl.writeResolverError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, dto.AIAnswerResponse{QuestionID: id, Content: resolution.Content})
}

// RegenerateAIAnswer godoc
// @Summary Regenerate the AI answer for a question
// @Description Replaces the stored answer with a fresh generation.
// @Tags ai-answers
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AIAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Failure 503 {object} dto.ErrorResponse "Answer store unavailable"
// @Router /questions/{question_id}/ai-answer/regenerate [post]
func (ctrl *AIAnswerController) RegenerateAIAnswer(c *gin.Context) {
	id, ok := parseQuestionID(c)
	if !ok {
		return
	}

	resolution, err := ctrl.resolver.Regenerate(c.Request.Context(), id)
	if err != nil {
		ctrl.writeResolverError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, dto.AIAnswerResponse{QuestionID: id, Content: resolution.Content})
}

// GetAIAnswerView godoc
// @Summary Get the sanitized, display-ready AI answer view
// @Description Drives the presenter lifecycle for one fetch and returns sanitized HTML, safe to insert into a page without further escaping.
// @Tags ai-answers
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AIAnswerViewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Router /questions/{question_id}/ai-answer/view [get]
func (ctrl *AIAnswerController) GetAIAnswerView(c *gin.Context) {
	id, ok := parseQuestionID(c)
	if !ok {
		return
	}

	p := presenter.NewAnswerPresenter(ctrl.resolver, ctrl.renderer)
	p.Open(id)
	if err := p.Fetch(c.Request.Context()); err != nil {
		// Only ErrBusy is possible and a fresh presenter is never busy.
		log.Error().Err(err).Uint("questionID", id).Msg("Presenter fetch refused")
	}
	view := p.Snapshot()
	c.JSON(http.StatusOK, dto.AIAnswerViewResponse{
		State:  view.State.String(),
		HTML:   view.HTML,
		Reason: view.Reason,
	})
}

func (ctrl *AIAnswerController) writeResolverError(c *gin.Context, questionID uint, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionMissing):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Question not found"})
	case errors.Is(err, service.ErrGenerationFailed):
		log.Error().Err(err).Uint("questionID", questionID).Msg("AI answer generation failed")
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "AI answer generation failed, please try again"})
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error().Err(err).Uint("questionID", questionID).Msg("Answer store unavailable")
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Answer store temporarily unavailable"})
	default:
		log.Error().Err(err).Uint("questionID", questionID).Msg("Unexpected resolver error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
