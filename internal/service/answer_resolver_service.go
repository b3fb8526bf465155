package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kawaii2025/interview-qa-app/internal/model"
	"github.com/Kawaii2025/interview-qa-app/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Resolver error taxonomy. Controllers and the presenter match on these with
// errors.Is; raw gateway errors are always wrapped, never returned as-is.
var (
	// ErrStoreUnavailable is a transient store failure; the caller may retry.
	ErrStoreUnavailable = errors.New("answer store unavailable")
	// ErrQuestionMissing means the question id references nothing; not
	// retryable without fixing the reference.
	ErrQuestionMissing = errors.New("question not found")
	// ErrGenerationFailed covers provider errors, timeouts and empty output.
	// Retryable by explicit user action only.
	ErrGenerationFailed = errors.New("answer generation failed")
)

// ResolutionStatus tags a successful resolution outcome.
type ResolutionStatus int

const (
	// ResolutionFound means a stored answer exists and Content carries it.
	ResolutionFound ResolutionStatus = iota
	// ResolutionNotYetGenerated means the lookup completed and no answer
	// exists. Resolve never generates one; that is an explicit user action.
	ResolutionNotYetGenerated
)

// Resolution is the outcome of resolving a question's AI answer.
type Resolution struct {
	Status  ResolutionStatus
	Content string
}

// answerPromptPrefix is the fixed instruction prepended to the question
// content: answer in interview style, concise and clear, reasonable length.
const answerPromptPrefix = "请以面试回答的风格，简洁、清晰地解答这道题，控制在合理长度："

// AnswerResolver decides whether a generated answer already exists for a
// question, generates and persists one on explicit request, and keeps the
// at-most-one-answer-per-question invariant under concurrent generation.
//
// The resolver is stateless; all shared mutable state is the answer row in
// the store, and the store's unique constraint is the sole arbiter when two
// generation calls race.
type AnswerResolver interface {
	Resolve(ctx context.Context, questionID uint) (*Resolution, error)
	GenerateAndStore(ctx context.Context, questionID uint) (*Resolution, error)
	Regenerate(ctx context.Context, questionID uint) (*Resolution, error)
}

type answerResolver struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AIAnswerRepository
	llm          QwenLLMService
}

func NewAnswerResolver(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AIAnswerRepository,
	llm QwenLLMService,
) AnswerResolver {
	return &answerResolver{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		llm:          llm,
	}
}

// Resolve is the cache-aside read path. A hit returns the stored content
// verbatim and must never reach the generation gateway; a miss reports
// NotYetGenerated without generating.
func (r *answerResolver) Resolve(ctx context.Context, questionID uint) (*Resolution, error) {
	answer, err := r.answerRepo.FindByQuestionID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Resolution{Status: ResolutionNotYetGenerated}, nil
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("AI answer lookup failed")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &Resolution{Status: ResolutionFound, Content: answer.Content}, nil
}

// GenerateAndStore runs the full pipeline: question lookup, prompt build,
// generation, insert. Steps run strictly in that order and any failure
// short-circuits the rest, so a generation failure never writes.
//
// A duplicate-key error on insert means a concurrent caller won the race.
// That is not a fault: the fresh text is discarded, the winner's row is
// re-read and returned as Found, so both callers end up with a usable answer
// and exactly one row exists.
func (r *answerResolver) GenerateAndStore(ctx context.Context, questionID uint) (*Resolution, error) {
	content, err := r.generate(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answer := model.AIAnswer{QuestionID: questionID, Content: content}
	if err := r.answerRepo.Create(&answer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Info().Uint("questionID", questionID).Msg("Concurrent generation detected, returning existing answer")
			return r.readExisting(questionID)
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to persist AI answer")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &Resolution{Status: ResolutionFound, Content: content}, nil
}

// Regenerate replaces the stored answer. The store supports an atomic upsert,
// so the single row is overwritten in one statement and a concurrent reader
// sees either the old answer or the new one, never neither.
func (r *answerResolver) Regenerate(ctx context.Context, questionID uint) (*Resolution, error) {
	content, err := r.generate(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answer := model.AIAnswer{QuestionID: questionID, Content: content}
	if err := r.answerRepo.Upsert(&answer); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to upsert AI answer")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &Resolution{Status: ResolutionFound, Content: content}, nil
}

func (r *answerResolver) generate(ctx context.Context, questionID uint) (string, error) {
	question, err := r.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: id %d", ErrQuestionMissing, questionID)
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("Question lookup failed")
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	content, err := r.llm.Generate(ctx, answerPromptPrefix+question.Content)
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Generation gateway error")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	// A syntactically valid but empty completion is not success-with-content.
	if content == "" {
		log.Warn().Uint("questionID", questionID).Msg("Generation returned empty content")
		return "", fmt.Errorf("%w: empty content", ErrGenerationFailed)
	}

	return content, nil
}

func (r *answerResolver) readExisting(questionID uint) (*Resolution, error) {
	answer, err := r.answerRepo.FindByQuestionID(questionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &Resolution{Status: ResolutionFound, Content: answer.Content}, nil
}
