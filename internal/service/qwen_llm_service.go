package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kawaii2025/interview-qa-app/config"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// QwenLLMService is the generation gateway: one prompt in, generated text out.
// No retries here; a retry is always a fresh caller action.
type QwenLLMService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type qwenLLMService struct {
	client *openai.Client
	model  string
}

// NewQwenLLMService builds a client for the DashScope compatible-mode API.
// The endpoint speaks the OpenAI chat-completions protocol with a bearer key,
// so the stock OpenAI client works with only the base URL swapped.
func NewQwenLLMService(cfg *config.Config) (QwenLLMService, error) {
	if cfg.DashScope.APIKey == "" {
		log.Warn().Msg("DASHSCOPE_API_KEY is not set. QwenLLMService will be non-functional.")
		return &qwenLLMService{client: nil, model: cfg.DashScope.Model}, nil
	}

	clientCfg := openai.DefaultConfig(cfg.DashScope.APIKey)
	if cfg.DashScope.BaseURL != "" {
		clientCfg.BaseURL = cfg.DashScope.BaseURL
	}

	return &qwenLLMService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.DashScope.Model,
	}, nil
}

func (s *qwenLLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("qwen client not initialized (API key missing)")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		log.Error().Err(err).Str("model", s.model).Msg("Qwen API error")
		return "", fmt.Errorf("qwen completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Warn().Str("model", s.model).Msg("Qwen returned no choices")
		return "", fmt.Errorf("qwen returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
