package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/govindp47/smarthire/internal/config"
	"github.com/tidwall/gjson"
)

// OpenRouterService is an alternate TextGenerator backed by the OpenRouter
// chat-completions API. Selected with LLM_PROVIDER=openrouter.
type OpenRouterService struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(90 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second)
	return &OpenRouterService{
		client: client,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (s *OpenRouterService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"temperature": 0.1,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), resp.String())
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return "", fmt.Errorf("openrouter response has no content: %s", resp.String())
	}
	return content.String(), nil
}
