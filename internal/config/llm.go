package config

import (
	"context"
	"time"
)

type GeminiConfig struct {
	APIKey string `env:"GOOGLE_API_KEY,required,notEmpty"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

func NewGeminiConfig(ctx context.Context) *GeminiConfig {
	return mustLoad[GeminiConfig](ctx, "Gemini")
}

type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY,required,notEmpty"`
	Model  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	// Optional, for OpenAI compatible servers.
	BaseURL string `env:"OPENAI_BASE_URL"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	return mustLoad[OpenAIConfig](ctx, "OpenAI")
}

type RetryConfig struct {
	MaxRetries int           `env:"FERPY_LLM_RETRIES" envDefault:"3"`
	BaseDelay  time.Duration `env:"FERPY_LLM_RETRY_DELAY" envDefault:"1s"`
}

func NewRetryConfig(ctx context.Context) *RetryConfig {
	return mustLoad[RetryConfig](ctx, "Retry")
}
