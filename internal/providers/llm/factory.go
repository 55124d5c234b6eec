package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/ferpy/internal/config"
	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

// NewConversation creates the model client selected by configuration.
func NewConversation(ctx context.Context, cfg *config.AppConfig) (core.Conversation, error) {
	prompts, err := NewPromptBuilder(cfg.GetPromptPath(), cfg.Language)
	if err != nil {
		return nil, err
	}
	opts := Options{Prompts: prompts, HistoryTokens: cfg.HistoryTokens}

	switch cfg.LLMProvider {
	case "gemini":
		gc := config.NewGeminiConfig(ctx)
		log.FromCtx(ctx).Info().Str("provider", "gemini").Str("model", gc.Model).Msg("starting llm provider")
		return NewGemini(ctx, gc.APIKey, gc.Model, "", opts)
	case "openai":
		oc := config.NewOpenAIConfig(ctx)
		log.FromCtx(ctx).Info().Str("provider", "openai").Str("model", oc.Model).Msg("starting llm provider")
		return NewOpenAI(oc.APIKey, oc.Model, oc.BaseURL, opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
