package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/lessonhub/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// eventRepo may be nil when requests should only be logged.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewSampleProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller -> retry -> logging -> base, so every attempt is logged.
	logged := WithLogging(base, cfg.Provider, logger, eventRepo)
	return WithRetry(logged, cfg.Retry, logger), nil
}
