package generation

import (
	"alcyxob/swimcoach/internal/config"
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// NewClientFromConfig builds the provider named in cfg and wraps it in a Client.
func NewClientFromConfig(ctx context.Context, cfg config.GenerationConfig, logger *zap.Logger) (*Client, error) {
	var (
		provider Provider
		model    = cfg.Model
		err      error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		provider, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.BaseURL)
		if model == "" {
			model = GeminiModel
		}
	case config.ProviderOpenAI:
		// The race in Client.Generate bounds the call; this is a backstop for stuck connections.
		httpClient := &http.Client{Timeout: 2 * timeoutOrDefault(cfg)}
		provider, err = NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, httpClient)
		if model == "" {
			model = OpenAIModel
		}
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewClient(provider, model, cfg.Timeout, logger), nil
}

func timeoutOrDefault(cfg config.GenerationConfig) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return DefaultTimeout
}
