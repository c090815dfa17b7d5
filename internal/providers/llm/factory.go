package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/pkg/log"
)

// NewCompleter creates the text completion provider selected by
// configuration.
func NewCompleter(ctx context.Context, provider string, cfg *config.LLMConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Msg("starting llm provider")

	switch provider {
	case "gemini":
		return NewGemini(cfg.GeminiTextAPIKey, cfg.GeminiModel), nil
	case "custom":
		return NewOpenAICompatible(cfg.CustomBaseURL, cfg.CustomAPIKey, cfg.CustomModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}

// NewImageAnalyzer creates the vision provider. Image analysis keeps its own
// API key, mirroring the split the completion side uses.
func NewImageAnalyzer(cfg *config.LLMConfig) core.ImageAnalyzer {
	return NewGemini(cfg.GeminiImageAPIKey, cfg.GeminiVisionModel)
}
