package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/alicebot/pkg/log"
)

type LLMConfig struct {
	GeminiTextAPIKey  string `env:"GEMINI_TEXT_API_KEY"`
	GeminiImageAPIKey string `env:"GEMINI_IMAGE_API_KEY"`
	GeminiModel       string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	GeminiVisionModel string `env:"GEMINI_VISION_MODEL" envDefault:"gemini-1.5-pro"`

	// OpenAI-compatible alternative, selected with LLM_PROVIDER=custom
	CustomBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
	CustomModel   string `env:"CUSTOM_OPENAI_MODEL"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}
