package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/alicebot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ALICE_RUNTIME_PATH" envDefault:".alicebot"`
	// Allow selecting the completion provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	// Persona selected at startup, see internal/service/relay/persona.go
	Persona string `env:"PERSONA" envDefault:"alice"`

	// Transport flags
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":3000"`
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Context management: how many persisted messages feed the prompt
	ContextWindowSize int `env:"CONTEXT_WINDOW_SIZE" envDefault:"15"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	// Same anchoring as GetRuntimePath, so the files the installer seeds are
	// the files the app reads
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "alicebot.db")
}

func (c AppConfig) GetPersonaPath() string {
	return filepath.Join(c.RuntimePath, "PERSONA.md")
}
