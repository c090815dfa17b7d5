package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/alicebot/pkg/log"
)

type MediaConfig struct {
	ImgeAPIKey    string `env:"IMGE_API_KEY"`
	ImgeUploadURL string `env:"IMGE_UPLOAD_URL" envDefault:"https://im.ge/api/1/upload"`
}

func NewMediaConfig(ctx context.Context) *MediaConfig {
	c := &MediaConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Media config")
	}
	return c
}
