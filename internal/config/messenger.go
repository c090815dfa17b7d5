package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/alicebot/pkg/log"
)

type MessengerConfig struct {
	VerifyToken     string `env:"VERIFY_TOKEN,required,notEmpty"`
	PageAccessToken string `env:"PAGE_ACCESS_TOKEN,required,notEmpty"`
	GraphBaseURL    string `env:"GRAPH_BASE_URL" envDefault:"https://graph.facebook.com/v21.0"`
}

func NewMessengerConfig(ctx context.Context) *MessengerConfig {
	c := &MessengerConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Messenger config")
	}
	return c
}
