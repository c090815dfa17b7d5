package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/alicebot/pkg/log"
)

type SearchConfig struct {
	GoogleAPIKey   string `env:"GOOGLE_API_KEY"`
	GoogleCSEID    string `env:"GOOGLE_CSE_ID"`
	GoogleEndpoint string `env:"GOOGLE_CSE_ENDPOINT" envDefault:"https://www.googleapis.com/customsearch/v1"`
	BingEndpoint   string `env:"BING_ENDPOINT" envDefault:"https://www.bing.com/search"`
	ResultLimit    int    `env:"SEARCH_RESULT_LIMIT" envDefault:"5"`
}

func NewSearchConfig(ctx context.Context) *SearchConfig {
	c := &SearchConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Search config")
	}
	return c
}
