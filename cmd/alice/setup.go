package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/internal/providers/imghost"
	"github.com/sandevgo/alicebot/internal/providers/llm"
	"github.com/sandevgo/alicebot/internal/search"
	"github.com/sandevgo/alicebot/internal/service/relay"
	"github.com/sandevgo/alicebot/internal/storage/sqlite"
	"github.com/sandevgo/alicebot/internal/transport/httpapi"
	"github.com/sandevgo/alicebot/internal/transport/messenger"
	"github.com/sandevgo/alicebot/internal/transport/telegram"
	"github.com/sandevgo/alicebot/pkg/log"
	"github.com/sandevgo/alicebot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	searchCfg := config.NewSearchConfig(ctx)
	mediaCfg := config.NewMediaConfig(ctx)
	messengerCfg := config.NewMessengerConfig(ctx)

	// 2. Storage
	db, historyRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Completion and vision providers
	completer, err := llm.NewCompleter(ctx, appCfg.LLMProvider, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize completion provider")
	}
	analyzer := llm.NewImageAnalyzer(llmCfg)

	// 4. Search enrichment
	searcher := search.NewAggregator(searchCfg)

	// 5. Image hosting
	imageHost := imghost.NewImge(mediaCfg)

	// 6. Relay service
	persona := relay.LoadPersona(ctx, appCfg)
	rel := relay.NewRelay(
		appCfg,
		historyRepo,
		searcher,
		completer,
		analyzer,
		imageHost,
		relay.NewComposer(persona),
	)

	// 7. Transports
	transports, err := initTransports(ctx, appCfg, messengerCfg, rel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.MessagesRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewHistoryRepo(db), nil
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	messengerCfg *config.MessengerConfig,
	rel *relay.Relay,
) ([]srv.Service, error) {
	var services []srv.Service

	// Webhook server is always on, it is the primary transport
	sender := messenger.NewSender(messengerCfg)
	services = append(services, httpapi.NewServer(ctx, cfg.HTTPAddr, messengerCfg, rel, sender))

	// Telegram Bot
	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, rel)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
