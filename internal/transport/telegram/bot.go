package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/service/relay"
	"github.com/sandevgo/alicebot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Bot is the optional Telegram transport: the same relay pipeline behind a
// long-polling bot instead of the webhook.
type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	relay   *relay.Relay
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	rel *relay.Relay,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		relay:   rel,
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: only allow the owner when one is configured
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if bot.ownerID != 0 && c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnPhoto, bot.handlePhoto)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	userID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	reply, err := b.relay.HandleText(ctx, userID, c.Text())
	if err != nil {
		logger.Error().Err(err).Str("user", userID).Msg("relay failed")
		return c.Send(relay.ApologyReply)
	}

	return newSender(b.bot).sendMarkdown(ctx, c.Chat(), reply, false)
}

func (b *Bot) handlePhoto(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	userID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	_ = c.Notify(tele.Typing)

	fileURL, err := b.photoURL(c.Message().Photo)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve photo url")
		return c.Send(relay.ApologyReply)
	}

	reply, err := b.relay.HandleAttachment(ctx, userID, "image", fileURL)
	if err != nil {
		logger.Error().Err(err).Str("user", userID).Msg("relay failed")
		return c.Send(relay.ApologyReply)
	}

	return newSender(b.bot).sendMarkdown(ctx, c.Chat(), reply, false)
}

// photoURL resolves the download URL for the photo's stored file. Telegram
// serves files from a token-scoped path on the API host.
func (b *Bot) photoURL(photo *tele.Photo) (string, error) {
	if photo == nil {
		return "", fmt.Errorf("no photo in message")
	}
	f, err := b.bot.FileByID(photo.FileID)
	if err != nil {
		return "", fmt.Errorf("resolve file: %w", err)
	}
	return fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", b.cfg.Token, f.FilePath), nil
}
