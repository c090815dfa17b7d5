package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/pkg/log"
)

// ApologyReply is what the user sees when the completion provider fails. The
// underlying cause goes to the log, never to the user.
const ApologyReply = "😔 Sorry, I encountered an error processing your message."

// Relay drives one request end to end: persist the user message, fetch the
// history window, fan out the web lookups, compose the prompt, call the
// completion provider once, persist and return the reply.
type Relay struct {
	cfg       *config.AppConfig
	repo      core.MessagesRepository
	searcher  core.Searcher
	completer core.Completer
	analyzer  core.ImageAnalyzer
	imageHost core.ImageHost
	composer  *Composer
	now       func() time.Time
}

func NewRelay(
	cfg *config.AppConfig,
	repo core.MessagesRepository,
	searcher core.Searcher,
	completer core.Completer,
	analyzer core.ImageAnalyzer,
	imageHost core.ImageHost,
	composer *Composer,
) *Relay {
	return &Relay{
		cfg:       cfg,
		repo:      repo,
		searcher:  searcher,
		completer: completer,
		analyzer:  analyzer,
		imageHost: imageHost,
		composer:  composer,
		now:       time.Now,
	}
}

// HandleText runs the full pipeline for one inbound user message. The user
// message is persisted before any generation happens, and whatever reply the
// user ends up seeing (including the apology) is persisted as a bot message.
// Only storage failures propagate as errors.
func (r *Relay) HandleText(ctx context.Context, userID, text string) (string, error) {
	logger := log.FromCtx(ctx)

	if err := r.repo.Record(ctx, userID, text, false); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := r.repo.Recent(ctx, userID, r.cfg.ContextWindowSize)
	if err != nil {
		return "", fmt.Errorf("failed to fetch history: %w", err)
	}

	reply := r.generate(ctx, history, text)

	if err := r.repo.Record(ctx, userID, reply, true); err != nil {
		return "", fmt.Errorf("failed to save bot message: %w", err)
	}

	logger.Debug().Str("user", userID).Int("reply_len", len(reply)).Msg("relay completed")
	return reply, nil
}

// Answer serves the direct query endpoints: same enrichment, no persistence
// and no history. A blank query is the only client error.
func (r *Relay) Answer(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", core.ErrNoQuery
	}
	return r.generate(ctx, nil, query), nil
}

func (r *Relay) generate(ctx context.Context, history []core.Message, text string) string {
	logger := log.FromCtx(ctx)

	// Search is best-effort: Aggregate never fails, a broken branch arrives
	// as an explanatory string inside the pair.
	pair := r.searcher.Aggregate(ctx, text)

	prompt := r.composer.Compose(r.now(), pair, history, text)
	if logger.Debug().Enabled() {
		logger.Debug().Int("prompt_tokens", EstimateTokens(prompt)).Msg("composed prompt")
	}

	reply, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		// Single shot by contract: no retry, no backoff. The user gets the
		// fixed apology, the log gets the cause.
		var perr *core.ProviderError
		if errors.As(err, &perr) {
			logger.Error().Err(perr.Err).Str("provider", perr.Provider).Msg("completion failed")
		} else {
			logger.Error().Err(err).Msg("completion failed")
		}
		return ApologyReply
	}

	return reply
}
