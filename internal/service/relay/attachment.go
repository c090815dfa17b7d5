package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/pkg/log"
)

const (
	imageAnalysisPrompt = "Analyze the image keenly and explain its content. If it contains text, translate it and name the language used."

	// User-visible replies for the attachment flow
	UnsupportedAttachmentReply = "🚫 Unsupported attachment type. Please send an image."
	imageProcessErrorReply     = "🚨 Error processing the image. Please try again later."
	imageAnalyzeErrorReply     = "🚨 Error analyzing the image. Please try again later."

	attachmentNote    = "[image attachment]"
	attachmentTimeout = 30 * time.Second
	maxAttachmentSize = 8 << 20 // Messenger caps image attachments at 8MB
)

var attachmentClient = &http.Client{Timeout: attachmentTimeout}

// HandleAttachment processes an inbound attachment: download it, host a
// public copy, caption it with the vision provider. Every failure degrades to
// a fixed user-visible string; the exchange is still persisted.
func (r *Relay) HandleAttachment(ctx context.Context, userID, attachmentType, attachmentURL string) (string, error) {
	if err := r.repo.Record(ctx, userID, attachmentNote, false); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	reply := r.describeAttachment(ctx, attachmentType, attachmentURL)

	if err := r.repo.Record(ctx, userID, reply, true); err != nil {
		return "", fmt.Errorf("failed to save bot message: %w", err)
	}
	return reply, nil
}

func (r *Relay) describeAttachment(ctx context.Context, attachmentType, attachmentURL string) string {
	logger := log.FromCtx(ctx)

	if attachmentType != "image" {
		return UnsupportedAttachmentReply
	}

	data, err := downloadAttachment(ctx, attachmentURL)
	if err != nil {
		logger.Error().Err(err).Msg("attachment download failed")
		return imageProcessErrorReply
	}

	hostedURL, err := r.imageHost.Upload(ctx, "attachment.jpg", data)
	if err != nil {
		logger.Error().Err(err).Msg("image upload failed")
		return imageProcessErrorReply
	}
	logger.Info().Str("url", hostedURL).Msg("image uploaded")

	caption, err := r.analyzer.Analyze(ctx, imageAnalysisPrompt, "image/jpeg", data)
	if err != nil {
		logger.Error().Err(err).Msg("image analysis failed")
		return imageAnalyzeErrorReply
	}

	return fmt.Sprintf("🖼️ Image Analysis:\n%s\n\n🔗 View Image: %s", caption, hostedURL)
}

func downloadAttachment(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := attachmentClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attachment returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentSize))
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	return data, nil
}
