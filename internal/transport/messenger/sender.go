package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/pkg/conv"
	"github.com/sandevgo/alicebot/pkg/log"
	"github.com/sandevgo/alicebot/pkg/retry"
	"github.com/tidwall/gjson"
)

const sendTimeout = 30 * time.Second

// Messenger caps outbound text at 2000 characters per message.
const maxMessageLength = 2000

// Sender posts replies to the Graph API send endpoint on behalf of the page.
type Sender struct {
	client  *http.Client
	cfg     *config.MessengerConfig
	retrier *retry.Retrier
}

func NewSender(cfg *config.MessengerConfig) *Sender {
	return &Sender{
		client:  &http.Client{Timeout: sendTimeout},
		cfg:     cfg,
		retrier: retry.NewDefaultRetrier(),
	}
}

type sendRequest struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// SendMarkdown flattens model output to plain text before delivery; the send
// API renders nothing, so markup would reach the user verbatim.
func (s *Sender) SendMarkdown(ctx context.Context, recipientID, md string) error {
	text := conv.MarkdownToPlainText([]byte(md))
	if text == "" {
		text = md
	}
	return s.SendText(ctx, recipientID, text)
}

// SendText delivers one plain-text message, retrying transient failures with
// backoff. Overlong replies are truncated rather than rejected.
func (s *Sender) SendText(ctx context.Context, recipientID, text string) error {
	text = truncateRunes(text, maxMessageLength)

	var req sendRequest
	req.Recipient.ID = recipientID
	req.Message.Text = text

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/me/messages?access_token=%s",
		s.cfg.GraphBaseURL, url.QueryEscape(s.cfg.PageAccessToken))

	err = s.retrier.Do(ctx, func() error {
		return s.post(ctx, endpoint, body)
	})
	if err != nil {
		return fmt.Errorf("send message to %s: %w", recipientID, err)
	}

	log.FromCtx(ctx).Debug().Str("recipient", recipientID).Int("len", len(text)).Msg("message sent")
	return nil
}

// truncateRunes cuts to at most max characters, never inside a rune. The
// platform limit counts characters, not bytes.
func truncateRunes(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	var n int
	for i := range text {
		if n == max {
			return text[:i]
		}
		n++
	}
	return text
}

func (s *Sender) post(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if msg := gjson.GetBytes(payload, "error.message"); msg.Exists() {
			return fmt.Errorf("send api status %d: %s", resp.StatusCode, msg.String())
		}
		return fmt.Errorf("send api status %d", resp.StatusCode)
	}
	return nil
}
